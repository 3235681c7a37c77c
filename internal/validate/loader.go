package validate

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// SyntaxCheck parses a generated component's Go source with go/parser,
// stdlib's own canonical AST parser — the same category of tool as the
// teacher's processor/ast/parser.go uses for Go source, so no third-party
// substitute is idiomatic here. Returns the first syntax error, if any,
// before a harness build is ever attempted.
func SyntaxCheck(source string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", source, parser.AllErrors)
	if err != nil {
		return fmt.Errorf("validate: syntax error: %w", err)
	}
	return nil
}

// Harness compiles and runs a throwaway driver binary that imports the
// generated components package, constructs every registered component,
// subscribes each one onto the validation bus, and drives its primary
// method on every request it receives until asked to stop. It is written
// into a temp directory *inside* the real module's tree rather than an
// isolated scratch module: generated components import this repo's own
// internal/recipe and internal/component packages, and Go's internal-import
// rule only admits importers whose import path is rooted at the same
// ancestor directory, which an isolated module can never satisfy regardless
// of replace directives.
type Harness struct {
	dir string
	bin string
	cmd *exec.Cmd
}

// NewHarness locates the module componentsDir belongs to and writes a
// driver package for it under a fresh temp directory inside that module's
// tree.
func NewHarness(componentsDir string) (*Harness, error) {
	moduleRoot, modulePath, err := locateModule(componentsDir)
	if err != nil {
		return nil, err
	}
	importPath, err := componentsImportPath(moduleRoot, modulePath, componentsDir)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(moduleRoot, ".autocoder-harness-")
	if err != nil {
		return nil, fmt.Errorf("validate: create harness dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(harnessSource(importPath)), 0644); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("validate: write harness source: %w", err)
	}

	return &Harness{dir: dir}, nil
}

// Build compiles the harness in place, so it resolves internal imports via
// the enclosing module's own go.mod and module cache.
func (h *Harness) Build() error {
	bin := filepath.Join(h.dir, "harness")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = h.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("validate: build harness: %w: %s", err, out)
	}
	h.bin = bin
	return nil
}

// Start runs the built harness pointed at busURL and blocks until it
// signals readiness (every registered component constructed and
// subscribed) or timeout elapses.
func (h *Harness) Start(busURL string, timeout time.Duration) error {
	cmd := exec.Command(h.bin)
	cmd.Env = append(os.Environ(), "AUTOCODER_BUS_URL="+busURL)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("validate: harness stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("validate: start harness: %w", err)
	}
	h.cmd = cmd

	ready := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			if scanner.Text() == "READY" {
				ready <- nil
				return
			}
		}
		ready <- fmt.Errorf("validate: harness exited before signaling ready")
	}()

	select {
	case err := <-ready:
		return err
	case <-time.After(timeout):
		h.Stop()
		return fmt.Errorf("validate: harness did not become ready within %s", timeout)
	}
}

// Stop signals the harness to shut down gracefully via SIGTERM, giving it a
// chance to run every component's Cleanup, and kills it if it doesn't exit
// in time.
func (h *Harness) Stop() {
	if h.cmd == nil || h.cmd.Process == nil {
		return
	}
	_ = h.cmd.Process.Signal(syscall.SIGTERM)
	done := make(chan error, 1)
	go func() { done <- h.cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = h.cmd.Process.Kill()
	}
}

// Cleanup removes the harness's temp directory.
func (h *Harness) Cleanup() {
	os.RemoveAll(h.dir)
}

// locateModule walks up from dir looking for the nearest go.mod, returning
// its directory and declared module path.
func locateModule(dir string) (root, modulePath string, err error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for d := abs; ; {
		data, readErr := os.ReadFile(filepath.Join(d, "go.mod"))
		if readErr == nil {
			mp, ok := parseModulePath(data)
			if !ok {
				return "", "", fmt.Errorf("validate: go.mod at %s has no module directive", d)
			}
			return d, mp, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", "", fmt.Errorf("validate: no go.mod found above %s", abs)
		}
		d = parent
	}
}

func parseModulePath(data []byte) (string, bool) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module")), true
		}
	}
	return "", false
}

// componentsImportPath derives the import path of componentsDir relative to
// the module it belongs to.
func componentsImportPath(moduleRoot, modulePath, componentsDir string) (string, error) {
	abs, err := filepath.Abs(componentsDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(moduleRoot, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return modulePath, nil
	}
	return modulePath + "/" + filepath.ToSlash(rel), nil
}

// harnessSource renders the driver's main.go. Every registered component is
// constructed once, has Setup called, and is subscribed on "<name>.>" so it
// receives every port-addressed probe regardless of which port subject
// matched; the primitive's primary method doesn't vary by port, only by
// base kind, so one subscription per component is enough. Each reply is
// wrapped in a {"status": "ok"|"error", ...} envelope so the caller's
// ClassifyResponse can apply the same heuristics it would against a real
// deployed component.
func harnessSource(componentsImportPath string) string {
	return fmt.Sprintf(`// Code generated by autocoder. DO NOT EDIT.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/autocoder/internal/component"
	components "%s"
)

func main() {
	nc, err := nats.Connect(os.Getenv("AUTOCODER_BUS_URL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "harness: connect bus:", err)
		os.Exit(1)
	}
	defer nc.Close()

	ctx := context.Background()
	var instances []any
	var subs []*nats.Subscription

	for name, reg := range components.Registry {
		inst := reg.New()
		if lc, ok := inst.(component.Lifecycle); ok {
			if err := lc.Setup(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "harness: setup %%s: %%v\n", name, err)
				continue
			}
		}
		instances = append(instances, inst)

		it := inst
		sub, err := nc.Subscribe(name+".>", func(msg *nats.Msg) {
			reply := invoke(ctx, it, msg.Data)
			if msg.Reply != "" {
				_ = nc.Publish(msg.Reply, reply)
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "harness: subscribe %%s: %%v\n", name, err)
			continue
		}
		subs = append(subs, sub)
	}
	_ = nc.Flush()

	fmt.Println("READY")

	sigCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-sigCtx.Done()

	for _, s := range subs {
		_ = s.Unsubscribe()
	}
	for _, inst := range instances {
		if lc, ok := inst.(component.Lifecycle); ok {
			_ = lc.Cleanup(ctx)
		}
	}
}

func invoke(ctx context.Context, inst any, payload []byte) []byte {
	var msg any
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &msg); err != nil {
			msg = string(payload)
		}
	}

	var result any
	var callErr error
	switch v := inst.(type) {
	case component.Source:
		result, callErr = v.Generate(ctx)
	case component.Sink:
		callErr = v.Consume(ctx, msg)
	case component.Splitter:
		result, callErr = v.Split(ctx, msg)
	case component.Merger:
		result, callErr = v.Merge(ctx, []any{msg})
	case component.Transformer:
		result, callErr = v.Transform(ctx, msg)
	default:
		callErr = fmt.Errorf("component does not implement a known primitive")
	}

	envelope := map[string]any{}
	if callErr != nil {
		envelope["status"] = "error"
		envelope["error"] = callErr.Error()
	} else {
		envelope["status"] = "ok"
		envelope["result"] = result
	}
	b, err := json.Marshal(envelope)
	if err != nil {
		b, _ = json.Marshal(map[string]any{"status": "error", "error": err.Error()})
	}
	return b
}
`, componentsImportPath)
}
