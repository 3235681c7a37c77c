package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/c360studio/autocoder/internal/blueprint"
)

// Case is one synthetic probe driven through a component's primary method
// during the functional phase.
type Case struct {
	Name  string
	Input []byte
}

// actionLiteralPattern scans generated source text for switch/case action
// strings, mirroring component_test_runner.py's inspection of a generated
// component's own code to build realistic test data instead of guessing.
var actionLiteralPattern = regexp.MustCompile(`case\s+"([A-Za-z0-9_\-]+)"`)

// SyntheticCases builds 2-3 type-appropriate test payloads for a component's
// input port, per-type heuristics grounded on
// component_test_runner.py's _generate_multiple_test_cases: APIEndpoint
// gets a POST-create and a GET-list case, Store and Controller cases are
// derived from the literal action strings the generated source switches on
// (falling back to generic defaults when none are found), and every other
// type gets 2-3 generic variants that vary payload shape.
func SyntheticCases(c blueprint.ComponentSpec, port string, source string) []Case {
	switch c.Type {
	case "APIEndpoint":
		return []Case{
			{Name: "create", Input: mustJSON(map[string]any{"method": "POST", "path": "/", "body": map[string]any{"ping": true}})},
			{Name: "list", Input: mustJSON(map[string]any{"method": "GET", "path": "/"})},
		}
	case "Store":
		if actions := literalActions(source); len(actions) > 0 {
			return actionCases(actions)
		}
		if port == "write" {
			return []Case{
				{Name: "write-1", Input: mustJSON(map[string]any{"key": "validate-probe-1", "value": "ok"})},
				{Name: "write-2", Input: mustJSON(map[string]any{"key": "validate-probe-2", "value": 42})},
			}
		}
		return []Case{
			{Name: "read-1", Input: mustJSON(map[string]any{"key": "validate-probe-1"})},
			{Name: "read-2", Input: mustJSON(map[string]any{"key": "missing-key"})},
		}
	case "Controller":
		if actions := literalActions(source); len(actions) > 0 {
			return actionPayloadCases(actions)
		}
		return actionPayloadCases([]string{"create", "update", "noop"})
	case "WebSocket":
		if port == "connection_request" {
			return []Case{
				{Name: "connect", Input: mustJSON(map[string]any{"client_id": "validate-probe"})},
				{Name: "reconnect", Input: mustJSON(map[string]any{"client_id": "validate-probe-2"})},
			}
		}
		return []Case{
			{Name: "ping", Input: mustJSON(map[string]any{"message": "ping"})},
			{Name: "text", Input: mustJSON(map[string]any{"message": "hello"})},
		}
	case "Transformer":
		return []Case{
			{Name: "scalar", Input: mustJSON(map[string]any{"payload": "validate-probe-1"})},
			{Name: "nested", Input: mustJSON(map[string]any{"payload": map[string]any{"nested": "validate-probe-2"}})},
		}
	case "EventBus", "MessageQueue":
		return []Case{
			{Name: "event-1", Input: mustJSON(map[string]any{"event": "validate-probe-1"})},
			{Name: "event-2", Input: mustJSON(map[string]any{"event": "validate-probe-2", "attempt": 2})},
		}
	default:
		return []Case{
			{Name: "probe-1", Input: mustJSON(map[string]any{"probe": true})},
			{Name: "probe-2", Input: mustJSON(map[string]any{"probe": "validate"})},
		}
	}
}

// literalActions extracts up to 3 distinct action strings a generated
// component's own source switches on.
func literalActions(source string) []string {
	matches := actionLiteralPattern.FindAllStringSubmatch(source, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, m[1])
		if len(out) == 3 {
			break
		}
	}
	return out
}

func actionCases(actions []string) []Case {
	cases := make([]Case, 0, len(actions))
	for i, a := range actions {
		cases = append(cases, Case{Name: a, Input: mustJSON(map[string]any{"key": fmt.Sprintf("validate-probe-%d", i+1), "action": a})})
	}
	return cases
}

func actionPayloadCases(actions []string) []Case {
	cases := make([]Case, 0, len(actions))
	for i, a := range actions {
		cases = append(cases, Case{Name: a, Input: mustJSON(map[string]any{"action": a, "payload": map[string]any{"n": i}})})
	}
	return cases
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return b
}

// ClassifyResponse decides whether a functional-phase reply counts as a
// pass, grounded on component_test_runner.py's "{status: ...}" response
// envelope convention: an explicit success status, a 2xx status/code field,
// or the presence of a result/items/body key are all treated as a pass; an
// explicit error status or an error key are not.
func ClassifyResponse(data []byte) bool {
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return false
	}

	if status, ok := decoded["status"].(string); ok {
		switch strings.ToLower(status) {
		case "success", "ok", "completed":
			return true
		case "error", "fail", "failed":
			return false
		}
	}

	for _, key := range []string{"status_code", "code"} {
		if v, ok := decoded[key]; ok {
			if code, ok := asInt(v); ok && code >= 200 && code < 300 {
				return true
			}
		}
	}

	if _, hasErr := decoded["error"]; hasErr {
		return false
	}

	for _, key := range []string{"result", "items", "body"} {
		if _, ok := decoded[key]; ok {
			return true
		}
	}

	return false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}
