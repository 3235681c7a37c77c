// Package main implements the autocoder CLI: generate, validate, and
// watch subcommands driving the blueprint-to-code control loop, grounded
// on cmd/semspec/main.go's cobra root command and signal-context pattern.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/autocoder/internal/blueprint"
	"github.com/c360studio/autocoder/internal/codegen"
	"github.com/c360studio/autocoder/internal/config"
	"github.com/c360studio/autocoder/internal/orchestrator"
	"github.com/c360studio/autocoder/internal/validate"
	"github.com/c360studio/autocoder/internal/watch"
	"github.com/c360studio/autocoder/pkg/llm"
	_ "github.com/c360studio/autocoder/pkg/llm/providers"
	"github.com/c360studio/autocoder/pkg/model"
)

// Version and BuildTime are set via ldflags at release build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var configPath string
	var strictConfig bool

	rootCmd := &cobra.Command{
		Use:     "autocoder",
		Short:   "Blueprint-to-code generation and self-healing control loop",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to autocoder.yaml")
	rootCmd.PersistentFlags().BoolVar(&strictConfig, "strict-config", true, "abort on unhealable component config")

	rootCmd.AddCommand(
		generateCmd(&configPath, &strictConfig),
		validateCmd(),
		watchCmd(&configPath, &strictConfig),
	)

	return rootCmd.ExecuteContext(ctx)
}

func loadConfig(logger *slog.Logger, explicitPath string) (*config.Config, error) {
	loader := config.NewLoader(logger)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if explicitPath != "" {
		override, err := config.LoadFromFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("load --config file: %w", err)
		}
		cfg.Merge(override)
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func loadBlueprint(path string) (*blueprint.Blueprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blueprint: %w", err)
	}
	defer f.Close()
	return blueprint.Parse(f)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func generateCmd(configPath *string, strictConfig *bool) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "generate <blueprint.yaml>",
		Short: "Run the full generate-validate-heal loop once and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := loadConfig(logger, *configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			os.Setenv("VALIDATION_THRESHOLD", fmt.Sprintf("%f", cfg.Validation.Threshold))

			bp, err := loadBlueprint(args[0])
			if err != nil {
				return err
			}
			if err := bp.Validate(); err != nil {
				return fmt.Errorf("invalid blueprint: %w", err)
			}

			if err := orchestrator.ValidateConfigs(bp, *strictConfig); err != nil {
				return err
			}

			registry := model.NewDefaultRegistry()
			client := llm.NewClient(registry)

			loop := orchestrator.New(client, outDir, bp.Name, logger)
			result, err := loop.Run(cmd.Context(), bp)
			if err != nil {
				return err
			}

			fmt.Printf("admitted=%v pass_rate=%.2f threshold=%.2f iterations=%d\n",
				result.Admitted, result.Report.PassRate, result.Report.Threshold, result.Iterations)
			if len(result.CircuitBroken) > 0 {
				fmt.Printf("circuit-broken components: %v\n", result.CircuitBroken)
			}
			if !result.Admitted {
				return fmt.Errorf("blueprint not admitted")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory for generated components")
	return cmd
}

func validateCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "validate <blueprint.yaml>",
		Short: "Run C4 integration validation against already-generated components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := loadBlueprint(args[0])
			if err != nil {
				return err
			}

			writer := codegen.NewWriter(outDir, bp.Name)
			existing, err := writer.ExistingComponents()
			if err != nil {
				return fmt.Errorf("list existing components: %w", err)
			}
			registered := make(map[string]bool, len(existing))
			for _, name := range existing {
				registered[name] = true
			}

			report, err := validate.RunAll(bp, writer.Dir(), registered)
			if err != nil {
				return err
			}
			fmt.Printf("pass_rate=%.2f threshold=%.2f passed=%v\n", report.PassRate, report.Threshold, report.Passed)
			for _, r := range report.Results {
				fmt.Printf("  %-24s passed=%v\n", r.Component, r.Passed)
			}
			if !report.Passed {
				return fmt.Errorf("validation below threshold")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory containing generated components")
	return cmd
}

func watchCmd(configPath *string, strictConfig *bool) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "watch <blueprint.yaml>",
		Short: "Re-run the control loop whenever the blueprint file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			path := args[0]

			cfg, err := loadConfig(logger, *configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			os.Setenv("VALIDATION_THRESHOLD", fmt.Sprintf("%f", cfg.Validation.Threshold))

			registry := model.NewDefaultRegistry()
			client := llm.NewClient(registry)

			runOnce := func(ctx context.Context) {
				bp, err := loadBlueprint(path)
				if err != nil {
					logger.Error("reload blueprint failed", "error", err)
					return
				}
				if err := bp.Validate(); err != nil {
					logger.Error("invalid blueprint", "error", err)
					return
				}
				if err := orchestrator.ValidateConfigs(bp, *strictConfig); err != nil {
					logger.Error("config validation failed", "error", err)
					return
				}
				loop := orchestrator.New(client, outDir, bp.Name, logger)
				result, err := loop.Run(ctx, bp)
				if err != nil {
					logger.Error("run failed", "error", err)
					return
				}
				logger.Info("run complete", "admitted", result.Admitted, "pass_rate", result.Report.PassRate, "iterations", result.Iterations)
			}

			runOnce(cmd.Context())

			w, err := watch.New(path, logger, runOnce)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory for generated components")
	return cmd
}
