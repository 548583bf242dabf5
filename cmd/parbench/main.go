// Package main provides the CLI entry point for parbench, a serial vs
// parallel benchmark driver for an external analysis tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/weiihann/parbench/bench"
	"github.com/weiihann/parbench/config"
	"github.com/weiihann/parbench/corpus"
	"github.com/weiihann/parbench/harness"
	"github.com/weiihann/parbench/report"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	root := newRootCmd(logger)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("parbench failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "parbench",
		Short: "Serial vs parallel benchmark driver for the analysis tool",
		Long: `Parbench runs an external analysis executable over a corpus of sample
files, once with its internal concurrency disabled and once in its default
parallel mode, and reports the per-sample speedup grouped by file size.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		configPath string
		overrides  config.Config
		outputJSON bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark the analysis tool over the sample corpus",
		Long: `Run the analysis tool twice per sample (serial first, then parallel,
with a cooldown in between), extract run time and throughput from its
output, and print a comparison table with size-bucketed mean speedups.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			applyFlagOverrides(cmd, &cfg, &overrides)

			return runBenchmark(cmd.Context(), logger, cfg, outputJSON, noColor)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "",
		"Path to a TOML config file")
	flags.StringVar(&overrides.Tool, "tool", "",
		"Analysis executable (path or name on PATH)")
	flags.StringVar(&overrides.SamplesDir, "samples-dir", "",
		"Directory holding the sample corpus")
	flags.StringVar(&overrides.Extension, "ext", ".flac",
		"Sample file extension")
	flags.IntVar(&overrides.TimeoutSeconds, "timeout", 300,
		"Per-run timeout in seconds")
	flags.Float64Var(&overrides.CooldownSeconds, "cooldown", 2,
		"Pause between the serial and parallel run, in seconds")
	flags.StringVar(&overrides.TimeLabel, "time-label", "",
		"Output label preceding the run-time value")
	flags.StringVar(&overrides.SpeedLabel, "speed-label", "",
		"Output label preceding the throughput value")
	flags.BoolVar(&outputJSON, "json", false,
		"Output results as JSON instead of a table")
	flags.BoolVar(&noColor, "no-color", false,
		"Disable styled output")

	return cmd
}

// applyFlagOverrides copies explicitly-set flag values over the file
// config, so file settings survive unless the user says otherwise.
func applyFlagOverrides(cmd *cobra.Command, cfg, overrides *config.Config) {
	set := cmd.Flags().Changed

	if set("tool") {
		cfg.Tool = overrides.Tool
	}

	if set("samples-dir") {
		cfg.SamplesDir = overrides.SamplesDir
	}

	if set("ext") {
		cfg.Extension = overrides.Extension
	}

	if set("timeout") {
		cfg.TimeoutSeconds = overrides.TimeoutSeconds
	}

	if set("cooldown") {
		cfg.CooldownSeconds = overrides.CooldownSeconds
	}

	if set("time-label") {
		cfg.TimeLabel = overrides.TimeLabel
	}

	if set("speed-label") {
		cfg.SpeedLabel = overrides.SpeedLabel
	}
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.Config,
	outputJSON, noColor bool,
) error {
	if cfg.Tool == "" {
		return fmt.Errorf(
			"the analysis tool must be given via --tool or the config file",
		)
	}

	if cfg.SamplesDir == "" {
		return fmt.Errorf(
			"the sample corpus must be given via --samples-dir or the config file",
		)
	}

	toolPath, err := harness.ResolveTool(cfg.Tool)
	if err != nil {
		return err
	}

	samples, err := corpus.Scan(cfg.SamplesDir, cfg.Extension)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no %s samples found in %s",
			cfg.Extension, cfg.SamplesDir)
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("tool", toolPath),
		slog.Int("samples", len(samples)),
		slog.Duration("timeout", cfg.Timeout()),
		slog.Duration("cooldown", cfg.Cooldown()),
	)

	executor := harness.NewRunner(toolPath, cfg.Timeout(), logger)
	runner := bench.NewRunner(
		executor, cfg.Cooldown(), cfg.TimeLabel, cfg.SpeedLabel, logger,
	)

	comparisons, skips, runErr := runner.RunAll(ctx, samples)
	if runErr != nil {
		// Interrupted sweeps still report whatever completed.
		logger.WarnContext(ctx, "benchmark interrupted",
			slog.String("error", runErr.Error()),
		)

		if len(comparisons) == 0 && len(skips) == 0 {
			return runErr
		}
	}

	if outputJSON {
		if err := report.GenerateJSON(os.Stdout, comparisons, skips); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		opts := report.Options{Plain: noColor}
		if err := report.Generate(os.Stdout, comparisons, skips, opts); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Int("measured", len(comparisons)),
		slog.Int("skipped", len(skips)),
	)

	return runErr
}
