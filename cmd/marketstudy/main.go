package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"marketstudy/internal/app"
	"marketstudy/internal/config"
	"marketstudy/internal/financial"
	"marketstudy/internal/infrastructure"
	"marketstudy/internal/pipeline"
	"marketstudy/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("Market study failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run executes one full study and prints where its outputs went.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("marketstudy", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.yaml")
	baseDir := fs.String("base", "", "base directory for data, reports and logs (overrides config)")
	business := fs.String("business", "", "business name printed on the reports (overrides config)")
	assumptions := fs.String("assumptions", "", "YAML file of financial assumptions (overrides config)")
	asJSON := fs.Bool("json", false, "print the run summary as JSON")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		info := contracts.GetVersionInfo()
		fmt.Fprintf(stdout, "%s (commit %s, built %s, %s)\n", contracts.GetVersionString(), info.GitCommit, info.BuildTime, info.GoVersion)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *baseDir != "" {
		cfg.Paths.BaseDir = *baseDir
	}
	if *business != "" {
		cfg.Study.BusinessName = *business
	}
	if *assumptions != "" {
		cfg.Study.AssumptionsFile = *assumptions
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg.Logging.FilePath = cfg.LogFilePath(paths)
	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(
		infrastructure.OTelConfigFrom(cfg.Observability, config.AppVersion), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			logger.Warn("OpenTelemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()
	metrics, err := infrastructure.CreateStudyMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	studyCfg, err := app.BuildStudyConfig(cfg, paths, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting market study",
		slog.String("business", studyCfg.BusinessName),
		slog.String("base_dir", paths.BaseDir))

	runner := pipeline.NewStudyRunner(studyCfg, logger,
		pipeline.WithTracer(providers.Tracer),
		pipeline.WithMetrics(metrics),
	)
	state, runErr := runner.Run(ctx)
	summary := state.Summary()

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	} else {
		printSummary(stdout, summary, state)
	}

	if runErr != nil {
		return fmt.Errorf("study run %s: %w", summary.RunID, runErr)
	}
	return nil
}

func printSummary(w io.Writer, summary pipeline.Summary, state *pipeline.State) {
	fmt.Fprintf(w, "Market study %s: %s\n", summary.RunID, summary.Status)
	for _, step := range summary.Steps {
		line := fmt.Sprintf("  %-10s %-10s %6dms", step.ID, step.Status, step.DurationMS)
		if step.Error != "" {
			line += "  " + step.Error
		}
		fmt.Fprintln(w, line)
	}
	if summary.Status != pipeline.RunStatusCompleted {
		return
	}

	roi := state.Result.Financial.ROI
	fmt.Fprintf(w, "\nCompetitors analyzed: %d\n", state.Result.Competition.TotalCompetitors)
	fmt.Fprintf(w, "Total investment:     %s\n", financial.FormatEuro(state.Result.Financial.Investment.TotalYear1Investment))
	fmt.Fprintf(w, "ROI (1 year):         %.1f%%\n", roi.ROI1Year)

	fmt.Fprintln(w, "\nGenerated files:")
	for _, a := range summary.Artifacts {
		fmt.Fprintf(w, "  %-20s %s\n", a.Kind, a.Path)
	}
}
