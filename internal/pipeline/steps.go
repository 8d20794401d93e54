package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketstudy/internal/competitor"
	"marketstudy/internal/config"
	"marketstudy/internal/exporter"
	"marketstudy/internal/financial"
	"marketstudy/internal/market"
	"marketstudy/internal/reports"
	"marketstudy/pkg/contracts"
	"marketstudy/pkg/contracts/domain"
)

// Step identifiers, in execution order.
const (
	StepBootstrap = "bootstrap"
	StepSeed      = "seed"
	StepAnalyze   = "analyze"
	StepRender    = "render"
)

// StudyConfig carries the collaborators of a full study run.
type StudyConfig struct {
	Paths        *config.Paths
	BusinessName string
	Market       domain.MarketInfo
	Model        *financial.Model

	// Now stamps the result; defaults to time.Now.
	Now func() time.Time
}

// NewStudyRunner wires bootstrap, seed, analyze and render into a runner.
func NewStudyRunner(cfg StudyConfig, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Model == nil {
		cfg.Model = financial.NewDefaultModel(logger)
	}

	steps := []Step{
		NewBootstrapStep(cfg.Paths),
		NewSeedStep(cfg.Paths, cfg.Market, logger),
		NewAnalyzeStep(cfg, logger),
		NewRenderStep(reports.NewGenerator(cfg.Paths, logger)),
	}
	return NewRunner(steps, logger, opts...)
}

// BootstrapStep creates the data, reports and logs directories.
type BootstrapStep struct {
	BaseStep
	paths *config.Paths
}

func NewBootstrapStep(paths *config.Paths) *BootstrapStep {
	return &BootstrapStep{
		BaseStep: NewBaseStep(StepBootstrap, "Prepare directories"),
		paths:    paths,
	}
}

func (s *BootstrapStep) Execute(ctx context.Context, state *State) error {
	return s.paths.EnsureDirectories()
}

// SeedStep writes the competitor research template, unless one already
// exists, and refreshes the market overview workbook and JSON.
type SeedStep struct {
	BaseStep
	paths  *config.Paths
	market domain.MarketInfo
	logger *slog.Logger
}

func NewSeedStep(paths *config.Paths, info domain.MarketInfo, logger *slog.Logger) *SeedStep {
	return &SeedStep{
		BaseStep: NewBaseStep(StepSeed, "Seed research files"),
		paths:    paths,
		market:   info,
		logger:   logger,
	}
}

func (s *SeedStep) Execute(ctx context.Context, state *State) error {
	path, created, err := competitor.NewTemplateWriter(s.paths.CompetitorTemplate, s.logger).Create(ctx)
	if err != nil {
		return fmt.Errorf("create competitor template: %w", err)
	}
	state.AddArtifact(domain.Artifact{Kind: domain.ArtifactCompetitorTemplate, Path: path, Created: created})

	w := market.NewWriter(s.market, s.logger)
	if err := w.WriteOverview(ctx, s.paths.MarketOverview); err != nil {
		return fmt.Errorf("write market overview: %w", err)
	}
	state.AddArtifact(domain.Artifact{Kind: domain.ArtifactMarketOverview, Path: s.paths.MarketOverview, Created: true})

	if err := w.SaveJSON(s.paths.MarketJSON); err != nil {
		return fmt.Errorf("save market data: %w", err)
	}
	state.AddArtifact(domain.Artifact{Kind: domain.ArtifactMarketData, Path: s.paths.MarketJSON, Created: true})
	return nil
}

// AnalyzeStep loads the competitor research, runs the competitor and
// financial engines and persists the combined result.
type AnalyzeStep struct {
	BaseStep
	cfg      StudyConfig
	loader   *competitor.Loader
	cashFlow *exporter.CashFlowExporter
	logger   *slog.Logger
}

func NewAnalyzeStep(cfg StudyConfig, logger *slog.Logger) *AnalyzeStep {
	return &AnalyzeStep{
		BaseStep: NewBaseStep(StepAnalyze, "Analyze market"),
		cfg:      cfg,
		loader:   competitor.NewLoader(logger),
		cashFlow: exporter.NewCashFlowExporter(exporter.NewCSVWriter(cfg.Paths, logger), logger),
		logger:   logger,
	}
}

func (s *AnalyzeStep) Execute(ctx context.Context, state *State) error {
	paths := s.cfg.Paths

	records, err := s.loader.LoadOrEmpty(ctx, paths.CompetitorTemplate)
	if err != nil {
		return err
	}
	if err := competitor.NewStore(paths.CompetitorJSON).Save(records); err != nil {
		return fmt.Errorf("save competitor data: %w", err)
	}
	state.AddArtifact(domain.Artifact{Kind: domain.ArtifactCompetitorData, Path: paths.CompetitorJSON, Created: true})

	analysis := s.cfg.Model.Run(ctx)
	state.Result = domain.StudyResult{
		FormatVersion: contracts.DataFormatVersion,
		RunID:         state.ID,
		BusinessName:  s.cfg.BusinessName,
		GeneratedAt:   s.cfg.Now().UTC(),
		Market:        s.cfg.Market,
		Competitors:   records,
		Competition:   competitor.Analyze(records),
		Financial:     analysis,
		Summary:       financial.ExecutiveSummary(s.cfg.BusinessName, analysis),
	}

	if err := SaveResult(paths.AnalysisJSON, state.Result); err != nil {
		return err
	}
	state.AddArtifact(domain.Artifact{Kind: domain.ArtifactAnalysisJSON, Path: paths.AnalysisJSON, Created: true})

	if err := s.cashFlow.Export(paths.CashFlowCSV, analysis.CashFlow); err != nil {
		return fmt.Errorf("export cash flow: %w", err)
	}
	state.AddArtifact(domain.Artifact{Kind: domain.ArtifactCashFlowCSV, Path: paths.CashFlowCSV, Created: true})

	s.logger.InfoContext(ctx, "analysis persisted",
		slog.Int("competitors", len(records)),
		slog.Float64("roi_1_year", analysis.ROI.ROI1Year),
	)
	return nil
}

// ReportGenerator renders every report of a study.
type ReportGenerator interface {
	GenerateAll(ctx context.Context, result domain.StudyResult) ([]domain.Artifact, error)
}

// RenderStep renders the workbook, deck and summary from the analysis.
type RenderStep struct {
	BaseStep
	generator ReportGenerator
}

func NewRenderStep(g ReportGenerator) *RenderStep {
	return &RenderStep{
		BaseStep:  NewBaseStep(StepRender, "Render reports"),
		generator: g,
	}
}

func (s *RenderStep) Execute(ctx context.Context, state *State) error {
	if state.Result.RunID == "" {
		return fmt.Errorf("no analysis result to render")
	}
	artifacts, err := s.generator.GenerateAll(ctx, state.Result)
	if err != nil {
		return fmt.Errorf("generate reports: %w", err)
	}
	for _, a := range artifacts {
		state.AddArtifact(a)
	}
	return nil
}
