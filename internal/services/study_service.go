package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"marketstudy/internal/competitor"
	apperrors "marketstudy/internal/errors"
	"marketstudy/internal/financial"
	"marketstudy/internal/pipeline"
	"marketstudy/internal/reports"
	"marketstudy/pkg/contracts/domain"
)

// CompetitorReport is the competitor research table with its metrics.
type CompetitorReport struct {
	Competitors []domain.CompetitorRecord `json:"competitors"`
	Analysis    domain.CompetitorAnalysis `json:"analysis"`
}

// StudyService runs studies and answers read-only questions about them.
type StudyService struct {
	cfg      pipeline.StudyConfig
	runner   *pipeline.Runner
	loader   *competitor.Loader
	renderer *reports.SummaryRenderer
	logger   *slog.Logger

	running atomic.Bool

	mu     sync.RWMutex
	last   *pipeline.State
	result *domain.StudyResult
}

// NewStudyService creates a study service over cfg. A nil Model in cfg
// uses the default assumptions.
func NewStudyService(cfg pipeline.StudyConfig, logger *slog.Logger, opts ...pipeline.Option) *StudyService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == nil {
		cfg.Model = financial.NewDefaultModel(logger)
	}
	return &StudyService{
		cfg:      cfg,
		runner:   pipeline.NewStudyRunner(cfg, logger, opts...),
		loader:   competitor.NewLoader(logger),
		renderer: reports.NewSummaryRenderer(logger),
		logger:   logger.With(slog.String("service", "study")),
	}
}

// Run executes a full study. Only one run may be in flight at a time.
func (s *StudyService) Run(ctx context.Context) (pipeline.Summary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return pipeline.Summary{}, ErrStudyRunning
	}
	defer s.running.Store(false)

	state, err := s.runner.Run(ctx)

	s.mu.Lock()
	s.last = state
	if err == nil {
		result := state.Result
		s.result = &result
	}
	s.mu.Unlock()

	if err != nil {
		return state.Summary(), fmt.Errorf("study run %s: %w", state.ID, err)
	}
	return state.Summary(), nil
}

// Running reports whether a run is in progress.
func (s *StudyService) Running() bool {
	return s.running.Load()
}

// LastRun returns the most recent run, if any.
func (s *StudyService) LastRun() (pipeline.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return pipeline.Summary{}, false
	}
	return s.last.Summary(), true
}

// Result returns the latest study result: the last successful run of this
// process, else the persisted analysis_results.json.
func (s *StudyService) Result(ctx context.Context) (domain.StudyResult, error) {
	s.mu.RLock()
	cached := s.result
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	result, err := pipeline.LoadResult(s.cfg.Paths.AnalysisJSON)
	if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
		return domain.StudyResult{}, ErrNoStudyResult
	}
	if err != nil {
		return domain.StudyResult{}, err
	}

	s.logger.DebugContext(ctx, "loaded persisted study result", slog.String("run_id", result.RunID))
	return result, nil
}

// Market returns the market description the study uses.
func (s *StudyService) Market() domain.MarketInfo {
	return s.cfg.Market
}

// CompetitorAnalysis loads the research workbook and computes its metrics.
// A missing workbook yields an empty report.
func (s *StudyService) CompetitorAnalysis(ctx context.Context) (CompetitorReport, error) {
	records, err := s.loader.LoadOrEmpty(ctx, s.cfg.Paths.CompetitorTemplate)
	if err != nil {
		return CompetitorReport{}, err
	}
	return CompetitorReport{
		Competitors: records,
		Analysis:    competitor.Analyze(records),
	}, nil
}

// FinancialAnalysis runs the financial model on the configured assumptions.
func (s *StudyService) FinancialAnalysis(ctx context.Context) domain.FinancialAnalysis {
	return s.cfg.Model.Run(ctx)
}

// Sensitivity returns the CAC and churn sweeps.
func (s *StudyService) Sensitivity(ctx context.Context) domain.SensitivityResult {
	return s.cfg.Model.SensitivityAnalysis()
}

// Assumptions returns the model inputs.
func (s *StudyService) Assumptions() financial.Assumptions {
	return s.cfg.Model.Assumptions()
}

// WhatIf recomputes the financial analysis with overrides. Overrides or
// derived assumptions that fail validation yield a VALIDATION AppError.
func (s *StudyService) WhatIf(ctx context.Context, o financial.Overrides) (domain.FinancialAnalysis, error) {
	analysis, err := s.cfg.Model.RecomputeWith(ctx, o)
	if err != nil {
		return domain.FinancialAnalysis{}, apperrors.NewAppValidationError("invalid overrides", err)
	}

	s.logger.InfoContext(ctx, "what-if analysis computed",
		slog.Float64("roi_1_year", analysis.ROI.ROI1Year),
		slog.Float64("year_1_revenue", analysis.Revenue.Year1Revenue),
	)
	return analysis, nil
}

// SummaryHTML renders the executive summary page of the latest result.
func (s *StudyService) SummaryHTML(ctx context.Context) ([]byte, error) {
	result, err := s.Result(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.Page(result)
}
