package reports

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"marketstudy/internal/config"
	"marketstudy/pkg/contracts/domain"
)

// Writer renders a study result to a file.
type Writer interface {
	Write(ctx context.Context, path string, result domain.StudyResult) error
}

// target pairs a writer with its output.
type target struct {
	kind   domain.ArtifactKind
	path   string
	writer Writer
}

// Generator renders every report of a study concurrently.
type Generator struct {
	targets []target
	logger  *slog.Logger
}

// NewGenerator wires the workbook, deck and summary writers to the report
// locations in paths.
func NewGenerator(paths *config.Paths, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		targets: []target{
			{domain.ArtifactWorkbook, paths.Workbook, NewWorkbookWriter(logger)},
			{domain.ArtifactDeck, paths.Deck, NewDeckWriter(logger)},
			{domain.ArtifactSummaryHTML, paths.SummaryHTML, NewSummaryRenderer(logger)},
		},
		logger: logger.With(slog.String("component", "report_generator")),
	}
}

// GenerateAll runs all writers in parallel. The first failure cancels the
// others and is returned; on success the artifacts are listed in a fixed
// order.
func (g *Generator) GenerateAll(ctx context.Context, result domain.StudyResult) ([]domain.Artifact, error) {
	start := time.Now()
	eg, egCtx := errgroup.WithContext(ctx)

	for _, t := range g.targets {
		t := t
		eg.Go(func() error {
			return t.writer.Write(egCtx, t.path, result)
		})
	}

	if err := eg.Wait(); err != nil {
		g.logger.ErrorContext(ctx, "report generation failed", slog.String("error", err.Error()))
		return nil, err
	}

	artifacts := make([]domain.Artifact, 0, len(g.targets))
	for _, t := range g.targets {
		artifacts = append(artifacts, domain.Artifact{Kind: t.kind, Path: t.path, Created: true})
	}

	g.logger.InfoContext(ctx, "reports generated",
		slog.Int("artifacts", len(artifacts)),
		slog.Duration("duration", time.Since(start)),
	)
	return artifacts, nil
}
