package competitor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "marketstudy/internal/errors"
	"marketstudy/internal/exporter"
	"marketstudy/pkg/contracts/domain"
)

// TemplateSheet is the sheet name of the research template.
const TemplateSheet = "Competitors"

// KnownCompetitors are the local event-equipment businesses surveyed by
// the research template.
var KnownCompetitors = []string{
	"LS Réception",
	"Autrement Location",
	"Organi-Sons",
	"SR Événements",
	"Au Comptoir Des Vaisselles",
	"SIEG Event",
	"Geste Scénique",
	"AMB EVENT 79",
	"Ouest Sono Live",
	"Sonovolante",
	"MAX MUSIQUE SA",
	"Carrément Prod",
}

// TemplateWriter seeds the competitor research workbook.
type TemplateWriter struct {
	path   string
	logger *slog.Logger
}

// NewTemplateWriter creates a writer targeting path.
func NewTemplateWriter(path string, logger *slog.Logger) *TemplateWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateWriter{
		path:   path,
		logger: logger.With(slog.String("component", "competitor_template")),
	}
}

// Create writes the template with one row per known competitor and blank
// research columns. An existing file is never overwritten; created reports
// whether a new file was written.
func (w *TemplateWriter) Create(ctx context.Context) (path string, created bool, err error) {
	if _, err := os.Stat(w.path); err == nil {
		w.logger.InfoContext(ctx, "competitor template exists, skipping", slog.String("path", w.path))
		return w.path, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, apperrors.NewStorageError("stat competitor template", err)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return "", false, apperrors.NewStorageError("create template directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return "", false, apperrors.NewRenderError("name template sheet", err)
	}

	rows := make([][]string, 0, len(KnownCompetitors)+1)
	rows = append(rows, domain.CompetitorColumns)
	for _, name := range KnownCompetitors {
		rows = append(rows, domain.CompetitorRecord{Name: name}.Row())
	}
	if err := exporter.SetRows(f, TemplateSheet, rows); err != nil {
		return "", false, apperrors.NewRenderError("write template rows", err)
	}

	if err := exporter.StyleHeader(f, TemplateSheet, 1, len(domain.CompetitorColumns)); err != nil {
		return "", false, apperrors.NewRenderError("style template header", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(domain.CompetitorColumns))
	_ = f.SetColWidth(TemplateSheet, "A", lastCol, 28)

	if err := f.SaveAs(w.path); err != nil {
		return "", false, apperrors.NewStorageError("save competitor template", err).WithContext("path", w.path)
	}

	w.logger.InfoContext(ctx, "competitor template created",
		slog.String("path", w.path),
		slog.Int("competitors", len(KnownCompetitors)),
	)
	return w.path, true, nil
}
