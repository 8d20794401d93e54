package competitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "marketstudy/internal/errors"
	"marketstudy/pkg/contracts/domain"
)

// Loader reads competitor research workbooks.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a workbook loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "competitor_loader"))}
}

// LoadWorkbook reads every competitor row from the first sheet that carries
// a "Competitor" header. Columns may appear in any order; missing columns
// leave the matching field blank. A missing file is reported as a
// NOT_FOUND AppError.
func (l *Loader) LoadWorkbook(ctx context.Context, path string) ([]domain.CompetitorRecord, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NewNotFoundError("competitor workbook").WithContext("path", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("open competitor workbook", err).WithContext("path", path)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, apperrors.NewParsingError("read competitor sheet", err).WithContext("sheet", sheet)
		}
		header := findHeaderRow(rows)
		if header < 0 {
			continue
		}

		records, skipped := FromRows(rows[header:])
		if skipped > 0 {
			l.logger.DebugContext(ctx, "blank competitor rows skipped",
				slog.String("sheet", sheet),
				slog.Int("skipped", skipped),
			)
		}
		l.logger.InfoContext(ctx, "competitor workbook loaded",
			slog.String("path", path),
			slog.String("sheet", sheet),
			slog.Int("records", len(records)),
		)
		return records, nil
	}

	return nil, apperrors.NewParsingError("competitor workbook has no Competitor header", nil).WithContext("path", path)
}

// LoadOrEmpty behaves like LoadWorkbook but treats a missing file as an
// empty table.
func (l *Loader) LoadOrEmpty(ctx context.Context, path string) ([]domain.CompetitorRecord, error) {
	records, err := l.LoadWorkbook(ctx, path)
	if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
		l.logger.WarnContext(ctx, "competitor workbook missing, using empty table", slog.String("path", path))
		return []domain.CompetitorRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load competitors: %w", err)
	}
	return records, nil
}

// FromRows maps a header row followed by data rows onto records. A row
// with data but no competitor name is kept; only rows blank in every
// mapped column are dropped, and their count is returned as skipped.
func FromRows(rows [][]string) (records []domain.CompetitorRecord, skipped int) {
	records = []domain.CompetitorRecord{}
	if len(rows) == 0 {
		return records, 0
	}

	columns := make(map[string]int)
	for i, h := range rows[0] {
		for _, col := range domain.CompetitorColumns {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				columns[col] = i
			}
		}
	}

	for _, row := range rows[1:] {
		values := make(map[string]string, len(columns))
		for col, idx := range columns {
			if idx < len(row) {
				values[col] = strings.TrimSpace(row[idx])
			}
		}
		record := RecordFromMap(values)
		if record == (domain.CompetitorRecord{}) {
			skipped++
			continue
		}
		records = append(records, record)
	}
	return records, skipped
}

// RecordFromMap builds a record from column-name keys. Absent keys leave
// fields blank.
func RecordFromMap(values map[string]string) domain.CompetitorRecord {
	return domain.CompetitorRecord{
		Name:           values[domain.ColumnCompetitor],
		Website:        values[domain.ColumnWebsite],
		Services:       values[domain.ColumnServices],
		PricingRange:   values[domain.ColumnPricingRange],
		Specialization: values[domain.ColumnSpecialization],
		Strengths:      values[domain.ColumnStrengths],
		Weaknesses:     values[domain.ColumnWeaknesses],
		MarketPosition: values[domain.ColumnMarketPosition],
	}
}

// RecordToMap is the inverse of RecordFromMap.
func RecordToMap(r domain.CompetitorRecord) map[string]string {
	values := make(map[string]string, len(domain.CompetitorColumns))
	for _, col := range domain.CompetitorColumns {
		values[col] = r.Field(col)
	}
	return values
}

func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if strings.EqualFold(strings.TrimSpace(cell), domain.ColumnCompetitor) {
				return i
			}
		}
	}
	return -1
}
