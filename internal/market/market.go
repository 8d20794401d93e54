package market

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "marketstudy/internal/errors"
	"marketstudy/internal/exporter"
	"marketstudy/pkg/contracts/domain"
)

// Sheet names of the overview workbook.
const (
	OverviewSheet = "Market Overview"
	SegmentsSheet = "Target Segments"
)

// DefaultInfo describes the festive equipment rental market around Niort.
func DefaultInfo() domain.MarketInfo {
	return domain.MarketInfo{
		Industry: "Festive Equipment Rental",
		Location: "Niort, France",
		TargetMarket: []string{
			"Wedding organizers",
			"Corporate event planners",
			"Schools and educational institutions",
			"Municipalities for public events",
			"Private party organizers",
		},
		SeasonalityFactors: []string{
			"Spring/Summer: Weddings, outdoor events",
			"Fall/Winter: Corporate events, holiday parties",
			"Back-to-school season: School events",
		},
		MarketTrends: []string{
			"Increasing demand for unique event experiences",
			"Growing preference for locally-owned vs. chain providers",
			"Importance of social media presence for marketing",
		},
	}
}

// OverviewRows returns the Category/Details table of the overview sheet.
func OverviewRows(info domain.MarketInfo) [][]string {
	return [][]string{
		{"Category", "Details"},
		{"Industry", info.Industry},
		{"Primary Location", info.Location},
		{"Target Segments", strings.Join(info.TargetMarket, ", ")},
		{"Seasonal Peaks", strings.Join(info.SeasonalityFactors, ", ")},
		{"Key Trends", strings.Join(info.MarketTrends, ", ")},
	}
}

// Writer produces the market overview workbook and its JSON twin.
type Writer struct {
	info   domain.MarketInfo
	logger *slog.Logger
}

// NewWriter creates a writer for info.
func NewWriter(info domain.MarketInfo, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		info:   info,
		logger: logger.With(slog.String("component", "market_writer")),
	}
}

// WriteOverview saves a two-sheet workbook: the overview table and one row
// per target segment with blank research columns.
func (w *Writer) WriteOverview(ctx context.Context, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OverviewSheet); err != nil {
		return apperrors.NewRenderError("name overview sheet", err)
	}
	if _, err := f.NewSheet(SegmentsSheet); err != nil {
		return apperrors.NewRenderError("create segments sheet", err)
	}

	if err := exporter.SetRows(f, OverviewSheet, OverviewRows(w.info)); err != nil {
		return apperrors.NewRenderError("write overview rows", err)
	}
	if err := exporter.StyleHeader(f, OverviewSheet, 1, 2); err != nil {
		return apperrors.NewRenderError("style overview header", err)
	}

	segments := [][]string{domain.SegmentColumns}
	for _, s := range w.info.TargetMarket {
		segments = append(segments, []string{s, "", "", ""})
	}
	if err := exporter.SetRows(f, SegmentsSheet, segments); err != nil {
		return apperrors.NewRenderError("write segment rows", err)
	}

	_ = f.SetColWidth(OverviewSheet, "A", "A", 20)
	_ = f.SetColWidth(OverviewSheet, "B", "B", 50)
	_ = f.SetColWidth(SegmentsSheet, "A", "D", 30)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create data directory", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("save market overview", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "market overview written",
		slog.String("path", path),
		slog.Int("segments", len(w.info.TargetMarket)),
	)
	return nil
}

// SaveJSON writes the market info as indented JSON.
func (w *Writer) SaveJSON(path string) error {
	data, err := json.MarshalIndent(w.info, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("encode market data", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create data directory", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError("write market data", err).WithContext("path", path)
	}
	return nil
}

// LoadJSON reads market info saved by SaveJSON.
func LoadJSON(path string) (domain.MarketInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.MarketInfo{}, apperrors.NewNotFoundError("market data").WithContext("path", path)
		}
		return domain.MarketInfo{}, apperrors.NewStorageError("read market data", err)
	}
	var info domain.MarketInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return domain.MarketInfo{}, apperrors.NewParsingError("decode market data", err)
	}
	return info, nil
}
