package reports

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "marketstudy/internal/errors"
	"marketstudy/internal/exporter"
	"marketstudy/internal/financial"
	"marketstudy/pkg/contracts/domain"
)

// Sheet names of the study workbook.
const (
	SummarySheet     = "Executive Summary"
	CompetitorSheet  = "Competitor Analysis"
	ProjectionSheet  = "Financial Projections"
	SensitivitySheet = "Sensitivity"
)

// projectionHeaderRow is the header row of the projections table; the
// title sits above it.
const projectionHeaderRow = 2

// KeyInsights are the qualitative findings listed on the summary sheet.
var KeyInsights = []string{
	"Distinct sourcing advantage through direct purchasing in China",
	"Existing relationships with local school parent associations",
	"Local market appears under-served based on initial research",
	"Growth potential in private events",
}

// ProjectionHeaders are the columns of the monthly projection table.
var ProjectionHeaders = []string{
	"Month",
	"Customers",
	"Revenue (€)",
	"Operating Costs (€)",
	"Gross Margin (€)",
	"Net Cash Flow (€)",
	"Cumulative (€)",
}

// WorkbookWriter renders a StudyResult as an xlsx workbook.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger.With(slog.String("component", "workbook_writer"))}
}

// Write builds the workbook and saves it to path.
func (w *WorkbookWriter) Write(ctx context.Context, path string, result domain.StudyResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := w.Build(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create reports directory", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("save workbook", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "workbook written",
		slog.String("path", path),
		slog.Int("competitors", len(result.Competitors)),
	)
	return nil
}

// Build assembles the workbook in memory. The caller closes it.
func (w *WorkbookWriter) Build(result domain.StudyResult) (*excelize.File, error) {
	f := excelize.NewFile()

	steps := []struct {
		name string
		fn   func(*excelize.File, domain.StudyResult) error
	}{
		{SummarySheet, writeSummarySheet},
		{CompetitorSheet, writeCompetitorSheet},
		{ProjectionSheet, writeProjectionSheet},
		{SensitivitySheet, writeSensitivitySheet},
	}

	for i, step := range steps {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", step.name); err != nil {
				f.Close()
				return nil, apperrors.NewRenderError("name sheet", err).WithContext("sheet", step.name)
			}
		} else if _, err := f.NewSheet(step.name); err != nil {
			f.Close()
			return nil, apperrors.NewRenderError("create sheet", err).WithContext("sheet", step.name)
		}
		if err := step.fn(f, result); err != nil {
			f.Close()
			return nil, apperrors.NewRenderError("write sheet", err).WithContext("sheet", step.name)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// SummaryRows returns the indicator table of the summary sheet.
func SummaryRows(result domain.StudyResult) [][]string {
	fa := result.Financial
	return [][]string{
		{"Indicator", "Value"},
		{"Competitors identified", fmt.Sprintf("%d", result.Competition.TotalCompetitors)},
		{"Year 1 investment", financial.FormatEuro(fa.Investment.TotalYear1Investment)},
		{"Year 1 revenue", financial.FormatEuro(fa.Revenue.Year1Revenue)},
		{"Year 3 revenue (base)", financial.FormatEuro(fa.Revenue.Base.AnnualRevenue[2])},
		{"Year 1 ROI", fmt.Sprintf("%.1f%%", fa.ROI.ROI1Year)},
		{"Year 3 ROI", fmt.Sprintf("%.1f%%", fa.ROI.ROI3Years)},
		{"NPV", financial.FormatEuro(fa.ROI.NPV)},
		{"Break-even", breakEvenText(fa.ROI.BreakEvenMonth)},
		{"LTV:CAC", fmt.Sprintf("%.1f:1", fa.UnitEconomics.LTVToCACRatio)},
	}
}

func writeSummarySheet(f *excelize.File, result domain.StudyResult) error {
	title := "MARKET STUDY - " + strings.ToUpper(result.BusinessName)
	if err := f.SetCellValue(SummarySheet, "A1", title); err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A1", titleStyle); err != nil {
		return err
	}

	rows := SummaryRows(result)
	if err := exporter.SetRowsAt(f, SummarySheet, 2, rows); err != nil {
		return err
	}
	if err := exporter.StyleHeader(f, SummarySheet, 2, 2); err != nil {
		return err
	}

	insightsRow := 2 + len(rows) + 1
	insights := [][]string{{"Key Insights"}}
	for _, s := range KeyInsights {
		insights = append(insights, []string{s})
	}
	if err := exporter.SetRowsAt(f, SummarySheet, insightsRow, insights); err != nil {
		return err
	}
	if err := exporter.StyleHeader(f, SummarySheet, insightsRow, 1); err != nil {
		return err
	}

	return exporter.AutoWidth(f, SummarySheet, append(rows, insights...))
}

func writeCompetitorSheet(f *excelize.File, result domain.StudyResult) error {
	rows := [][]string{{"Competitor", "Specialization", "Strengths", "Weaknesses", "Market Position"}}
	for _, c := range result.Competitors {
		rows = append(rows, []string{c.Name, c.Specialization, c.Strengths, c.Weaknesses, c.MarketPosition})
	}
	if err := exporter.SetRows(f, CompetitorSheet, rows); err != nil {
		return err
	}
	if err := exporter.StyleHeader(f, CompetitorSheet, 1, len(rows[0])); err != nil {
		return err
	}

	a := result.Competition
	block := [][]string{
		{"Metric", "Value"},
		{"Total competitors", fmt.Sprintf("%d", a.TotalCompetitors)},
		{"Average strengths per competitor", fmt.Sprintf("%.2f", a.AvgStrengthsPerCompetitor)},
		{"Average weaknesses per competitor", fmt.Sprintf("%.2f", a.AvgWeaknessesPerCompetitor)},
	}
	for _, tc := range a.TopStrengths {
		block = append(block, []string{"Top strength: " + tc.Text, fmt.Sprintf("%d", tc.Count)})
	}
	for _, pos := range sortedPositions(a.MarketPositionDistribution) {
		block = append(block, []string{"Position: " + pos, fmt.Sprintf("%d", a.MarketPositionDistribution[pos])})
	}

	blockRow := len(rows) + 2
	if err := exporter.SetRowsAt(f, CompetitorSheet, blockRow, block); err != nil {
		return err
	}
	if err := exporter.StyleHeader(f, CompetitorSheet, blockRow, 2); err != nil {
		return err
	}

	return exporter.AutoWidth(f, CompetitorSheet, append(rows, block...))
}

func writeProjectionSheet(f *excelize.File, result domain.StudyResult) error {
	if err := f.SetCellValue(ProjectionSheet, "A1", "FINANCIAL PROJECTIONS - YEAR 1"); err != nil {
		return err
	}

	header := make([]interface{}, len(ProjectionHeaders))
	for i, h := range ProjectionHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ProjectionSheet, fmt.Sprintf("A%d", projectionHeaderRow), &header); err != nil {
		return err
	}
	if err := exporter.StyleHeader(f, ProjectionSheet, projectionHeaderRow, len(ProjectionHeaders)); err != nil {
		return err
	}

	rev := result.Financial.Revenue
	cf := result.Financial.CashFlow
	for i := 0; i < financial.MonthsPerYear; i++ {
		row := []interface{}{
			monthLabel(i),
			round2(rev.MonthlyCustomers[i]),
			round2(cf.Revenue[i]),
			round2(cf.Costs[i]),
			round2(cf.GrossMargins[i]),
			round2(cf.NetCashFlows[i]),
			round2(cf.Cumulative[i]),
		}
		if err := f.SetSheetRow(ProjectionSheet, fmt.Sprintf("A%d", projectionHeaderRow+1+i), &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(ProjectionSheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(ProjectionSheet, "B", "G", 20); err != nil {
		return err
	}

	first := projectionHeaderRow + 1
	last := projectionHeaderRow + financial.MonthsPerYear
	return f.AddChart(ProjectionSheet, "I2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$C$%d", ProjectionSheet, projectionHeaderRow),
				Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", ProjectionSheet, first, last),
				Values:     fmt.Sprintf("'%s'!$C$%d:$C$%d", ProjectionSheet, first, last),
			},
		},
		Title:  []excelize.RichTextRun{{Text: "Monthly Revenue Projection"}},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Month"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Revenue (€)"}}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
}

func writeSensitivitySheet(f *excelize.File, result domain.StudyResult) error {
	s := result.Financial.Sensitivity
	ue := result.Financial.UnitEconomics

	rows := [][]string{
		{"Parameter", "Scenario", "Value", "Year 1 ROI (%)"},
		{"Base", "base", "", fmt.Sprintf("%.2f", s.BaseROI)},
	}
	for _, p := range s.CAC {
		rows = append(rows, []string{"Customer acquisition cost", p.Label, fmt.Sprintf("%g", p.Value), fmt.Sprintf("%.2f", p.ROI1Year)})
	}
	for _, p := range s.Churn {
		rows = append(rows, []string{"Monthly churn (%)", p.Label, fmt.Sprintf("%g", p.Value), fmt.Sprintf("%.2f", p.ROI1Year)})
	}
	rows = append(rows,
		[]string{},
		[]string{"Unit economics", "", "", ""},
		[]string{"Customer lifetime value", "", fmt.Sprintf("%.2f", ue.CustomerLifetimeValue), ""},
		[]string{"Payback period (months)", "", fmt.Sprintf("%.2f", ue.PaybackPeriodMonths), ""},
		[]string{"Annual churn (%)", "", fmt.Sprintf("%.2f", ue.AnnualChurnRatePct), ""},
	)

	if err := exporter.SetRows(f, SensitivitySheet, rows); err != nil {
		return err
	}
	if err := exporter.StyleHeader(f, SensitivitySheet, 1, 4); err != nil {
		return err
	}
	return exporter.AutoWidth(f, SensitivitySheet, rows)
}

func monthLabel(i int) string {
	return fmt.Sprintf("Month %d", i+1)
}

func breakEvenText(month *int) string {
	if month == nil {
		return "Not reached in year 1"
	}
	return fmt.Sprintf("Month %d", *month)
}
