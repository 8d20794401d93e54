package exporter

import (
	"log/slog"

	"marketstudy/pkg/contracts/domain"
)

// CashFlowHeaders are the columns of the monthly cash flow export.
var CashFlowHeaders = []string{
	"Month",
	"Revenue",
	"Operating Costs",
	"Gross Margin",
	"Net Cash Flow",
	"Cumulative Cash Flow",
}

// CashFlowExporter writes the first-year monthly cash flow as CSV.
type CashFlowExporter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewCashFlowExporter creates an exporter on top of writer.
func NewCashFlowExporter(writer *CSVWriter, logger *slog.Logger) *CashFlowExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CashFlowExporter{
		writer: writer,
		logger: logger.With(slog.String("component", "cash_flow_exporter")),
	}
}

// CashFlowRecords converts the projection into one row per month.
func CashFlowRecords(cf domain.MonthlyCashFlow) [][]string {
	records := make([][]string, 0, len(cf.Revenue))
	for i := range cf.Revenue {
		records = append(records, []string{
			formatMonth(i),
			formatAmount(cf.Revenue[i]),
			formatAmount(cf.Costs[i]),
			formatAmount(cf.GrossMargins[i]),
			formatAmount(cf.NetCashFlows[i]),
			formatAmount(cf.Cumulative[i]),
		})
	}
	return records
}

// Export writes the cash flow to filePath.
func (e *CashFlowExporter) Export(filePath string, cf domain.MonthlyCashFlow) error {
	if err := e.writer.WriteSimpleCSV(filePath, CashFlowHeaders, CashFlowRecords(cf)); err != nil {
		e.logger.Error("cash flow export failed",
			slog.String("path", filePath),
			slog.String("error", err.Error()))
		return err
	}

	e.logger.Info("cash flow exported",
		slog.String("path", filePath),
		slog.Float64("avg_burn_rate", cf.AvgBurnRate))
	return nil
}
