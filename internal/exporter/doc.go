// Package exporter writes study data to flat files.
//
// CSVWriter is the core CSV writer with UTF-8 BOM support for Excel.
// CashFlowExporter builds on it to export the monthly cash flow projection.
// The xlsx helpers (SetRows, StyleHeader, AutoWidth) are shared by every
// package that produces an excelize workbook.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths, logger)
//	cashFlow := exporter.NewCashFlowExporter(writer, logger)
//	err := cashFlow.Export(paths.CashFlowCSV, analysis.CashFlow)
package exporter
