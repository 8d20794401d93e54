// Package reports renders a completed study as an Excel workbook, a PDF
// slide deck and an HTML executive summary. Generator produces all three
// concurrently.
package reports
