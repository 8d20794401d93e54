// Package competitor turns the competitor research table into aggregate
// statistics.
//
// Analyze is pure and never fails. The remaining types move tables in and
// out of files: Loader reads research workbooks with excelize,
// TemplateWriter seeds the blank research workbook, and Store keeps a JSON
// copy keyed by spreadsheet column name.
package competitor
