// Package market holds the static market overview and writes it out as the
// market_overview.xlsx workbook and market_data.json.
package market
