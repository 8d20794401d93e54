// Package files catalogs the files a study run leaves behind: the
// workbook, deck, summary page, cash-flow CSV and JSON snapshots in the
// reports and data directories.
//
// Find only accepts bare file names, so HTTP download handlers can pass
// a URL parameter straight through without risking path traversal.
//
//	catalog := files.NewCatalog(paths.ReportsDir, paths.DataDir)
//	list, err := catalog.List()
package files
