package exporter

import (
	"github.com/xuri/excelize/v2"
)

// MaxColumnWidth caps auto-sized spreadsheet columns.
const MaxColumnWidth = 50

// SetRows writes rows to sheet starting at A1.
func SetRows(f *excelize.File, sheet string, rows [][]string) error {
	return SetRowsAt(f, sheet, 1, rows)
}

// SetRowsAt writes rows to sheet starting at column A of firstRow.
func SetRowsAt(f *excelize.File, sheet string, firstRow int, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, firstRow+i)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// HeaderStyle registers the bold-on-grey header style and returns its id.
func HeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
}

// StyleHeader applies the header style to the first columns cells of row.
func StyleHeader(f *excelize.File, sheet string, row, columns int) error {
	if columns <= 0 {
		return nil
	}
	style, err := HeaderStyle(f)
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

// AutoWidth sizes each column to its longest cell, capped at MaxColumnWidth.
func AutoWidth(f *excelize.File, sheet string, rows [][]string) error {
	widths := map[int]int{}
	for _, row := range rows {
		for j, v := range row {
			if n := len([]rune(v)) + 2; n > widths[j] {
				widths[j] = n
			}
		}
	}
	for j, w := range widths {
		if w > MaxColumnWidth {
			w = MaxColumnWidth
		}
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(w)); err != nil {
			return err
		}
	}
	return nil
}
