package testutil

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"marketstudy/pkg/contracts/domain"
)

// SampleCompetitors returns three filled-in research rows.
func SampleCompetitors() []domain.CompetitorRecord {
	return []domain.CompetitorRecord{
		{
			Name:           "LS Réception",
			Services:       "Tents, Furniture, Catering equipment",
			PricingRange:   "€€€",
			Specialization: "Weddings, Corporate",
			Strengths:      "Good pricing, Fast delivery",
			Weaknesses:     "Limited stock",
			MarketPosition: "Leader",
		},
		{
			Name:           "Organi-Sons",
			Services:       "Sound, Lighting",
			PricingRange:   "€€",
			Specialization: "Concerts, Weddings",
			Strengths:      "Good pricing, Local presence",
			Weaknesses:     "",
			MarketPosition: "Challenger",
		},
		{
			Name:           "Sonovolante",
			Services:       "Sound",
			PricingRange:   "€",
			Specialization: "Private parties",
			Strengths:      "Fast delivery",
			Weaknesses:     "Small team, No website",
			MarketPosition: "Leader",
		},
	}
}

// WriteWorkbook saves rows to a single-sheet xlsx file. The first row is
// written as-is, so callers pass headers explicitly.
func WriteWorkbook(t *testing.T, path, sheet string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}
