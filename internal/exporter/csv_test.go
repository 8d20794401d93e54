package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"marketstudy/internal/config"
	"marketstudy/pkg/contracts/domain"
)

func setupWriter(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()
	paths := config.DefaultPaths(t.TempDir())
	return NewCSVWriter(paths, nil), paths
}

func readCSV(t *testing.T, path string) ([]byte, [][]string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return raw, records
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name    string
		options WriteOptions
		wantBOM bool
		want    [][]string
	}{
		{
			name: "headers and records",
			options: WriteOptions{
				Headers: []string{"a", "b"},
				Records: [][]string{{"1", "2"}, {"3", "4"}},
			},
			want: [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name: "bom prefix",
			options: WriteOptions{
				Headers:   []string{"Concurrent"},
				Records:   [][]string{{"LS Réception"}},
				BOMPrefix: true,
			},
			wantBOM: true,
			want:    [][]string{{"Concurrent"}, {"LS Réception"}},
		},
		{
			name: "quotes commas",
			options: WriteOptions{
				Records: [][]string{{"Good pricing, Fast delivery", `say "hi"`}},
			},
			want: [][]string{{"Good pricing, Fast delivery", `say "hi"`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, paths := setupWriter(t)
			require.NoError(t, w.WriteCSV("out.csv", tt.options))

			raw, records := readCSV(t, paths.ReportPath("out.csv"))
			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(raw, utf8BOM))
			assert.Equal(t, tt.want, records)
		})
	}
}

func TestCSVWriter_AppendToCSV(t *testing.T) {
	w, paths := setupWriter(t)

	require.NoError(t, w.WriteSimpleCSV("log.csv", []string{"n"}, [][]string{{"1"}}))
	require.NoError(t, w.AppendToCSV("log.csv", [][]string{{"2"}, {"3"}}))

	raw, records := readCSV(t, paths.ReportPath("log.csv"))
	assert.Equal(t, 1, bytes.Count(raw, utf8BOM))
	assert.Equal(t, [][]string{{"n"}, {"1"}, {"2"}, {"3"}}, records)
}

func TestCSVWriter_ResolvePath(t *testing.T) {
	w, paths := setupWriter(t)

	abs := filepath.Join(t.TempDir(), "elsewhere.csv")
	assert.Equal(t, abs, w.resolvePath(abs))
	assert.Equal(t, filepath.Join(paths.ReportsDir, "x.csv"), w.resolvePath("x.csv"))
}

func TestCSVWriter_ErrorScenarios(t *testing.T) {
	w, _ := setupWriter(t)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := w.WriteSimpleCSV(filepath.Join(blocker, "nested.csv"), nil, nil)
	assert.Error(t, err)
}

func TestCashFlowExporter_Export(t *testing.T) {
	w, paths := setupWriter(t)

	var cf domain.MonthlyCashFlow
	for i := range cf.Revenue {
		cf.Revenue[i] = float64(100 * (i + 1))
		cf.Costs[i] = 1500
		cf.GrossMargins[i] = cf.Revenue[i] * 0.7
		cf.NetCashFlows[i] = cf.GrossMargins[i] - cf.Costs[i]
	}
	cf.NetCashFlows[0] -= 32000
	cum := 0.0
	for i, v := range cf.NetCashFlows {
		cum += v
		cf.Cumulative[i] = cum
	}

	exp := NewCashFlowExporter(w, nil)
	require.NoError(t, exp.Export(paths.CashFlowCSV, cf))

	raw, records := readCSV(t, paths.CashFlowCSV)
	assert.True(t, bytes.HasPrefix(raw, utf8BOM))
	require.Len(t, records, 13)
	assert.Equal(t, CashFlowHeaders, records[0])
	assert.Equal(t, []string{"1", "100.00", "1500.00", "70.00", "-33430.00", "-33430.00"}, records[1])
	assert.Equal(t, "12", records[12][0])
}

func TestXLSXHelpers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]string{
		{"Metric", "Value"},
		{"A very long label that will certainly exceed the column width cap", "1"},
	}
	require.NoError(t, SetRows(f, "Sheet1", rows))
	require.NoError(t, SetRowsAt(f, "Sheet1", 4, [][]string{{"later"}}))
	require.NoError(t, StyleHeader(f, "Sheet1", 1, 2))
	require.NoError(t, AutoWidth(f, "Sheet1", rows))

	got, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "Value", got[0][1])
	assert.Equal(t, "later", got[3][0])

	width, err := f.GetColWidth("Sheet1", "A")
	require.NoError(t, err)
	assert.Equal(t, float64(MaxColumnWidth), width)

	style, err := f.GetCellStyle("Sheet1", "B1")
	require.NoError(t, err)
	assert.NotZero(t, style)
}
