package market

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "marketstudy/internal/errors"
)

func TestDefaultInfo(t *testing.T) {
	info := DefaultInfo()

	assert.Equal(t, "Festive Equipment Rental", info.Industry)
	assert.Equal(t, "Niort, France", info.Location)
	assert.Len(t, info.TargetMarket, 5)
	assert.Len(t, info.SeasonalityFactors, 3)
	assert.Len(t, info.MarketTrends, 3)
}

func TestOverviewRows(t *testing.T) {
	rows := OverviewRows(DefaultInfo())

	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Category", "Details"}, rows[0])
	assert.Equal(t, []string{"Primary Location", "Niort, France"}, rows[2])
	assert.Contains(t, rows[3][1], "Wedding organizers, Corporate event planners")
}

func TestWriter_WriteOverview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "market_overview.xlsx")
	w := NewWriter(DefaultInfo(), nil)

	require.NoError(t, w.WriteOverview(context.Background(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{OverviewSheet, SegmentsSheet}, f.GetSheetList())

	overview, err := f.GetRows(OverviewSheet)
	require.NoError(t, err)
	assert.Equal(t, "Festive Equipment Rental", overview[1][1])

	segments, err := f.GetRows(SegmentsSheet)
	require.NoError(t, err)
	require.Len(t, segments, 6)
	assert.Equal(t, "Estimated Market Share", segments[0][1])
	assert.Equal(t, "Private party organizers", segments[5][0])
}

func TestWriter_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market_data.json")

	_, err := LoadJSON(path)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	require.NoError(t, NewWriter(DefaultInfo(), nil).SaveJSON(path))

	info, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultInfo(), info)
}
