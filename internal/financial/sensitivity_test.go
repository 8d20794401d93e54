package financial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketstudy/pkg/contracts/domain"
)

func TestSensitivityAnalysis(t *testing.T) {
	m := NewDefaultModel(nil)
	before := m.Assumptions()

	result := m.SensitivityAnalysis()

	require.Len(t, result.CAC, 3)
	require.Len(t, result.Churn, 3)
	assert.Equal(t, "CAC_20", result.CAC[0].Label)
	assert.Equal(t, "CAC_30", result.CAC[2].Label)
	assert.Equal(t, "Churn_3%", result.Churn[0].Label)
	assert.Equal(t, "Churn_7%", result.Churn[2].Label)

	// ROI does not depend on CAC or churn, so every point matches the base.
	for _, p := range append(result.CAC, result.Churn...) {
		assert.InDelta(t, result.BaseROI, p.ROI1Year, 1e-9, p.Label)
	}
	assert.Equal(t, before, m.Assumptions())
}

func TestSweepLeavesBaseIntactOnPanic(t *testing.T) {
	base := DefaultAssumptions()

	assert.Panics(t, func() {
		sweep(base, []float64{40},
			func(v float64) string { return formatValue(v) },
			func(v float64) Overrides { return Overrides{CustomerAcquisitionCost: &v} },
			func(Assumptions) float64 { panic("evaluation failed") },
		)
	})

	assert.Equal(t, 25.0, base.UnitEconomics.CustomerAcquisitionCost)
	assert.Equal(t, 5.0, base.UnitEconomics.MonthlyChurnPct)
}

func TestSweepAppliesOverride(t *testing.T) {
	base := DefaultAssumptions()

	points := sweep(base, []float64{1, 2},
		func(v float64) string { return "x" + formatValue(v) },
		func(v float64) Overrides { return Overrides{MonthlyChurnPct: &v} },
		func(a Assumptions) float64 { return a.UnitEconomics.MonthlyChurnPct * 10 },
	)

	assert.Equal(t, []domain.SensitivityPoint{
		{Label: "x1", Value: 1, ROI1Year: 10},
		{Label: "x2", Value: 2, ROI1Year: 20},
	}, points)
	assert.Equal(t, 5.0, base.UnitEconomics.MonthlyChurnPct)
}
