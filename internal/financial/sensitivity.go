package financial

import (
	"strconv"

	"marketstudy/pkg/contracts/domain"
)

// Candidate values swept by SensitivityAnalysis.
var (
	CACCandidates   = []float64{20, 25, 30}
	ChurnCandidates = []float64{3, 5, 7}
)

// SensitivityAnalysis re-evaluates year-1 ROI with alternative CAC and
// churn values. Every point is computed on a derived copy of the
// assumptions, against the base investment total.
func (m *Model) SensitivityAnalysis() domain.SensitivityResult {
	base := m.assumptions
	investment := m.TotalInvestment().TotalYear1Investment
	eval := func(a Assumptions) float64 {
		variant := &Model{assumptions: a, logger: m.logger}
		return variant.ROIMetrics(investment, variant.ProjectRevenue()).ROI1Year
	}

	return domain.SensitivityResult{
		BaseROI: eval(base),
		CAC: sweep(base, CACCandidates,
			func(v float64) string { return "CAC_" + formatValue(v) },
			func(v float64) Overrides { return Overrides{CustomerAcquisitionCost: &v} },
			eval,
		),
		Churn: sweep(base, ChurnCandidates,
			func(v float64) string { return "Churn_" + formatValue(v) + "%" },
			func(v float64) Overrides { return Overrides{MonthlyChurnPct: &v} },
			eval,
		),
	}
}

func sweep(
	base Assumptions,
	values []float64,
	label func(float64) string,
	override func(float64) Overrides,
	eval func(Assumptions) float64,
) []domain.SensitivityPoint {
	points := make([]domain.SensitivityPoint, 0, len(values))
	for _, v := range values {
		points = append(points, domain.SensitivityPoint{
			Label:    label(v),
			Value:    v,
			ROI1Year: eval(base.With(override(v))),
		})
	}
	return points
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
