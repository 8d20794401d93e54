package financial

import (
	"context"
	"log/slog"
	"math"
	"time"

	"marketstudy/pkg/contracts/domain"
)

const (
	// MonthsPerYear is the projection horizon of year 1.
	MonthsPerYear = 12

	// DiscountRate is the annual rate applied to NPV.
	DiscountRate = 0.10

	// BaseOutYearFactor dampens base-scenario revenue for years 2 and 3.
	BaseOutYearFactor = 0.7

	// ConservativeFactor scales year 1 of the conservative scenario.
	ConservativeFactor = 0.7

	// ConservativeYear2Factor and ConservativeYear3Factor are applied on
	// top of the base-scenario dampening.
	ConservativeYear2Factor = 0.9
	ConservativeYear3Factor = 0.8

	// OptimisticFactor scales every year of the optimistic scenario.
	OptimisticFactor = 1.3
)

// Model computes investment, revenue, unit economics, ROI and cash flow
// from a fixed assumption set. A Model never mutates its assumptions.
type Model struct {
	assumptions Assumptions
	logger      *slog.Logger
}

// NewModel creates a model over a private copy of a.
func NewModel(a Assumptions, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		assumptions: a.clone(),
		logger:      logger,
	}
}

// NewDefaultModel creates a model over DefaultAssumptions.
func NewDefaultModel(logger *slog.Logger) *Model {
	return NewModel(DefaultAssumptions(), logger)
}

// Assumptions returns a copy of the model inputs.
func (m *Model) Assumptions() Assumptions {
	return m.assumptions.clone()
}

// TotalInvestment sums development and operating costs.
func (m *Model) TotalInvestment() domain.InvestmentSummary {
	dev := sum(m.assumptions.DevelopmentCosts)
	monthly := sum(m.assumptions.MonthlyOperatingCosts)
	firstYear := monthly * MonthsPerYear

	return domain.InvestmentSummary{
		TotalDevelopmentCost:   dev,
		TotalMonthlyOperating:  monthly,
		FirstYearOperatingCost: firstYear,
		TotalYear1Investment:   dev + firstYear,
	}
}

// ProjectRevenue compounds the customer base monthly through year 1 and
// annually through years 2 and 3, then derives the three scenarios.
func (m *Model) ProjectRevenue() domain.RevenueProjection {
	g := m.assumptions.Growth
	avgTx := m.assumptions.UnitEconomics.AvgTransactionValue

	var p domain.RevenueProjection
	customers := g.InitialMonthlyCustomers
	for i := 0; i < MonthsPerYear; i++ {
		p.MonthlyCustomers[i] = customers
		p.MonthlyRevenue[i] = customers * avgTx
		p.Year1Revenue += p.MonthlyRevenue[i]
		customers *= 1 + g.MonthlyGrowthPctYear1/100
	}

	p.Year2Customers = p.MonthlyCustomers[MonthsPerYear-1] * (1 + g.AnnualGrowthPctYear2/100)
	p.Year3Customers = p.Year2Customers * (1 + g.AnnualGrowthPctYear3/100)
	p.Year2Revenue = p.Year2Customers * avgTx * MonthsPerYear
	p.Year3Revenue = p.Year3Customers * avgTx * MonthsPerYear

	p.Base = domain.Scenario{
		Name: domain.ScenarioBase,
		AnnualRevenue: [3]float64{
			p.Year1Revenue,
			p.Year2Revenue * BaseOutYearFactor,
			p.Year3Revenue * BaseOutYearFactor,
		},
	}
	p.Conservative = domain.Scenario{
		Name: domain.ScenarioConservative,
		AnnualRevenue: [3]float64{
			p.Year1Revenue * ConservativeFactor,
			p.Year2Revenue * BaseOutYearFactor * ConservativeYear2Factor,
			p.Year3Revenue * BaseOutYearFactor * ConservativeYear3Factor,
		},
	}
	p.Optimistic = domain.Scenario{
		Name: domain.ScenarioOptimistic,
		AnnualRevenue: [3]float64{
			p.Year1Revenue * OptimisticFactor,
			p.Year2Revenue * OptimisticFactor,
			p.Year3Revenue * OptimisticFactor,
		},
	}
	return p
}

// UnitEconomics derives lifetime value and acquisition payback.
func (m *Model) UnitEconomics() domain.UnitEconomicsResult {
	ue := m.assumptions.UnitEconomics
	margin := ue.GrossMarginPct / 100
	annualChurn := 1 - math.Pow(1-ue.MonthlyChurnPct/100, MonthsPerYear)
	annualValue := ue.AvgTransactionValue * MonthsPerYear

	ltv := safeRatio(annualValue*margin, annualChurn)
	monthlyMarginPerCustomer := annualValue * margin / MonthsPerYear

	return domain.UnitEconomicsResult{
		CustomerLifetimeValue:   ltv,
		CustomerAcquisitionCost: ue.CustomerAcquisitionCost,
		LTVToCACRatio:           safeRatio(ltv, ue.CustomerAcquisitionCost),
		PaybackPeriodMonths:     safeRatio(ue.CustomerAcquisitionCost, monthlyMarginPerCustomer),
		AnnualChurnRatePct:      annualChurn * 100,
	}
}

// ROIMetrics evaluates return on investment over the base scenario.
// Annual flows are [-investment, GM(y1)-opex, GM(y2)-opex, GM(y3)-opex]
// where opex is the first-year operating cost. The monthly series opens
// with the development cost as a deficit.
func (m *Model) ROIMetrics(investment float64, revenue domain.RevenueProjection) domain.ROIResult {
	inv := m.TotalInvestment()
	margin := m.assumptions.UnitEconomics.GrossMarginPct / 100

	r := domain.ROIResult{Investment: investment}
	r.AnnualCashFlows[0] = -investment
	for i, rev := range revenue.Base.AnnualRevenue {
		r.AnnualCashFlows[i+1] = rev*margin - inv.FirstYearOperatingCost
	}

	var running float64
	for i, cf := range r.AnnualCashFlows {
		running += cf
		r.CumulativeCashFlows[i] = running
	}

	balance := -inv.TotalDevelopmentCost
	for i, rev := range revenue.MonthlyRevenue {
		net := rev*margin - inv.TotalMonthlyOperating
		balance += net
		r.MonthlyCashFlows[i] = net
		r.CumulativeMonthlyCashFlows[i] = balance
		if balance >= 0 && r.BreakEvenMonth == nil {
			month := i + 1
			r.BreakEvenMonth = &month
		}
	}

	r.ROI1Year = safeRatio(r.AnnualCashFlows[1], investment) * 100
	r.ROI3Years = safeRatio(r.AnnualCashFlows[1]+r.AnnualCashFlows[2]+r.AnnualCashFlows[3], investment) * 100
	r.NPV = npv(r.AnnualCashFlows[:], DiscountRate)
	r.PaybackPeriodYears = paybackYears(r.AnnualCashFlows[:])
	return r
}

// CashFlowProjection builds the year-1 monthly cash flow table. The
// development cost is charged in month 1 only.
func (m *Model) CashFlowProjection() domain.MonthlyCashFlow {
	inv := m.TotalInvestment()
	revenue := m.ProjectRevenue()
	margin := m.assumptions.UnitEconomics.GrossMarginPct / 100

	var cf domain.MonthlyCashFlow
	var balance, burn float64
	var burnMonths int
	for i := 0; i < MonthsPerYear; i++ {
		cf.Revenue[i] = revenue.MonthlyRevenue[i]
		cf.Costs[i] = inv.TotalMonthlyOperating
		cf.GrossMargins[i] = cf.Revenue[i] * margin

		net := cf.GrossMargins[i] - cf.Costs[i]
		if i == 0 {
			net -= inv.TotalDevelopmentCost
		}
		cf.NetCashFlows[i] = net

		balance += net
		cf.Cumulative[i] = balance
		if balance >= 0 && cf.MonthsToPositive == nil {
			// Zero-based: the number of months elapsed before the balance turned.
			month := i
			cf.MonthsToPositive = &month
		}
		if net < 0 {
			burn += net
			burnMonths++
		}
	}
	cf.AvgBurnRate = math.Abs(safeRatio(burn, float64(burnMonths)))
	return cf
}

// Run performs the full financial analysis.
func (m *Model) Run(ctx context.Context) domain.FinancialAnalysis {
	start := time.Now()

	inv := m.TotalInvestment()
	revenue := m.ProjectRevenue()
	analysis := domain.FinancialAnalysis{
		Investment:    inv,
		Revenue:       revenue,
		UnitEconomics: m.UnitEconomics(),
		ROI:           m.ROIMetrics(inv.TotalYear1Investment, revenue),
		CashFlow:      m.CashFlowProjection(),
		Sensitivity:   m.SensitivityAnalysis(),
	}

	m.logger.InfoContext(ctx, "financial analysis completed",
		slog.Float64("total_investment", inv.TotalYear1Investment),
		slog.Float64("year_1_revenue", revenue.Year1Revenue),
		slog.Float64("roi_1_year", analysis.ROI.ROI1Year),
		slog.Duration("duration", time.Since(start)),
	)
	return analysis
}

// RecomputeWith runs the full analysis on a variant of the model's
// assumptions. The model itself is unchanged.
func (m *Model) RecomputeWith(ctx context.Context, o Overrides) (domain.FinancialAnalysis, error) {
	if err := o.Validate(); err != nil {
		return domain.FinancialAnalysis{}, err
	}
	variant := m.assumptions.With(o)
	if err := variant.Validate(); err != nil {
		return domain.FinancialAnalysis{}, err
	}
	return NewModel(variant, m.logger).Run(ctx), nil
}

func npv(flows []float64, rate float64) float64 {
	var total float64
	factor := 1.0
	for _, cf := range flows {
		total += cf * factor
		factor /= 1 + rate
	}
	return total
}

// paybackYears walks the cumulative annual flows and interpolates within
// the year the balance turns non-negative. Nil when never recovered.
func paybackYears(flows []float64) *float64 {
	var cumulative float64
	for i, cf := range flows {
		cumulative += cf
		if cumulative < 0 {
			continue
		}
		years := float64(i)
		if cf != 0 {
			years += math.Abs(cumulative-cf) / cf
		}
		return &years
	}
	return nil
}
