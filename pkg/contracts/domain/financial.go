package domain

// UnitEconomicsInputs are per-customer assumptions. Percentages are whole
// numbers (70 means 70%).
type UnitEconomicsInputs struct {
	AvgTransactionValue     float64 `json:"avg_transaction_value" yaml:"avg_transaction_value" validate:"gte=0"`
	GrossMarginPct          float64 `json:"gross_margin" yaml:"gross_margin" validate:"gte=0,lte=100"`
	CustomerAcquisitionCost float64 `json:"customer_acquisition_cost" yaml:"customer_acquisition_cost" validate:"gte=0"`
	MonthlyChurnPct         float64 `json:"monthly_churn_rate" yaml:"monthly_churn_rate" validate:"gte=0,lte=100"`
}

// GrowthInputs drive the customer projection.
type GrowthInputs struct {
	InitialMonthlyCustomers float64 `json:"initial_monthly_customers" yaml:"initial_monthly_customers" validate:"gte=0"`
	MonthlyGrowthPctYear1   float64 `json:"monthly_growth_rate_year1" yaml:"monthly_growth_rate_year1" validate:"gte=-100"`
	AnnualGrowthPctYear2    float64 `json:"annual_growth_rate_year2" yaml:"annual_growth_rate_year2" validate:"gte=-100"`
	AnnualGrowthPctYear3    float64 `json:"annual_growth_rate_year3" yaml:"annual_growth_rate_year3" validate:"gte=-100"`
}

// InvestmentSummary is the result of summing cost assumptions.
type InvestmentSummary struct {
	TotalDevelopmentCost   float64 `json:"total_development_cost"`
	TotalMonthlyOperating  float64 `json:"total_monthly_operating"`
	FirstYearOperatingCost float64 `json:"first_year_operating_cost"`
	TotalYear1Investment   float64 `json:"total_year_1_investment"`
}

// ScenarioName identifies a revenue scenario.
type ScenarioName string

const (
	ScenarioBase         ScenarioName = "base"
	ScenarioConservative ScenarioName = "conservative"
	ScenarioOptimistic   ScenarioName = "optimistic"
)

// Scenario is a three-year revenue path.
type Scenario struct {
	Name          ScenarioName `json:"name"`
	AnnualRevenue [3]float64   `json:"annual_revenue"`
}

// RevenueProjection holds the year-1 monthly series and the three
// annual scenarios derived from it.
type RevenueProjection struct {
	MonthlyCustomers [12]float64 `json:"monthly_customers"`
	MonthlyRevenue   [12]float64 `json:"monthly_revenue"`
	Year1Revenue     float64     `json:"year_1_revenue"`
	Year2Customers   float64     `json:"year_2_customers"`
	Year2Revenue     float64     `json:"year_2_revenue"`
	Year3Customers   float64     `json:"year_3_customers"`
	Year3Revenue     float64     `json:"year_3_revenue"`
	Base             Scenario    `json:"base"`
	Conservative     Scenario    `json:"conservative"`
	Optimistic       Scenario    `json:"optimistic"`
}

// UnitEconomicsResult describes the value of a single customer.
type UnitEconomicsResult struct {
	CustomerLifetimeValue   float64 `json:"customer_lifetime_value"`
	CustomerAcquisitionCost float64 `json:"customer_acquisition_cost"`
	LTVToCACRatio           float64 `json:"ltv_to_cac_ratio"`
	PaybackPeriodMonths     float64 `json:"payback_period_months"`
	AnnualChurnRatePct      float64 `json:"annual_churn_rate"`
}

// ROIResult holds return metrics over the base scenario.
type ROIResult struct {
	Investment                 float64     `json:"investment"`
	AnnualCashFlows            [4]float64  `json:"annual_cash_flows"`
	CumulativeCashFlows        [4]float64  `json:"cumulative_cash_flows"`
	MonthlyCashFlows           [12]float64 `json:"monthly_cash_flows"`
	CumulativeMonthlyCashFlows [12]float64 `json:"cumulative_monthly_cash_flows"`
	// BreakEvenMonth is the 1-based month whose cumulative cash flow first
	// covers the development cost; null when it never does.
	BreakEvenMonth             *int        `json:"break_even_month"`
	ROI1Year                   float64     `json:"roi_1_year"`
	ROI3Years                  float64     `json:"roi_3_years"`
	NPV                        float64     `json:"npv"`
	// PaybackPeriodYears is interpolated over the annual cumulative series.
	// Null means the investment is not recovered within three years.
	PaybackPeriodYears         *float64    `json:"payback_period_years"`
}

// MonthlyCashFlow is the year-1 cash flow table.
type MonthlyCashFlow struct {
	Revenue          [12]float64 `json:"monthly_revenues"`
	Costs            [12]float64 `json:"monthly_costs"`
	GrossMargins     [12]float64 `json:"monthly_gross_margins"`
	NetCashFlows     [12]float64 `json:"net_cash_flows"`
	Cumulative       [12]float64 `json:"cumulative_cash_flow"`
	AvgBurnRate      float64     `json:"avg_monthly_burn_rate"`
	// MonthsToPositive is the zero-based index of the first month whose
	// cumulative balance is non-negative; null when it never is.
	MonthsToPositive *int        `json:"months_to_positive_cash_flow"`
}

// SensitivityPoint is one what-if evaluation.
type SensitivityPoint struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	ROI1Year float64 `json:"roi_1_year"`
}

// SensitivityResult lists ROI under alternative CAC and churn values.
type SensitivityResult struct {
	BaseROI float64            `json:"base_roi"`
	CAC     []SensitivityPoint `json:"cac_sensitivity"`
	Churn   []SensitivityPoint `json:"churn_sensitivity"`
}

// FinancialAnalysis groups every financial output of one model run.
type FinancialAnalysis struct {
	Investment    InvestmentSummary   `json:"investment_requirements"`
	Revenue       RevenueProjection   `json:"revenue_projections"`
	UnitEconomics UnitEconomicsResult `json:"unit_economics"`
	ROI           ROIResult           `json:"roi_metrics"`
	CashFlow      MonthlyCashFlow     `json:"cash_flow_projection"`
	Sensitivity   SensitivityResult   `json:"sensitivity_analysis"`
}
