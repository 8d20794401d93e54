// Package financial projects the economics of the rental business from a
// fixed set of assumptions.
//
// # Model
//
// A Model wraps an immutable Assumptions value and derives:
//
//   - TotalInvestment: development costs plus twelve months of operating costs
//   - ProjectRevenue: a compounding year-1 customer series and three
//     annual scenarios (base, conservative, optimistic)
//   - UnitEconomics: lifetime value, LTV:CAC and acquisition payback
//   - ROIMetrics: annual and monthly cash flows, break-even month, ROI,
//     NPV at DiscountRate and interpolated payback in years
//   - CashFlowProjection: the year-1 monthly cash flow table
//   - SensitivityAnalysis: year-1 ROI under alternative CAC and churn values
//
// Run bundles every output into a domain.FinancialAnalysis.
//
// # What-if runs
//
// Assumptions.With derives a deep copy with Overrides applied, and
// Model.RecomputeWith runs the full analysis on such a copy. Neither
// touches the original assumptions.
//
// Zero denominators never fail: every ratio goes through safeRatio and
// yields 0.
package financial
