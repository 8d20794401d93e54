package financial

import (
	"fmt"
	"strings"

	"marketstudy/pkg/contracts/domain"
)

// TargetLTVToCAC is the ratio above which acquisition is considered
// efficient.
const TargetLTVToCAC = 3.0

// ExecutiveSummary renders the headline figures of an analysis as
// markdown.
func ExecutiveSummary(businessName string, a domain.FinancialAnalysis) string {
	var b strings.Builder

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "- **Project investment:** %s\n", FormatEuro(a.Investment.TotalYear1Investment))
	fmt.Fprintf(&b, "- **Break-even point:** %s\n", formatMonth(a.ROI.BreakEvenMonth))
	fmt.Fprintf(&b, "- **Year 1 ROI:** %.1f%%\n", a.ROI.ROI1Year)
	fmt.Fprintf(&b, "- **Year 3 ROI:** %.1f%%\n", a.ROI.ROI3Years)
	fmt.Fprintf(&b, "- **NPV (%.0f%%):** %s\n", DiscountRate*100, FormatEuro(a.ROI.NPV))
	fmt.Fprintf(&b, "- **LTV:CAC:** %.1f:1\n\n", a.UnitEconomics.LTVToCACRatio)

	if a.ROI.BreakEvenMonth != nil {
		fmt.Fprintf(&b, "%s reaches cumulative break-even in month %d of its first year.", businessName, *a.ROI.BreakEvenMonth)
	} else {
		fmt.Fprintf(&b, "%s does not reach cumulative break-even within its first year.", businessName)
	}
	if a.UnitEconomics.LTVToCACRatio >= TargetLTVToCAC {
		fmt.Fprintf(&b, " Unit economics are healthy, with an LTV:CAC ratio above the %.0f:1 target.", TargetLTVToCAC)
	} else {
		fmt.Fprintf(&b, " The LTV:CAC ratio is below the %.0f:1 target.", TargetLTVToCAC)
	}
	b.WriteString("\n")
	return b.String()
}

// FormatEuro renders an amount with thousands separators and no decimals.
func FormatEuro(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := fmt.Sprintf("%.0f", v)

	var out strings.Builder
	if neg {
		out.WriteByte('-')
	}
	out.WriteString("€")
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func formatMonth(month *int) string {
	if month == nil {
		return "not reached in year 1"
	}
	return fmt.Sprintf("month %d", *month)
}
