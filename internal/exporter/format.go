package exporter

import (
	"math"
	"strconv"
)

// formatAmount renders a currency amount with two decimals. NaN and
// infinities are written as zero so spreadsheets can still sum the column.
func formatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatMonth renders a zero-based month index as its 1-based number.
func formatMonth(index int) string {
	return strconv.Itoa(index + 1)
}
