package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero value", input: 0, expected: "0.00"},
		{name: "integer", input: 1500, expected: "1500.00"},
		{name: "rounds", input: 133.6518, expected: "133.65"},
		{name: "negative", input: -32975, expected: "-32975.00"},
		{name: "one decimal", input: 13.4, expected: "13.40"},
		{name: "nan", input: math.NaN(), expected: "0.00"},
		{name: "infinity", input: math.Inf(-1), expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatAmount(tt.input))
		})
	}
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "1", formatMonth(0))
	assert.Equal(t, "12", formatMonth(11))
}
