package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateFor(t *testing.T) {
	tests := []struct {
		code string
		want float64
	}{
		{"US", 1},
		{"CA", 1.38},
		{"GB", 0.79},
		{"JP", 150.45},
		{"MX", 19.22},
		{"XX", 1},
		{"", 1},
		{"us", 1},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, RateFor(tt.code))
		})
	}
}

func TestSymbolFor(t *testing.T) {
	assert.Equal(t, "$", SymbolFor("US"))
	assert.Equal(t, "£", SymbolFor("GB"))
	assert.Equal(t, "€", SymbolFor("EU"))
	assert.Equal(t, "¥", SymbolFor("JP"))
	assert.Equal(t, "kr", SymbolFor("SE"))
	assert.Equal(t, "Fr", SymbolFor("CH"))
	assert.Equal(t, "$", SymbolFor("ZZ"), "unknown code falls back to baseline symbol")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		region string
		want   string
	}{
		{"baseline", 12.5, "US", "$12.50"},
		{"zero", 0, "US", "$0.00"},
		{"canada", 19, "CA", "$26.22"},
		{"sweden", 7.5, "SE", "kr81.30"},
		{"japan", 8, "JP", "¥1203.60"},
		{"britain", 36, "GB", "£28.44"},
		{"binary value below tie rounds down", 1.005, "US", "$1.00"},
		{"exact tie rounds up", 0.125, "US", "$0.13"},
		{"unknown region", 14, "ZZ", "$14.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.region))
		})
	}
}

func TestFormat_UnknownRegionMatchesBaseline(t *testing.T) {
	for _, amount := range []float64{0, 0.01, 3, 7.5, 129, 1234.567} {
		assert.Equal(t, Format(amount, Baseline), Format(amount, "NOPE"))
	}
}

func TestSupported(t *testing.T) {
	for _, r := range Regions() {
		assert.True(t, Supported(r.Code), r.Code)
	}
	assert.False(t, Supported("XX"))
	assert.Len(t, Regions(), 10)
}

func TestFixedTwo_NegativeSign(t *testing.T) {
	assert.Equal(t, "-0.00", FixedTwo(-0.001))
	assert.Equal(t, "-0.00", FixedTwo(-0.004))
	assert.Equal(t, "-1.25", FixedTwo(-1.25))
	assert.Equal(t, "0.00", FixedTwo(math.Copysign(0, -1)), "negative zero is not below zero")
}
