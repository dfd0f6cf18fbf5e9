// Package currency converts reference-currency (USD) amounts into the
// display currency of a region and renders them the way the storefront does.
package currency

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Baseline is the region whose currency prices are stored in
const Baseline = "US"

// Region is one selectable display currency
type Region struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

var regions = []Region{
	{Code: "US", Symbol: "$", Rate: 1},
	{Code: "CA", Symbol: "$", Rate: 1.38},
	{Code: "GB", Symbol: "£", Rate: 0.79},
	{Code: "EU", Symbol: "€", Rate: 0.92},
	{Code: "AU", Symbol: "$", Rate: 1.55},
	{Code: "JP", Symbol: "¥", Rate: 150.45},
	{Code: "SE", Symbol: "kr", Rate: 10.84},
	{Code: "NO", Symbol: "kr", Rate: 11.31},
	{Code: "CH", Symbol: "Fr", Rate: 0.91},
	{Code: "MX", Symbol: "$", Rate: 19.22},
}

var byCode = func() map[string]Region {
	m := make(map[string]Region, len(regions))
	for _, r := range regions {
		m[r.Code] = r
	}
	return m
}()

// Regions lists the supported regions in selector order
func Regions() []Region {
	return append([]Region(nil), regions...)
}

// Supported reports whether code is a known region
func Supported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// RateFor returns the multiplier from USD into the region's currency.
// Unknown codes convert at 1.
func RateFor(code string) float64 {
	if r, ok := byCode[code]; ok && r.Rate != 0 {
		return r.Rate
	}
	return 1
}

// SymbolFor returns the display symbol, falling back to the baseline "$"
func SymbolFor(code string) string {
	if r, ok := byCode[code]; ok {
		return r.Symbol
	}
	return byCode[Baseline].Symbol
}

// Convert multiplies a base amount by the region rate
func Convert(amount float64, code string) float64 {
	return amount * RateFor(code)
}

// Format renders symbol + converted amount with exactly two decimals
func Format(amount float64, code string) string {
	return SymbolFor(code) + FixedTwo(Convert(amount, code))
}

// FixedTwo rounds the exact binary value of x to two decimals, ties away from
// zero, so 1.005 (stored as 1.00499...) gives "1.00" and 0.125 gives "0.13".
// A negative x keeps its sign even when it rounds to zero: -0.001 gives "-0.00".
func FixedTwo(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
	exact, err := decimal.NewFromString(strconv.FormatFloat(x, 'f', 30, 64))
	if err != nil {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
	out := exact.StringFixed(2)
	if x < 0 && !strings.HasPrefix(out, "-") {
		return "-" + out
	}
	return out
}
