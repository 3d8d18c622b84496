package decimal

import (
	"github.com/shopspring/decimal"
)

// EarningsPlaces is the scale earnings are rounded to at each compounding step
const EarningsPlaces int32 = 8

// FractionPlaces is the scale sampled allocation fractions are rounded to
const FractionPlaces int32 = 6

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// String returns the string representation with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the money amount with a currency sign
func (m Money) Format() string {
	return "$" + m.String()
}

// MonthlyRate converts an annual nominal rate into its monthly rate
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// GrowthFactor returns 1 + annual/12, the per-month compounding multiplier
func GrowthFactor(annual decimal.Decimal) decimal.Decimal {
	return one.Add(MonthlyRate(annual))
}

// CompoundSeries returns base × (1 + annual/12)^m for m in [0, periods).
// Each step multiplies the previous value and rounds to EarningsPlaces, so the
// first element is exactly base.
func CompoundSeries(base, annual decimal.Decimal, periods int) []decimal.Decimal {
	if periods <= 0 {
		return []decimal.Decimal{}
	}
	factor := GrowthFactor(annual)
	series := make([]decimal.Decimal, periods)
	series[0] = base
	for m := 1; m < periods; m++ {
		series[m] = series[m-1].Mul(factor).Round(EarningsPlaces)
	}
	return series
}

// Uniform maps u in [0,1) onto [lo, hi) and rounds to FractionPlaces.
// Rounding can land on hi itself, never beyond it.
func Uniform(lo, hi decimal.Decimal, u float64) decimal.Decimal {
	span := hi.Sub(lo)
	return lo.Add(span.Mul(decimal.NewFromFloat(u))).Round(FractionPlaces)
}

// Residual returns 1 minus the given parts
func Residual(parts ...decimal.Decimal) decimal.Decimal {
	r := one
	for _, p := range parts {
		r = r.Sub(p)
	}
	return r
}

// Sum adds all values
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
