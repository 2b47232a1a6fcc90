package stats

import (
	"math"

	"github.com/shopspring/decimal"
)

// Summary holds whole-collection statistics over a list of decimal values.
type Summary struct {
	Count int64
	Sum   decimal.Decimal
	Mean  decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal

	// StdDev is the sample standard deviation (N-1 denominator). It needs at
	// least two values; HasStdDev reports whether it is set.
	StdDev    decimal.Decimal
	HasStdDev bool
}

// Summarize computes count/sum/mean/min/max and, when there are at least two
// values, the sample standard deviation. Returns ok=false for an empty input.
//
// Sums and the mean stay in exact decimal arithmetic. The square root for the
// standard deviation goes through float64: it is a display-only figure and
// decimal has no native root.
func Summarize(values []decimal.Decimal) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	count := Operators[OpCount]
	sum := Operators[OpSum]
	min := Operators[OpMin]
	max := Operators[OpMax]

	n := count.Initial(values[0])
	s := Summary{
		Sum: sum.Initial(values[0]),
		Min: min.Initial(values[0]),
		Max: max.Initial(values[0]),
	}
	for _, v := range values[1:] {
		n = count.Apply(n, v)
		s.Sum = sum.Apply(s.Sum, v)
		s.Min = min.Apply(s.Min, v)
		s.Max = max.Apply(s.Max, v)
	}

	s.Count = n.IntPart()
	s.Mean = s.Sum.Div(n)

	if s.Count >= 2 {
		variance := decimal.Zero
		for _, v := range values {
			d := v.Sub(s.Mean)
			variance = variance.Add(d.Mul(d))
		}
		variance = variance.Div(decimal.NewFromInt(s.Count - 1))
		s.StdDev = decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
		s.HasStdDev = true
	}

	return s, true
}

// Mean returns the arithmetic mean of values. ok=false for an empty input.
func Mean(values []decimal.Decimal) (decimal.Decimal, bool) {
	if len(values) == 0 {
		return decimal.Zero, false
	}
	sum := Operators[OpSum]
	total := sum.Initial(values[0])
	for _, v := range values[1:] {
		total = sum.Apply(total, v)
	}
	return total.Div(decimal.NewFromInt(int64(len(values)))), true
}
