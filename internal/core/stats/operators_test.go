package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOperators_InitialAndApply(t *testing.T) {
	tests := []struct {
		name        string
		op          string
		incoming    decimal.Decimal
		current     decimal.Decimal
		next        decimal.Decimal
		wantInitial decimal.Decimal
		wantApply   decimal.Decimal
	}{
		{
			name:        "count",
			op:          OpCount,
			incoming:    decimal.NewFromInt(123),
			current:     decimal.NewFromInt(9),
			next:        decimal.NewFromInt(456),
			wantInitial: decimal.NewFromInt(1),
			wantApply:   decimal.NewFromInt(10),
		},
		{
			name:        "sum",
			op:          OpSum,
			incoming:    decimal.NewFromInt(3),
			current:     decimal.NewFromInt(9),
			next:        decimal.NewFromInt(4),
			wantInitial: decimal.NewFromInt(3),
			wantApply:   decimal.NewFromInt(13),
		},
		{
			name:        "min keeps lower",
			op:          OpMin,
			incoming:    decimal.NewFromInt(3),
			current:     decimal.NewFromInt(9),
			next:        decimal.NewFromInt(4),
			wantInitial: decimal.NewFromInt(3),
			wantApply:   decimal.NewFromInt(4),
		},
		{
			name:        "min keeps current when incoming is higher",
			op:          OpMin,
			incoming:    decimal.NewFromInt(3),
			current:     decimal.NewFromInt(4),
			next:        decimal.NewFromInt(9),
			wantInitial: decimal.NewFromInt(3),
			wantApply:   decimal.NewFromInt(4),
		},
		{
			name:        "max keeps higher",
			op:          OpMax,
			incoming:    decimal.NewFromInt(3),
			current:     decimal.NewFromInt(9),
			next:        decimal.NewFromInt(4),
			wantInitial: decimal.NewFromInt(3),
			wantApply:   decimal.NewFromInt(9),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg, ok := Operators[tc.op]
			require.True(t, ok)
			require.True(t, tc.wantInitial.Equal(agg.Initial(tc.incoming)))
			require.True(t, tc.wantApply.Equal(agg.Apply(tc.current, tc.next)))
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []decimal.Decimal{
		decimal.NewFromInt(10),
		decimal.NewFromInt(20),
		decimal.NewFromInt(30),
	}

	s, ok := Summarize(values)
	require.True(t, ok)
	require.Equal(t, int64(3), s.Count)
	require.True(t, decimal.NewFromInt(60).Equal(s.Sum))
	require.True(t, decimal.NewFromInt(20).Equal(s.Mean))
	require.True(t, decimal.NewFromInt(10).Equal(s.Min))
	require.True(t, decimal.NewFromInt(30).Equal(s.Max))
	require.True(t, s.HasStdDev)
	// Sample variance of {10,20,30} is 100, so the deviation is exactly 10.
	require.Equal(t, "10.00", s.StdDev.StringFixed(2))
}

func TestSummarize_SingleValueHasNoStdDev(t *testing.T) {
	s, ok := Summarize([]decimal.Decimal{decimal.NewFromInt(42)})
	require.True(t, ok)
	require.Equal(t, int64(1), s.Count)
	require.True(t, decimal.NewFromInt(42).Equal(s.Mean))
	require.False(t, s.HasStdDev)
}

func TestSummarize_Empty(t *testing.T) {
	_, ok := Summarize(nil)
	require.False(t, ok)
}

func TestMean(t *testing.T) {
	m, ok := Mean([]decimal.Decimal{
		decimal.RequireFromString("10.00"),
		decimal.RequireFromString("20.00"),
		decimal.RequireFromString("30.00"),
		decimal.RequireFromString("5.00"),
	})
	require.True(t, ok)
	require.Equal(t, "16.25", m.StringFixed(2))

	_, ok = Mean(nil)
	require.False(t, ok)
}
