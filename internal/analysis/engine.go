package analysis

import (
	"sort"

	"github.com/bodega-labs/bodega/internal/core/stats"
	"github.com/shopspring/decimal"
)

// Row is one (key, measure) pair fed to the engine.
type Row struct {
	Key   string
	Value decimal.Decimal
}

// Group is one aggregated group returned by GroupSum.
type Group struct {
	Key   string
	Sum   decimal.Decimal
	Count int64
}

// Engine provides the bulk group/sort primitives the pipeline consumes.
// The pipeline owns no grouping logic of its own: everything that looks like a
// shuffle goes through this seam, so a distributed implementation can replace
// MemoryEngine without touching the metric definitions.
type Engine interface {
	// GroupSum groups rows by key, sums the measure and counts rows per group,
	// and returns the groups sorted by sum descending. Rank ties break
	// lexicographically ascending on the key, which keeps results
	// deterministic across runs.
	GroupSum(rows []Row) []Group

	// Summarize computes whole-collection statistics over values.
	// ok is false for an empty input.
	Summarize(values []decimal.Decimal) (stats.Summary, bool)
}

// MemoryEngine is the single-process implementation of Engine.
type MemoryEngine struct{}

func (MemoryEngine) GroupSum(rows []Row) []Group {
	sum := stats.Operators[stats.OpSum]
	count := stats.Operators[stats.OpCount]

	type fold struct {
		sum   decimal.Decimal
		count decimal.Decimal
	}
	groups := make(map[string]*fold)
	for _, row := range rows {
		g, ok := groups[row.Key]
		if !ok {
			groups[row.Key] = &fold{sum: sum.Initial(row.Value), count: count.Initial(row.Value)}
			continue
		}
		g.sum = sum.Apply(g.sum, row.Value)
		g.count = count.Apply(g.count, row.Value)
	}

	out := make([]Group, 0, len(groups))
	for key, g := range groups {
		out = append(out, Group{Key: key, Sum: g.sum, Count: g.count.IntPart()})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Sum.Equal(out[j].Sum) {
			return out[i].Sum.GreaterThan(out[j].Sum)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func (MemoryEngine) Summarize(values []decimal.Decimal) (stats.Summary, bool) {
	return stats.Summarize(values)
}
