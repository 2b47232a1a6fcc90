package analysis

import (
	"time"

	"github.com/bodega-labs/bodega/internal/core/stats"
	"github.com/shopspring/decimal"
)

// Metric wraps one computed value with its availability. The sales store is
// schemaless, so any field a metric depends on may be absent from the whole
// snapshot; such a metric is Unavailable with a reason and the run continues.
// This is an explicit capability check, not exception swallowing: tests can
// assert on the reason.
type Metric[T any] struct {
	Value     T
	Available bool
	Reason    string
}

// Computed returns an available metric.
func Computed[T any](v T) Metric[T] {
	return Metric[T]{Value: v, Available: true}
}

// Unavailable returns a skipped metric carrying the skip reason.
func Unavailable[T any](reason string) Metric[T] {
	return Metric[T]{Reason: reason}
}

// Skip reasons. reasonNoData marks metrics skipped over an empty (or
// effectively empty) input; the field reasons mark collection-level schema gaps.
const (
	reasonNoData       = "no data"
	reasonNoTimestamps = "snapshot has no timestamp field"
	reasonNoTotals     = "snapshot has no total field"
	reasonNoLineItems  = "snapshot has no line_items field"
	reasonNoCustomers  = "snapshot has no customer_name field"
)

// DateRange is the span of calendar dates present in the snapshot.
type DateRange struct {
	From string
	To   string
}

// DayRevenue is the best sales day with its summed revenue and transaction count.
type DayRevenue struct {
	Date         string
	Revenue      decimal.Decimal
	Transactions int64
}

// ProductSales is one entry of the best-selling products ranking.
// Revenue is the per-line unit_price*quantity sum, independent of stored totals.
type ProductSales struct {
	Name     string
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}

// CustomerSpend is one entry of the top customers ranking.
type CustomerSpend struct {
	Name      string
	Spend     decimal.Decimal
	Purchases int64
}

// Results is the ordered output of one pipeline run. Metrics are pure derived
// views over the snapshot: nothing here persists across runs.
type Results struct {
	GeneratedAt time.Time

	// TopN is the ranked-list bound the run was configured with.
	TopN int

	RecordCount  int64
	DateRange    Metric[DateRange]
	BestDay      Metric[DayRevenue]
	AvgPerDay    Metric[decimal.Decimal]
	AvgSale      Metric[decimal.Decimal]
	TopProducts  Metric[[]ProductSales]
	TopCustomers Metric[[]CustomerSpend]
	Stats        Metric[stats.Summary]
}
