package analysis

import (
	"time"

	"github.com/bodega-labs/bodega/internal/core/stats"
	"github.com/shopspring/decimal"
)

// ProgressFunc receives per-stage progress: the 1-based stage index, the total
// stage count and a human-readable label. Called before each stage runs.
type ProgressFunc func(stage, total int, label string)

// Pipeline computes the fixed, ordered list of sales metrics from a snapshot.
// Stages are independent straight-line queries; no metric feeds another, the
// ordering is presentation only. There is no mid-run cancellation: a run
// completes or fails.
type Pipeline struct {
	engine Engine
	topN   int
	nowFn  func() time.Time
}

// NewPipeline builds a pipeline on the given engine. topN bounds the ranked
// lists; values <= 0 fall back to 10.
func NewPipeline(engine Engine, topN int) *Pipeline {
	if topN <= 0 {
		topN = 10
	}
	return &Pipeline{
		engine: engine,
		topN:   topN,
		nowFn:  func() time.Time { return time.Now() },
	}
}

type stage struct {
	label string
	fn    func(snap *Snapshot, res *Results)
}

// Run computes every metric from the snapshot. It never fails: metrics whose
// fields are absent come back Unavailable and the rest of the run proceeds.
func (p *Pipeline) Run(snap *Snapshot, progress ProgressFunc) *Results {
	res := &Results{GeneratedAt: p.nowFn(), TopN: p.topN}

	stages := []stage{
		{"Counting records", p.recordCount},
		{"Scanning date range", p.dateRange},
		{"Analyzing sales by day", p.bestDay},
		{"Computing daily averages", p.avgPerDay},
		{"Computing average sale value", p.avgSale},
		{"Analyzing products", p.topProducts},
		{"Analyzing customers", p.topCustomers},
		{"Generating summary statistics", p.summaryStats},
	}

	for i, st := range stages {
		if progress != nil {
			progress(i+1, len(stages), st.label)
		}
		st.fn(snap, res)
	}

	return res
}

// StageCount is the number of progress notifications one run emits.
func (p *Pipeline) StageCount() int { return 8 }

func (p *Pipeline) recordCount(snap *Snapshot, res *Results) {
	res.RecordCount = int64(len(snap.Sales))
}

// dateRange finds the minimum and maximum calendar date. ISO date prefixes
// sort lexicographically, so plain string comparison is enough.
func (p *Pipeline) dateRange(snap *Snapshot, res *Results) {
	if !snap.HasTimestamps() {
		res.DateRange = Unavailable[DateRange](reasonNoTimestamps)
		return
	}

	var from, to string
	for _, sale := range snap.Sales {
		date := sale.DateBucket()
		if date == "" {
			continue
		}
		if from == "" || date < from {
			from = date
		}
		if date > to {
			to = date
		}
	}
	if from == "" {
		res.DateRange = Unavailable[DateRange](reasonNoData)
		return
	}
	res.DateRange = Computed(DateRange{From: from, To: to})
}

// bestDay groups sales by calendar date, sums stored totals per day and
// reports the day with the highest revenue. The engine's tie-break applies.
func (p *Pipeline) bestDay(snap *Snapshot, res *Results) {
	if !snap.HasTimestamps() {
		res.BestDay = Unavailable[DayRevenue](reasonNoTimestamps)
		return
	}
	if !snap.HasTotals() {
		res.BestDay = Unavailable[DayRevenue](reasonNoTotals)
		return
	}

	var rows []Row
	for _, sale := range snap.Sales {
		date := sale.DateBucket()
		if date == "" || sale.Total == nil {
			continue
		}
		rows = append(rows, Row{Key: date, Value: *sale.Total})
	}
	groups := p.engine.GroupSum(rows)
	if len(groups) == 0 {
		res.BestDay = Unavailable[DayRevenue](reasonNoData)
		return
	}

	best := groups[0]
	res.BestDay = Computed(DayRevenue{
		Date:         best.Key,
		Revenue:      best.Sum,
		Transactions: best.Count,
	})
}

// avgPerDay averages the per-day transaction count across the distinct
// calendar dates present. Days without sales are absent from the grouping, so
// they never enter the denominator.
func (p *Pipeline) avgPerDay(snap *Snapshot, res *Results) {
	if !snap.HasTimestamps() {
		res.AvgPerDay = Unavailable[decimal.Decimal](reasonNoTimestamps)
		return
	}

	var rows []Row
	for _, sale := range snap.Sales {
		date := sale.DateBucket()
		if date == "" {
			continue
		}
		rows = append(rows, Row{Key: date, Value: decimal.Zero})
	}
	groups := p.engine.GroupSum(rows)
	if len(groups) == 0 {
		res.AvgPerDay = Unavailable[decimal.Decimal](reasonNoData)
		return
	}

	total := int64(0)
	for _, g := range groups {
		total += g.Count
	}
	avg := decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(len(groups))))
	res.AvgPerDay = Computed(avg)
}

func (p *Pipeline) avgSale(snap *Snapshot, res *Results) {
	if !snap.HasTotals() {
		res.AvgSale = Unavailable[decimal.Decimal](reasonNoTotals)
		return
	}
	mean, ok := stats.Mean(snap.Totals())
	if !ok {
		res.AvgSale = Unavailable[decimal.Decimal](reasonNoData)
		return
	}
	res.AvgSale = Computed(mean)
}

// topProducts flattens line items across all sales, groups by product name and
// ranks by summed quantity. Revenue is the per-line unit_price*quantity sum;
// stored totals play no part here.
func (p *Pipeline) topProducts(snap *Snapshot, res *Results) {
	if !snap.HasLineItems() {
		res.TopProducts = Unavailable[[]ProductSales](reasonNoLineItems)
		return
	}

	var qtyRows, revRows []Row
	for _, sale := range snap.Sales {
		for _, line := range sale.LineItems {
			qtyRows = append(qtyRows, Row{Key: line.ProductName, Value: decimal.NewFromInt(line.Quantity)})
			revRows = append(revRows, Row{Key: line.ProductName, Value: line.Revenue()})
		}
	}

	byQuantity := p.engine.GroupSum(qtyRows)
	if len(byQuantity) == 0 {
		res.TopProducts = Unavailable[[]ProductSales](reasonNoData)
		return
	}
	if len(byQuantity) > p.topN {
		byQuantity = byQuantity[:p.topN]
	}

	revenue := make(map[string]decimal.Decimal)
	for _, g := range p.engine.GroupSum(revRows) {
		revenue[g.Key] = g.Sum
	}

	ranked := make([]ProductSales, 0, len(byQuantity))
	for _, g := range byQuantity {
		ranked = append(ranked, ProductSales{
			Name:     g.Key,
			Quantity: g.Sum,
			Revenue:  revenue[g.Key],
		})
	}
	res.TopProducts = Computed(ranked)
}

// topCustomers groups sales by their customer label and ranks by summed spend.
// Labels are not identities: equal labels collide into one group on purpose.
func (p *Pipeline) topCustomers(snap *Snapshot, res *Results) {
	if !snap.HasCustomers() {
		res.TopCustomers = Unavailable[[]CustomerSpend](reasonNoCustomers)
		return
	}
	if !snap.HasTotals() {
		res.TopCustomers = Unavailable[[]CustomerSpend](reasonNoTotals)
		return
	}

	var rows []Row
	for _, sale := range snap.Sales {
		if sale.CustomerName == "" || sale.Total == nil {
			continue
		}
		rows = append(rows, Row{Key: sale.CustomerName, Value: *sale.Total})
	}
	groups := p.engine.GroupSum(rows)
	if len(groups) == 0 {
		res.TopCustomers = Unavailable[[]CustomerSpend](reasonNoData)
		return
	}
	if len(groups) > p.topN {
		groups = groups[:p.topN]
	}

	ranked := make([]CustomerSpend, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, CustomerSpend{
			Name:      g.Key,
			Spend:     g.Sum,
			Purchases: g.Count,
		})
	}
	res.TopCustomers = Computed(ranked)
}

func (p *Pipeline) summaryStats(snap *Snapshot, res *Results) {
	if !snap.HasTotals() {
		res.Stats = Unavailable[stats.Summary](reasonNoTotals)
		return
	}
	summary, ok := p.engine.Summarize(snap.Totals())
	if !ok {
		res.Stats = Unavailable[stats.Summary](reasonNoData)
		return
	}
	res.Stats = Computed(summary)
}
