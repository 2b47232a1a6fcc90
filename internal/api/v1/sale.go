package v1

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the wire format for Sale.Timestamp: ISO-8601 in store-local
// time, with no zone designator. Day bucketing works on the leading 10 characters,
// so anything after the date is opaque to the analysis layer.
const TimestampLayout = "2006-01-02T15:04:05"

// dateBucketLen is the length of the calendar-date prefix of a timestamp.
const dateBucketLen = len("2006-01-02")

// Sale is one completed purchase, the atomic unit of the sales record store.
// Documents are schemaless at rest: any field except ID may be absent. Absent
// fields are modeled as nil/zero here and every reader must tolerate them.
type Sale struct {
	// ID is the unique immutable document identifier, assigned at checkout.
	ID string `json:"id"`

	// CustomerName is a free-text transaction label ("Cliente 42"), not a
	// stable customer identity. Labels are sequentially generated and usually
	// unique per transaction; collisions group transactions on purpose.
	CustomerName string `json:"customer_name,omitempty"`

	// LineItems is the ordered cart content. Duplicate product names are
	// legal: each add-to-cart action may append rather than increment.
	LineItems []LineItem `json:"line_items,omitempty"`

	// Total is the amount charged at the register. It equals the sum of line
	// revenues at construction time; it is stored, not re-derived, afterwards.
	// nil means the document has no total field.
	Total *decimal.Decimal `json:"total,omitempty"`

	// Timestamp is the sale time in TimestampLayout. Empty means absent.
	Timestamp string `json:"timestamp,omitempty"`

	// IngestSeq is a monotonic sequence assigned by the database (BIGSERIAL).
	// It gives snapshot pagination a strict total order. Not part of the API.
	IngestSeq int64 `json:"-"`
}

// LineItem is one product position inside a sale.
type LineItem struct {
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
}

// Revenue returns unit_price * quantity for this line.
func (l LineItem) Revenue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// LinesTotal sums the revenue of all line items.
func (s *Sale) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.LineItems {
		total = total.Add(l.Revenue())
	}
	return total
}

// DateBucket returns the calendar-date grouping key: the leading 10 characters
// of the timestamp. This is a deliberate string-prefix match, not a
// timezone-aware date computation. Returns "" when the timestamp is absent or
// too short to contain a date.
func (s *Sale) DateBucket() string {
	if len(s.Timestamp) < dateBucketLen {
		return ""
	}
	return s.Timestamp[:dateBucketLen]
}

// Validate checks the construction-time invariants of a new sale.
// It is NOT re-run on reads: administratively edited documents may violate the
// total invariant in the store, and readers must use the stored total verbatim.
func (s *Sale) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("id is required")
	}

	for i, l := range s.LineItems {
		if l.ProductName == "" {
			return fmt.Errorf("line_items[%d]: product_name is required", i)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("line_items[%d]: unit_price must not be negative", i)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("line_items[%d]: quantity must be positive", i)
		}
	}

	if s.Total != nil && len(s.LineItems) > 0 {
		if want := s.LinesTotal(); !s.Total.Equal(want) {
			return fmt.Errorf("total %s does not match line items sum %s", s.Total, want)
		}
	}

	return nil
}
