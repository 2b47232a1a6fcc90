package analysis

import (
	"context"
	"log/slog"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"github.com/shopspring/decimal"
)

// Snapshot is a point-in-time, read-only view of the sales collection, the
// sole input of one pipeline run. It is loaded once per run and never mutated;
// writers inserting concurrently are simply not part of this view.
type Snapshot struct {
	Sales []*v1.Sale
}

// LoadSnapshot pages through the whole sales collection in ingest order.
// A store failure on the very first page is a ConnectivityError: the run
// computes nothing. pageSize bounds each fetch, not the snapshot.
func LoadSnapshot(ctx context.Context, store storage.SaleStore, pageSize int) (*Snapshot, error) {
	if pageSize <= 0 {
		pageSize = 5000
	}

	snap := &Snapshot{}
	cursor := int64(0)
	for {
		page, err := store.RetrieveSalesAfterCursor(ctx, cursor, pageSize)
		if err != nil {
			return nil, &ConnectivityError{Cause: err}
		}
		snap.Sales = append(snap.Sales, page...)
		if len(page) < pageSize {
			break
		}
		cursor = page[len(page)-1].IngestSeq
	}

	slog.Debug("[Analysis] Snapshot loaded", "records", len(snap.Sales))
	return snap, nil
}

// HasTimestamps reports whether any document in the snapshot carries a
// timestamp. Field presence is collection-level, like a dataframe column:
// a field exists if at least one document has it, and readers skip the
// documents where it is null.
func (s *Snapshot) HasTimestamps() bool {
	for _, sale := range s.Sales {
		if sale.Timestamp != "" {
			return true
		}
	}
	return false
}

// HasTotals reports whether any document carries a total.
func (s *Snapshot) HasTotals() bool {
	for _, sale := range s.Sales {
		if sale.Total != nil {
			return true
		}
	}
	return false
}

// HasLineItems reports whether any document carries line items.
func (s *Snapshot) HasLineItems() bool {
	for _, sale := range s.Sales {
		if len(sale.LineItems) > 0 {
			return true
		}
	}
	return false
}

// HasCustomers reports whether any document carries a customer label.
func (s *Snapshot) HasCustomers() bool {
	for _, sale := range s.Sales {
		if sale.CustomerName != "" {
			return true
		}
	}
	return false
}

// Totals returns the stored totals of all documents that have one, verbatim.
// Revenue metrics never recompute a total from line items, even when an
// administrative edit has desynchronized the two.
func (s *Snapshot) Totals() []decimal.Decimal {
	var totals []decimal.Decimal
	for _, sale := range s.Sales {
		if sale.Total != nil {
			totals = append(totals, *sale.Total)
		}
	}
	return totals
}
