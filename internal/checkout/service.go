package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyCart is returned when checkout is attempted with no products.
var ErrEmptyCart = errors.New("cart has no products")

// Service finalizes carts into stored sale documents.
type Service struct {
	store            storage.SaleStore
	maxBodySizeBytes int
	nowFn            func() time.Time
	newID            func() string
}

// NewService builds the checkout service. maxBodySizeMB caps the request body
// accepted by the HTTP handlers; values <= 0 fall back to 1 MB.
func NewService(store storage.SaleStore, maxBodySizeMB int) *Service {
	if store == nil {
		panic("checkout: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1
	}
	return &Service{
		store:            store,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn:            time.Now,
		newID:            uuid.NewString,
	}
}

// Checkout turns a cart into an immutable sale document and persists it.
//
// The customer label is "Cliente N" with N = stored sale count + 1: a
// sequentially generated transaction label, not an identity. Two registers
// checking out simultaneously can produce the same label; that is accepted,
// the label only groups transactions in reporting. The total is computed from
// the line items here, which is the only place it is ever derived.
func (s *Service) Checkout(ctx context.Context, cart *Cart) (*v1.Sale, error) {
	if cart == nil || cart.Empty() {
		return nil, ErrEmptyCart
	}

	count, err := s.store.CountSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sales for customer label: %w", err)
	}

	total := cart.Total()
	sale := &v1.Sale{
		ID:           s.newID(),
		CustomerName: fmt.Sprintf("Cliente %d", count+1),
		LineItems:    cart.Lines(),
		Total:        &total,
		Timestamp:    s.nowFn().Format(v1.TimestampLayout),
	}

	if err := sale.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sale: %w", err)
	}

	if err := s.store.SaveSale(ctx, sale); err != nil {
		return nil, err
	}

	slog.Info("Sale completed",
		"sale_id", sale.ID,
		"customer", sale.CustomerName,
		"total", total.StringFixed(2),
		"line_count", len(sale.LineItems),
	)
	return sale, nil
}

// EditLines is the administrative edit path: it replaces a sale's line items
// and recomputes the total from them, so stored totals cannot desynchronize.
// Returns the new total.
func (s *Service) EditLines(ctx context.Context, id string, lines []v1.LineItem) (decimal.Decimal, error) {
	probe := v1.Sale{ID: id, LineItems: lines}
	if err := probe.Validate(); err != nil {
		return decimal.Zero, fmt.Errorf("invalid line items: %w", err)
	}

	total := probe.LinesTotal()
	if err := s.store.UpdateSaleLines(ctx, id, lines, total); err != nil {
		return decimal.Zero, err
	}

	slog.Info("Sale edited", "sale_id", id, "new_total", total.StringFixed(2))
	return total, nil
}
