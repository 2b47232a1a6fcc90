package storage

import (
	"context"
	"errors"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/shopspring/decimal"
)

// ErrDuplicate is returned when a sale with the same id already exists.
var ErrDuplicate = errors.New("sale already exists")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SaleStore defines the interface for the sales record store.
type SaleStore interface {
	// SaveSale persists a sale and populates its IngestSeq.
	// Returns ErrDuplicate if a sale with the same id already exists.
	SaveSale(ctx context.Context, sale *v1.Sale) error

	// UpdateSaleLines replaces a sale's line items and total in one statement.
	// Administrative edits go through here; the caller recomputes the total so
	// the stored document never desynchronizes.
	UpdateSaleLines(ctx context.Context, id string, lines []v1.LineItem, total decimal.Decimal) error

	// CountSales returns the number of stored sales. Checkout uses it to
	// generate the next sequential customer label.
	CountSales(ctx context.Context) (int64, error)

	// RetrieveSalesAfterCursor fetches sales with ingest_seq > cursor in strict
	// total order, at most limit rows. cursor=0 means "from the beginning".
	// Snapshot loading pages through the whole collection with this.
	RetrieveSalesAfterCursor(ctx context.Context, cursor int64, limit int) ([]*v1.Sale, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

// CatalogStore defines the interface for areas and products.
type CatalogStore interface {
	ListAreas(ctx context.Context) ([]v1.Area, error)
	ListProductsByArea(ctx context.Context, areaID int64) ([]v1.Product, error)
	SaveArea(ctx context.Context, area *v1.Area) error
	SaveProduct(ctx context.Context, product *v1.Product) error

	// CountAreas reports catalog size; seeding only runs against an empty catalog.
	CountAreas(ctx context.Context) (int64, error)
}

// UserStore defines the interface for operator accounts.
type UserStore interface {
	// FindUser returns ErrNotFound when the username does not exist.
	FindUser(ctx context.Context, username string) (*v1.User, error)
	SaveUser(ctx context.Context, user *v1.User) error
}
