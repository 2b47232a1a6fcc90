package postgres

import (
	"context"
	"database/sql"
	"fmt"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/shopspring/decimal"
)

// CatalogAdapter implements storage.CatalogStore on the shared connection.
// The area and product tables are small and read-heavy; queries run directly,
// no prepared statements.
type CatalogAdapter struct {
	db *sql.DB
}

// NewCatalogAdapter creates a catalog adapter sharing an existing connection.
func NewCatalogAdapter(db *sql.DB) *CatalogAdapter {
	return &CatalogAdapter{db: db}
}

// ListAreas returns all areas ordered by name.
func (a *CatalogAdapter) ListAreas(ctx context.Context) ([]v1.Area, error) {
	rows, err := a.db.QueryContext(ctx, queryListAreas)
	if err != nil {
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	defer rows.Close()

	var areas []v1.Area
	for rows.Next() {
		var area v1.Area
		if err := rows.Scan(&area.ID, &area.Name); err != nil {
			return nil, fmt.Errorf("failed to scan area row: %w", err)
		}
		areas = append(areas, area)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating areas: %w", err)
	}
	return areas, nil
}

// ListProductsByArea returns the products of one area ordered by name.
func (a *CatalogAdapter) ListProductsByArea(ctx context.Context, areaID int64) ([]v1.Product, error) {
	rows, err := a.db.QueryContext(ctx, queryListProductsByArea, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []v1.Product
	for rows.Next() {
		var p v1.Product
		var price string
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.AreaID); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse product price %q: %w", price, err)
		}
		p.Price = d
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// SaveArea upserts an area by id.
func (a *CatalogAdapter) SaveArea(ctx context.Context, area *v1.Area) error {
	if _, err := a.db.ExecContext(ctx, querySaveArea, area.ID, area.Name); err != nil {
		return fmt.Errorf("failed to save area: %w", err)
	}
	return nil
}

// SaveProduct inserts a product and populates its generated id.
func (a *CatalogAdapter) SaveProduct(ctx context.Context, product *v1.Product) error {
	err := a.db.QueryRowContext(ctx, querySaveProduct,
		product.Name,
		product.Price.String(),
		product.AreaID,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// CountAreas returns the number of areas in the catalog.
func (a *CatalogAdapter) CountAreas(ctx context.Context) (int64, error) {
	var count int64
	if err := a.db.QueryRowContext(ctx, queryCountAreas).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count areas: %w", err)
	}
	return count, nil
}
