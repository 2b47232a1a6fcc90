package catalog

import (
	"context"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
)

// Service exposes the store catalog: areas and the products sold in them.
type Service struct {
	store storage.CatalogStore
}

// NewService builds the catalog service.
func NewService(store storage.CatalogStore) *Service {
	if store == nil {
		panic("catalog: store must not be nil")
	}
	return &Service{store: store}
}

// ListAreas returns all areas ordered by name.
func (s *Service) ListAreas(ctx context.Context) ([]v1.Area, error) {
	return s.store.ListAreas(ctx)
}

// ProductsByArea returns the products of one area ordered by name.
func (s *Service) ProductsByArea(ctx context.Context, areaID int64) ([]v1.Product, error) {
	return s.store.ListProductsByArea(ctx, areaID)
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, product *v1.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	return s.store.SaveProduct(ctx, product)
}
