package v1

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Area is a store section ("Abarrotes", "Bebidas"). Products hang off areas.
type Area struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is a sellable item within one area.
type Product struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	AreaID int64           `json:"area_id"`
}

// Validate checks a product before it is written to the catalog.
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if p.AreaID <= 0 {
		return fmt.Errorf("area_id is required")
	}
	return nil
}
