package checkout

import (
	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/shopspring/decimal"
)

// Cart accumulates one customer's items at the register. Adding a product that
// is already in the cart increments its quantity; the line order is the order
// products were first added. A cart is single-register state, never shared.
type Cart struct {
	lines []v1.LineItem
	index map[string]int // product name -> position in lines
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{index: make(map[string]int)}
}

// Add puts one unit of a product in the cart.
func (c *Cart) Add(name string, unitPrice decimal.Decimal) {
	c.AddQuantity(name, unitPrice, 1)
}

// AddQuantity puts qty units of a product in the cart. qty <= 0 is a no-op.
func (c *Cart) AddQuantity(name string, unitPrice decimal.Decimal, qty int64) {
	if qty <= 0 {
		return
	}
	if i, ok := c.index[name]; ok {
		c.lines[i].Quantity += qty
		return
	}
	c.index[name] = len(c.lines)
	c.lines = append(c.lines, v1.LineItem{
		ProductName: name,
		UnitPrice:   unitPrice,
		Quantity:    qty,
	})
}

// Lines returns a copy of the cart content.
func (c *Cart) Lines() []v1.LineItem {
	out := make([]v1.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total returns the running total of the cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Revenue())
	}
	return total
}

// Empty reports whether the cart has no products.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
