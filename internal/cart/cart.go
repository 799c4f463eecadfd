// Package cart holds the ephemeral, client-local order draft: a mapping of
// selected products to quantities. Carts are never persisted; a lost
// session loses its cart.
package cart

import "tableside/internal/domain"

// Line is one product in the cart. Quantity is always >= 1; a line that
// would reach 0 is removed instead of retained.
type Line struct {
	Product  domain.Product
	Quantity int
}

// Subtotal is the line price at the cart's view of the product.
func (l Line) Subtotal() float64 { return float64(l.Quantity) * l.Product.Price }

// Cart keeps lines in insertion order, at most one line per product id.
// A cart belongs to a single logical session and is not safe for
// concurrent use; the session registry serializes access.
type Cart struct {
	lines []Line
}

func New() *Cart { return &Cart{} }

// Add increments the quantity for p, inserting a new line with quantity 1
// if none exists. Add always succeeds.
func (c *Cart) Add(p domain.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
}

// Remove decrements the quantity for the product id, deleting the line
// when it drops below 1. Removing an absent product is a no-op.
func (c *Cart) Remove(productID int) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
			return
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
}

// Total sums quantity*price over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// LineCount is the number of distinct lines, used to gate submission.
func (c *Cart) LineCount() int { return len(c.lines) }

// Lines returns a copy of the current lines in insertion order. The copy
// is the snapshot the coordinator works from while the cart stays mutable.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties the cart. Called only after a fully successful submission.
func (c *Cart) Clear() { c.lines = nil }
