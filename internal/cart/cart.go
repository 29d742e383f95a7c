// Package cart holds the per-visitor shopping cart.
//
// A Cart is an ordered list of lines, one per distinct menu item, in the
// order items were first added. Quantities are always positive: a line that
// would drop to zero is removed. Totals are computed from the lines on every
// read and never stored.
//
// Cart is not safe for concurrent use; its owner serializes access.
package cart

import (
	"github.com/Lixing-Zhang/aami-bangali/internal/models"
)

// MaxQuantity is the most of one item a line can hold. Add and Adjust stop
// there, which keeps Total and Count far from integer overflow.
const MaxQuantity = 999

// Line pairs a menu item with its quantity.
type Line struct {
	Item     models.MenuItem
	Quantity int
}

// Subtotal is the line's price times quantity.
func (l Line) Subtotal() int64 {
	return l.Item.Price * int64(l.Quantity)
}

// Cart is an in-memory shopping cart. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add increments the quantity of item, appending a new line when the item
// is not in the cart yet.
func (c *Cart) Add(item models.MenuItem) {
	if i := c.index(item.ID); i >= 0 {
		if c.lines[i].Quantity < MaxQuantity {
			c.lines[i].Quantity++
		}
		return
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// Adjust changes the quantity of itemID by delta. The result is clamped to
// [0, MaxQuantity] and a zero quantity removes the line. Unknown ids are
// ignored.
func (c *Cart) Adjust(itemID string, delta int) {
	i := c.index(itemID)
	if i < 0 {
		return
	}

	q := c.lines[i].Quantity
	switch {
	case delta <= -q:
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	case delta >= MaxQuantity-q:
		c.lines[i].Quantity = MaxQuantity
	default:
		c.lines[i].Quantity = q + delta
	}
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct items.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Quantity returns the quantity held for itemID, or 0.
func (c *Cart) Quantity(itemID string) int {
	if i := c.index(itemID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Count is the sum of quantities over all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) index(itemID string) int {
	for i, l := range c.lines {
		if l.Item.ID == itemID {
			return i
		}
	}
	return -1
}
