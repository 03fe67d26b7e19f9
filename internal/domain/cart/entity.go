package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidLine = errors.New("cart: invalid line")

// Line is one cart position. Price, Name and Image are cached from the catalog
// at add time and intentionally stale-tolerant; the read path refreshes them
// against the catalog when it is reachable.
type Line struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

// Cart holds the locally authoritative line sequence. At most one line exists
// per productId; repeated adds merge by summing quantity. Zero value is an
// empty cart ready for use.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges l into the cart. An existing line for the same product keeps its
// cached price/name/image and only gains quantity.
func (c *Cart) Add(l Line) error {
	l.ProductID = strings.TrimSpace(l.ProductID)
	if l.ProductID == "" || l.Quantity <= 0 || l.Price.IsNegative() {
		return ErrInvalidLine
	}

	if idx := c.index(l.ProductID); idx >= 0 {
		c.Lines[idx].Quantity += l.Quantity
		return nil
	}
	c.Lines = append(c.Lines, l)
	return nil
}

// SetQuantity replaces the quantity for productID. qty <= 0 removes the line.
// Unknown productID is a no-op.
func (c *Cart) SetQuantity(productID string, qty int) {
	idx := c.index(strings.TrimSpace(productID))
	if idx < 0 {
		return
	}
	if qty <= 0 {
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		return
	}
	c.Lines[idx].Quantity = qty
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID string) {
	c.SetQuantity(productID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// Count is the sum of quantities over all lines.
func (c *Cart) Count() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Snapshot returns a copy of the line sequence in insertion order.
func (c *Cart) Snapshot() []Line {
	out := make([]Line, len(c.Lines))
	copy(out, c.Lines)
	return out
}

// Normalize drops unusable lines and merges duplicates, preserving first-seen
// order. Used after loading persisted state of unknown provenance.
func (c *Cart) Normalize() {
	merged := make([]Line, 0, len(c.Lines))
	index := map[string]int{}
	for _, l := range c.Lines {
		pid := strings.TrimSpace(l.ProductID)
		if pid == "" || l.Quantity <= 0 || l.Price.IsNegative() {
			continue
		}
		l.ProductID = pid
		if at, ok := index[pid]; ok {
			merged[at].Quantity += l.Quantity
			continue
		}
		index[pid] = len(merged)
		merged = append(merged, l)
	}
	c.Lines = merged
}

func (c *Cart) index(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
