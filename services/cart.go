package services

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// CartLine is a product snapshot waiting in a cart. ProductID is a reference
// only; the product may be deleted while the line is still in the cart.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Note      string          `json:"note,omitempty"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the session-owned collection of lines. It is a plain value and is
// not safe for concurrent use; CartStore implementations serialize access.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// CartView is the read-only projection returned by ViewCart.
type CartView struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Add merges line into an existing line with the same product and note,
// otherwise appends a copy.
func (c *Cart) Add(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID && c.Lines[i].Note == line.Note {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// Remove deletes the line at the 1-based index.
func (c *Cart) Remove(index int) (CartLine, error) {
	if index < 1 || index > len(c.Lines) {
		return CartLine{}, notFound("cart line", strconv.Itoa(index))
	}
	removed := c.Lines[index-1]
	c.Lines = append(c.Lines[:index-1], c.Lines[index:]...)
	return removed, nil
}

func (c *Cart) View() CartView {
	return CartView{Lines: c.Snapshot(), Total: c.Total()}
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Snapshot returns a deep copy of the lines.
func (c *Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
