package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "plataforma-pedidos/internal/errors"
)

// CartLine keeps the raw catalog unit price; the discount is recomputed from
// the current quantity every time a total is read.
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Weight    string          `json:"weight"`
	Quantity  int             `json:"quantity"`
}

func (l CartLine) EffectiveUnitPrice() decimal.Decimal {
	return EffectiveUnitPrice(l.UnitPrice, l.Quantity)
}

func (l CartLine) Total() decimal.Decimal {
	return LineTotal(l.UnitPrice, l.Quantity)
}

// MaxLineQuantity bounds a single line so quantities and totals never overflow.
const MaxLineQuantity = 10000

// Cart holds at most one line per product id, in insertion order.
// It is not safe for concurrent use; callers own one cart per session.
type Cart struct {
	lines []CartLine
}

func NewCart(lines ...CartLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if l.Quantity > MaxLineQuantity {
			l.Quantity = MaxLineQuantity
		}
		if i := c.indexOf(l.ProductID); i >= 0 {
			c.lines[i].Quantity = min(c.lines[i].Quantity+l.Quantity, MaxLineQuantity)
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) Add(p Product, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be a positive integer, got %d", quantity),
		})
	}

	if quantity > MaxLineQuantity {
		return quantityTooLarge(quantity)
	}

	if i := c.indexOf(p.ID); i >= 0 {
		// Both operands are bounded, so the sum cannot overflow.
		if c.lines[i].Quantity+quantity > MaxLineQuantity {
			return quantityTooLarge(c.lines[i].Quantity + quantity)
		}
		c.lines[i].Quantity += quantity
		return nil
	}

	c.lines = append(c.lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Weight:    p.Weight,
		Quantity:  quantity,
	})
	return nil
}

func (c *Cart) Remove(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// SetQuantity replaces the quantity of an existing line. Zero or negative
// removes the line; an unknown id is ignored.
func (c *Cart) SetQuantity(id string, quantity int) error {
	if quantity <= 0 {
		c.Remove(id)
		return nil
	}
	if quantity > MaxLineQuantity {
		return quantityTooLarge(quantity)
	}
	if i := c.indexOf(id); i >= 0 {
		c.lines[i].Quantity = quantity
	}
	return nil
}

func quantityTooLarge(quantity int) error {
	return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
		Field:   "quantity",
		Message: fmt.Sprintf("quantity must not exceed %d, got %d", MaxLineQuantity, quantity),
	})
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(id string) (CartLine, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) indexOf(id string) int {
	for i, l := range c.lines {
		if l.ProductID == id {
			return i
		}
	}
	return -1
}
