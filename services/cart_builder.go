package services

import (
	"sync"

	"github.com/yeremiapane/pos-till/models"
)

// CartBuilder holds the in-progress sale of the till session. Lines keep the
// order in which products were first added.
type CartBuilder struct {
	mu    sync.Mutex
	lines []models.CartLine
}

func NewCartBuilder() *CartBuilder {
	return &CartBuilder{}
}

// AddItem increments the product's line or appends a new one with quantity 1.
func (c *CartBuilder) AddItem(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price.Int64(),
		Quantity:  1,
	})
}

// DecreaseItem removes one unit; the last unit removes the line. Unknown ids are ignored.
func (c *CartBuilder) DecreaseItem(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if c.lines[i].Quantity <= 1 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity--
		}
		return
	}
}

// ComputeTotals is recomputed from the lines on every call.
func (c *CartBuilder) ComputeTotals() models.CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalsOf(c.lines)
}

func totalsOf(lines []models.CartLine) models.CartTotals {
	var t models.CartTotals
	for _, l := range lines {
		t.TotalItems += l.Quantity
		t.TotalPrice += l.Subtotal()
	}
	return t
}

// Lines returns a copy of the current lines.
func (c *CartBuilder) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CartBuilder) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// ToCheckoutPayload builds the backend request. Cash must cover the total;
// QRIS is always exact with zero change.
func (c *CartBuilder) ToCheckoutPayload(method models.PaymentMethod, moneyReceived int64) (models.CheckoutPayload, error) {
	if !method.Valid() {
		return models.CheckoutPayload{}, newValidationError("payment_method", "pilih cash atau qris")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return models.CheckoutPayload{}, ErrEmptyCart
	}
	total := totalsOf(c.lines).TotalPrice

	p := models.CheckoutPayload{
		CustomerName:  models.WalkInCustomer,
		PaymentMethod: method,
		Items:         make([]models.CheckoutItem, 0, len(c.lines)),
	}
	for _, l := range c.lines {
		p.Items = append(p.Items, models.CheckoutItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	switch method {
	case models.PaymentCash:
		if moneyReceived < total {
			return models.CheckoutPayload{}, &InsufficientPaymentError{Total: total, Received: moneyReceived}
		}
		p.MoneyReceived = moneyReceived
		p.Change = moneyReceived - total
	case models.PaymentQRIS:
		p.MoneyReceived = total
		p.Change = 0
	}
	return p, nil
}
