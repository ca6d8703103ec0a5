package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"MiniStock/internal/inventory"
)

var (
	ErrInvalidProduct  = inventory.ErrInvalidProduct
	ErrInvalidQuantity = inventory.ErrInvalidQuantity
)

// Stock is the part of the inventory a cart reads and buys from.
type Stock interface {
	Get(id int) (inventory.Product, error)
	Buy(id, amount int) (inventory.Purchase, error)
}

type entry struct {
	productID int
	qty       int
}

// Cart is a per-session list of pending purchases. Entries are unique per
// product and kept newest first; a repeated add grows the entry in place.
type Cart struct {
	stock   Stock
	entries []*entry
	byID    map[int]*entry
}

func New(stock Stock) *Cart {
	return &Cart{
		stock: stock,
		byID:  make(map[int]*entry),
	}
}

func (c *Cart) Add(productID, qty int) error {
	if _, err := c.stock.Get(productID); err != nil {
		return ErrInvalidProduct
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	if e, ok := c.byID[productID]; ok {
		e.qty += qty
		return nil
	}

	e := &entry{productID: productID, qty: qty}
	c.byID[productID] = e
	c.entries = append([]*entry{e}, c.entries...)
	return nil
}

func (c *Cart) Len() int { return len(c.entries) }

func (c *Cart) Clear() {
	c.entries = nil
	c.byID = make(map[int]*entry)
}

type Line struct {
	ProductID int
	Quantity  int
	Product   inventory.Product
	Available int
	Removed   bool
}

func (l Line) Subtotal() decimal.Decimal {
	if l.Removed {
		return decimal.Zero
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (c *Cart) View() []Line {
	out := make([]Line, 0, len(c.entries))
	for _, e := range c.entries {
		l := Line{ProductID: e.productID, Quantity: e.qty}

		p, err := c.stock.Get(e.productID)
		if err != nil {
			l.Removed = true
		} else {
			l.Product = p
			l.Available = p.Quantity
		}
		out = append(out, l)
	}
	return out
}

type Status int

const (
	StatusFulfilled Status = iota
	StatusPartial
	StatusOutOfStock
	StatusRemoved
)

func (s Status) String() string {
	switch s {
	case StatusFulfilled:
		return "fulfilled"
	case StatusPartial:
		return "partial"
	case StatusOutOfStock:
		return "out of stock"
	case StatusRemoved:
		return "removed from store"
	default:
		return "unknown"
	}
}

type Outcome struct {
	ProductID int
	Name      string
	Requested int
	Bought    int
	Status    Status
	Total     decimal.Decimal
}

type Receipt struct {
	Outcomes []Outcome
	Total    decimal.Decimal
}

// Checkout buys every entry against current stock, newest entry first, and
// empties the cart whatever the individual outcomes were.
func (c *Cart) Checkout() Receipt {
	defer c.Clear()

	rec := Receipt{Total: decimal.Zero}
	for _, e := range c.entries {
		o := c.checkoutEntry(e)
		rec.Total = rec.Total.Add(o.Total)
		rec.Outcomes = append(rec.Outcomes, o)
	}
	return rec
}

func (c *Cart) checkoutEntry(e *entry) Outcome {
	o := Outcome{ProductID: e.productID, Requested: e.qty, Total: decimal.Zero}

	p, err := c.stock.Get(e.productID)
	if err != nil {
		o.Status = StatusRemoved
		return o
	}
	o.Name = p.Name

	if p.Quantity <= 0 {
		o.Status = StatusOutOfStock
		return o
	}

	amount := e.qty
	o.Status = StatusFulfilled
	if p.Quantity < e.qty {
		amount = p.Quantity
		o.Status = StatusPartial
	}

	pur, err := c.stock.Buy(e.productID, amount)
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		o.Status = StatusRemoved
		return o
	case err != nil:
		o.Status = StatusOutOfStock
		return o
	}

	o.Bought = pur.Sold
	o.Total = pur.Total()
	return o
}
