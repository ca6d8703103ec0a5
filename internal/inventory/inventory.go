package inventory

import (
	"sync"

	"go.uber.org/zap"
)

// Inventory owns every product record and keeps the name index and the
// low-stock log in step with it. All three structures share one lock.
type Inventory struct {
	mu        sync.RWMutex
	products  map[int]*Product
	byName    nameIndex
	lowStock  lowStockLog
	threshold int

	log     *zap.Logger
	metrics *Metrics
}

type Option func(*Inventory)

func WithThreshold(n int) Option {
	return func(inv *Inventory) {
		if n > 0 {
			inv.threshold = n
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(inv *Inventory) {
		if log != nil {
			inv.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(inv *Inventory) { inv.metrics = m }
}

func New(opts ...Option) *Inventory {
	inv := &Inventory{
		products:  make(map[int]*Product),
		threshold: DefaultThreshold,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

func (inv *Inventory) Threshold() int { return inv.threshold }

func (inv *Inventory) Add(p Product) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	err := inv.addLocked(p)
	inv.metrics.op("add", err)
	return err
}

func (inv *Inventory) addLocked(p Product) error {
	if err := validate(p); err != nil {
		return err
	}
	if _, ok := inv.products[p.ID]; ok {
		return ErrDuplicateID
	}
	if _, ok := inv.byName.lookupName(p.Name); ok {
		return ErrDuplicateName
	}

	stored := p
	inv.products[p.ID] = &stored
	inv.byName.insert(p.Name, p.ID)
	inv.noteQuantity(&stored)
	inv.metrics.setProducts(len(inv.products))

	inv.log.Debug("product added",
		zap.Int("id", p.ID),
		zap.String("name", p.Name),
		zap.Int("quantity", p.Quantity),
		zap.String("price", p.Price.String()),
	)
	return nil
}

func (inv *Inventory) Delete(id int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, ok := inv.products[id]
	if !ok {
		inv.metrics.op("delete", ErrNotFound)
		return ErrNotFound
	}

	inv.deleteLocked(p)
	inv.metrics.op("delete", nil)
	inv.log.Debug("product deleted", zap.Int("id", id), zap.String("name", p.Name))
	return nil
}

func (inv *Inventory) deleteLocked(p *Product) {
	if !inv.byName.remove(p.Name, p.ID) {
		inv.log.Warn("name index entry missing", zap.Int("id", p.ID), zap.String("name", p.Name))
	}
	delete(inv.products, p.ID)
	inv.metrics.setProducts(len(inv.products))
}

func (inv *Inventory) Get(id int) (Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	p, ok := inv.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return *p, nil
}

func (inv *Inventory) Exists(id int) bool {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	_, ok := inv.products[id]
	return ok
}

func (inv *Inventory) Len() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.products)
}

// SetQuantity overwrites the stock level of a product. It is the restock
// operation; a new value inside the low-stock band is logged again.
func (inv *Inventory) SetQuantity(id, qty int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	err := inv.setQuantityLocked(id, qty)
	inv.metrics.op("restock", err)
	return err
}

func (inv *Inventory) setQuantityLocked(id, qty int) error {
	p, ok := inv.products[id]
	if !ok {
		return ErrNotFound
	}
	if qty < 0 {
		return ErrInvalidQuantity
	}

	p.Quantity = qty
	inv.noteQuantity(p)
	inv.log.Debug("stock updated", zap.Int("id", id), zap.Int("quantity", qty))
	return nil
}

// Buy sells amount units of a product. Amounts below one are treated as
// one. Selling the remaining stock removes the product from the store.
func (inv *Inventory) Buy(id, amount int) (Purchase, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	pur, err := inv.buyLocked(id, amount)
	inv.metrics.op("buy", err)
	return pur, err
}

func (inv *Inventory) buyLocked(id, amount int) (Purchase, error) {
	p, ok := inv.products[id]
	if !ok {
		return Purchase{}, ErrNotFound
	}
	if p.Quantity <= 0 {
		return Purchase{}, ErrOutOfStock
	}
	if amount < 1 {
		amount = 1
	}

	if amount >= p.Quantity {
		sold := p.Quantity
		last := *p
		inv.deleteLocked(p)
		inv.metrics.sold(sold)

		inv.log.Info("product sold out and removed",
			zap.Int("id", id),
			zap.String("name", last.Name),
			zap.Int("sold", sold),
		)
		return Purchase{Product: last, Sold: sold, Removed: true}, nil
	}

	p.Quantity -= amount
	inv.noteQuantity(p)
	inv.metrics.sold(amount)
	return Purchase{Product: *p, Sold: amount}, nil
}

func (inv *Inventory) noteQuantity(p *Product) {
	if !isLow(p.Quantity, inv.threshold) {
		return
	}
	inv.lowStock.record(p.ID)
	inv.metrics.lowStock()
}

// live resolves an index or log reference against the store.
func (inv *Inventory) live(id int, name string) (*Product, bool) {
	p, ok := inv.products[id]
	if !ok || p.Name != name {
		return nil, false
	}
	return p, true
}

// Sorted returns the live products in ascending name order.
func (inv *Inventory) Sorted() []Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]Product, 0, inv.byName.size)
	for k := range inv.byName.ascend() {
		if p, ok := inv.live(k.id, k.name); ok {
			out = append(out, *p)
		}
	}
	return out
}

// LowStock returns each live product whose current quantity is inside the
// low-stock band, most recently logged first. The whole log is walked.
func (inv *Inventory) LowStock() []Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	seen := make(map[int]struct{})
	var out []Product
	for id := range inv.lowStock.entries() {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, ok := inv.products[id]
		if !ok || !isLow(p.Quantity, inv.threshold) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func (inv *Inventory) LowStockLogLen() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.lowStock.n
}

// Products returns every live product in map iteration order.
func (inv *Inventory) Products() []Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]Product, 0, len(inv.products))
	for _, p := range inv.products {
		out = append(out, *p)
	}
	return out
}

type RestoreReport struct {
	Added   int
	Skipped []Skipped
}

type Skipped struct {
	Product Product
	Err     error
}

// Restore adds records in order, skipping any that Add rejects.
func (inv *Inventory) Restore(records []Product) RestoreReport {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	var rep RestoreReport
	for _, p := range records {
		err := inv.addLocked(p)
		inv.metrics.op("restore", err)
		if err != nil {
			rep.Skipped = append(rep.Skipped, Skipped{Product: p, Err: err})
			continue
		}
		rep.Added++
	}
	return rep
}
