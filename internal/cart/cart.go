package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"restaurant-pos/internal/domain"
)

var ErrUnknownItem = errors.New("item not found")

// CatalogReader is the slice of the catalog store the cart reads stock and
// prices from. repository.ItemRepository satisfies it.
type CatalogReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Item, error)
}

// StockLimitError is the advisory "not enough stock" warning shown to the
// operator while they fill the cart. It is not authoritative; checkout
// re-checks against the catalog before committing anything.
type StockLimitError struct {
	ItemID    uint
	Name      string
	Requested int
	Available int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("%s: requested %d, only %d in stock", e.Name, e.Requested, e.Available)
}

// Line is one pending entry of the cart. Price is snapshotted when the item
// is first added and not re-read from the catalog afterwards.
type Line struct {
	ItemID   uint    `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Cart is the transient, per-session collection of pending order lines. It
// is owned by exactly one order-entry session and never persisted; its stock
// checks read current catalog stock without locking.
type Cart struct {
	catalog CatalogReader

	mu    sync.Mutex
	lines map[uint]*Line
	order []uint // insertion order, for deterministic iteration
}

func New(catalog CatalogReader) *Cart {
	return &Cart{
		catalog: catalog,
		lines:   make(map[uint]*Line),
	}
}

// Add puts one unit of the item in the cart, or bumps the existing line.
// It refuses when the item is out of stock or the new quantity would exceed
// current catalog stock.
func (c *Cart) Add(ctx context.Context, itemID uint) error {
	it, err := c.catalog.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownItem, itemID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	want := 1
	if ln, ok := c.lines[itemID]; ok {
		want = ln.Quantity + 1
	}
	if it.Stock == 0 || want > it.Stock {
		return &StockLimitError{ItemID: it.ID, Name: it.Name, Requested: want, Available: it.Stock}
	}

	if ln, ok := c.lines[itemID]; ok {
		ln.Quantity++
		return nil
	}
	c.lines[itemID] = &Line{ItemID: it.ID, Name: it.Name, Price: it.Price, Quantity: 1}
	c.order = append(c.order, itemID)
	return nil
}

// ChangeQuantity adjusts a line by delta. A resulting quantity of zero or
// below removes the line. Increments are subject to the same stock check as
// Add.
func (c *Cart) ChangeQuantity(ctx context.Context, itemID uint, delta int) error {
	c.mu.Lock()
	ln, ok := c.lines[itemID]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: id %d", ErrUnknownItem, itemID)
	}
	want := ln.Quantity + delta
	c.mu.Unlock()

	if want <= 0 {
		c.Remove(itemID)
		return nil
	}
	if delta > 0 {
		it, err := c.catalog.FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if it == nil {
			return fmt.Errorf("%w: id %d", ErrUnknownItem, itemID)
		}
		if want > it.Stock {
			return &StockLimitError{ItemID: it.ID, Name: it.Name, Requested: want, Available: it.Stock}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ln, ok := c.lines[itemID]; ok {
		ln.Quantity = want
	}
	return nil
}

func (c *Cart) Remove(itemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lines[itemID]; !ok {
		return
	}
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Total sums quantity times the snapshotted unit price over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, ln := range c.lines {
		total += float64(ln.Quantity) * ln.Price
	}
	return total
}

// Lines returns a copy of the cart content in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[uint]*Line)
	c.order = nil
}
