package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant-pos/internal/domain"
)

// stubCatalog serves items from a map, standing in for the item repository.
type stubCatalog struct {
	items map[uint]domain.Item
}

func (s *stubCatalog) FindByID(_ context.Context, id uint) (*domain.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{items: map[uint]domain.Item{
		1: {ID: 1, Name: "Chicken Curry", Category: domain.CategoryMenu, Price: 100, Stock: 5},
		2: {ID: 2, Name: "Spring Roll", Category: domain.CategorySnack, Price: 40, Stock: 2},
		3: {ID: 3, Name: "Chili Oil", Category: domain.CategorySpice, Price: 15, Stock: 0},
	}}
}

func TestCart_AddAccumulates(t *testing.T) {
	catalog := newStubCatalog()
	c := New(catalog)
	ctx := context.Background()

	assert.NoError(t, c.Add(ctx, 1))
	assert.NoError(t, c.Add(ctx, 1))
	assert.NoError(t, c.Add(ctx, 2))

	lines := c.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, uint(1), lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, uint(2), lines[1].ItemID)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 240.0, c.Total())
}

func TestCart_AddUnknownItem(t *testing.T) {
	c := New(newStubCatalog())
	err := c.Add(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Empty(t, c.Lines())
}

func TestCart_AddOutOfStock(t *testing.T) {
	c := New(newStubCatalog())
	err := c.Add(context.Background(), 3)

	var limitErr *StockLimitError
	assert.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 0, limitErr.Available)
	assert.Empty(t, c.Lines())
}

func TestCart_AddBeyondStock(t *testing.T) {
	c := New(newStubCatalog())
	ctx := context.Background()

	assert.NoError(t, c.Add(ctx, 2))
	assert.NoError(t, c.Add(ctx, 2))
	err := c.Add(ctx, 2)

	var limitErr *StockLimitError
	assert.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 3, limitErr.Requested)
	assert.Equal(t, 2, limitErr.Available)
	// the refused add leaves the line untouched
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestCart_ChangeQuantity(t *testing.T) {
	c := New(newStubCatalog())
	ctx := context.Background()
	assert.NoError(t, c.Add(ctx, 1))

	assert.NoError(t, c.ChangeQuantity(ctx, 1, 3))
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	assert.NoError(t, c.ChangeQuantity(ctx, 1, -2))
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	// increment past stock is refused
	var limitErr *StockLimitError
	assert.ErrorAs(t, c.ChangeQuantity(ctx, 1, 4), &limitErr)
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	// decrement to zero or below removes the line
	assert.NoError(t, c.ChangeQuantity(ctx, 1, -2))
	assert.Empty(t, c.Lines())
}

func TestCart_ChangeQuantityUnknownLine(t *testing.T) {
	c := New(newStubCatalog())
	err := c.ChangeQuantity(context.Background(), 1, 1)
	assert.True(t, errors.Is(err, ErrUnknownItem))
}

func TestCart_PriceSnapshot(t *testing.T) {
	catalog := newStubCatalog()
	c := New(catalog)
	ctx := context.Background()
	assert.NoError(t, c.Add(ctx, 1))

	// a later catalog price change must not move the cart total
	it := catalog.items[1]
	it.Price = 250
	catalog.items[1] = it

	assert.NoError(t, c.Add(ctx, 1))
	assert.Equal(t, 200.0, c.Total())
	assert.Equal(t, 100.0, c.Lines()[0].Price)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := New(newStubCatalog())
	ctx := context.Background()
	assert.NoError(t, c.Add(ctx, 1))
	assert.NoError(t, c.Add(ctx, 2))

	c.Remove(1)
	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].ItemID)

	c.Remove(99) // no-op

	c.Clear()
	assert.Empty(t, c.Lines())
	assert.Equal(t, 0.0, c.Total())
}

func TestManager_SessionIsolation(t *testing.T) {
	m := NewManager(newStubCatalog())
	ctx := context.Background()

	a := m.Get("till-1")
	b := m.Get("till-2")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.Get("till-1"))

	assert.NoError(t, a.Add(ctx, 1))
	assert.Empty(t, b.Lines())

	m.Drop("till-1")
	assert.Empty(t, m.Get("till-1").Lines())
}
