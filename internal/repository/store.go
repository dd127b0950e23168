package repository

import (
	"context"

	"restaurant-pos/internal/domain"
)

// Store is the unit of work over the POS tables. Transact runs fn against a
// Store bound to one database transaction; any error returned by fn rolls
// the whole transaction back, so multi-step operations are all-or-nothing.
//
// Find methods return (nil, nil) when the row does not exist.
type Store interface {
	Items() ItemRepository
	Customers() CustomerRepository
	Users() UserRepository
	Orders() OrderRepository
	Transact(ctx context.Context, fn func(Store) error) error
}

type ItemRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Item, error)
	List(ctx context.Context, category domain.Category, search string) ([]domain.Item, error)
	Create(ctx context.Context, item *domain.Item) error
	Save(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uint) error
	// AdjustStock adds delta to the item's stock. It fails without writing
	// when the result would be negative.
	AdjustStock(ctx context.Context, id uint, delta int) error
	// EnsureCode returns the item's code, generating and persisting one if
	// it has none yet. Idempotent.
	EnsureCode(ctx context.Context, item *domain.Item) (domain.Code, error)
}

type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Save(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id uint) error
	// EmailTaken reports whether another row than excludeID already holds
	// the email, case-insensitively.
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Save(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uint) error
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	EnsureCode(ctx context.Context, u *domain.User) (domain.Code, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	Create(ctx context.Context, o *domain.Order) error
	Save(ctx context.Context, o *domain.Order) error
	// List returns history rows joined with the customer name, newest
	// first. Empty status or month 0 disables that filter.
	List(ctx context.Context, status domain.OrderStatus, month int) ([]domain.OrderSummary, error)
	LinesByOrder(ctx context.Context, orderID uint) ([]domain.OrderLine, error)
	// ReplaceLines swaps the whole line set of an order.
	ReplaceLines(ctx context.Context, orderID uint, lines []domain.OrderLine) error
	// InRange returns orders whose stored timestamp falls in [start, end).
	InRange(ctx context.Context, start, end string) ([]domain.Order, error)
	// TopItems returns the items with the highest summed ordered quantity
	// over orders in [start, end), ties broken by ascending item id.
	TopItems(ctx context.Context, start, end string, limit int) ([]domain.ItemSales, error)
	EnsureCode(ctx context.Context, o *domain.Order) (domain.Code, error)
}
