package sqlstore

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"restaurant-pos/internal/repository"
)

// codeMu serializes the lazy code generation check-and-write across
// goroutines. Codes derive from unique row ids, but imported data can carry
// coinciding base codes, so the free-suffix probe and the persisting write
// must not interleave.
var codeMu sync.Mutex

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) repository.Store {
	return &store{db: db}
}

func (s *store) Items() repository.ItemRepository         { return &itemRepo{db: s.db} }
func (s *store) Customers() repository.CustomerRepository { return &customerRepo{db: s.db} }
func (s *store) Users() repository.UserRepository         { return &userRepo{db: s.db} }
func (s *store) Orders() repository.OrderRepository       { return &orderRepo{db: s.db} }

func (s *store) Transact(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
