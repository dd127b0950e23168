package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/infra/db"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/repository/sqlstore"
)

var testDBSeq int64

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	gdb, err := db.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	return sqlstore.NewStore(gdb)
}

func seedItem(t *testing.T, s repository.Store, name string, price float64, stock int) domain.Item {
	t.Helper()
	it := domain.Item{Name: name, Category: domain.CategoryMenu, Price: price, Stock: stock}
	require.NoError(t, s.Items().Create(context.Background(), &it))
	return it
}

func seedCustomer(t *testing.T, s repository.Store, name, email string) domain.Customer {
	t.Helper()
	c := domain.Customer{Name: name, Email: email}
	require.NoError(t, s.Customers().Create(context.Background(), &c))
	return c
}

func seedOrder(t *testing.T, s repository.Store, o domain.Order, lines []domain.OrderLine) domain.Order {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Orders().Create(ctx, &o))
	for i := range lines {
		lines[i].OrderID = o.ID
	}
	require.NoError(t, s.Orders().ReplaceLines(ctx, o.ID, lines))
	return o
}

func itemStock(t *testing.T, s repository.Store, id uint) int {
	t.Helper()
	it, err := s.Items().FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Stock
}
