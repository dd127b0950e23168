package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/repository"
)

func seedMarchData(t *testing.T, s repository.Store) (domain.Customer, []domain.Item) {
	t.Helper()
	cust := seedCustomer(t, s, "Jane Doe", "jane@example.com")
	items := []domain.Item{
		seedItem(t, s, "Chicken Curry", 100, 99),
		seedItem(t, s, "Spring Roll", 40, 99),
	}

	seedOrder(t, s, domain.Order{CustomerID: cust.ID, Date: "2024-03-05 12:00:00", Status: domain.StatusCompleted, Total: 300},
		[]domain.OrderLine{{ItemID: items[0].ID, Quantity: 3, Subtotal: 300}})
	seedOrder(t, s, domain.Order{CustomerID: cust.ID, Date: "2024-03-20 19:30:00", Status: domain.StatusPending, Total: 80},
		[]domain.OrderLine{{ItemID: items[1].ID, Quantity: 2, Subtotal: 80}})
	seedOrder(t, s, domain.Order{CustomerID: cust.ID, Date: "2024-03-31 23:59:59", Status: "Delivered", Total: 40},
		[]domain.OrderLine{{ItemID: items[1].ID, Quantity: 1, Subtotal: 40}})
	// april, outside a march report
	seedOrder(t, s, domain.Order{CustomerID: cust.ID, Date: "2024-04-01 00:00:00", Status: domain.StatusCompleted, Total: 1000},
		[]domain.OrderLine{{ItemID: items[0].ID, Quantity: 10, Subtotal: 1000}})
	return cust, items
}

func TestReportService_MonthlyReport(t *testing.T) {
	s := newTestStore(t)
	_, items := seedMarchData(t, s)
	svc := NewReportService(s)

	rep, err := svc.MonthlyReport(context.Background(), 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, 2024, rep.Year)
	assert.Equal(t, 3, rep.Month)
	assert.Equal(t, "2024-03-01 00:00:00", rep.Start)
	assert.Equal(t, "2024-04-01 00:00:00", rep.End)

	require.Len(t, rep.Orders, 3)
	assert.Equal(t, 420.0, rep.TotalRevenue)

	// every status keyed, legacy Delivered folded into Completed
	assert.Equal(t, map[domain.OrderStatus]int{
		domain.StatusPending:   1,
		domain.StatusPreparing: 0,
		domain.StatusReady:     0,
		domain.StatusCompleted: 2,
	}, rep.StatusCounts)

	require.Len(t, rep.TopItems, 2)
	assert.Equal(t, items[0].ID, rep.TopItems[0].ItemID)
	assert.Equal(t, 3, rep.TopItems[0].Quantity)
	assert.Equal(t, items[1].ID, rep.TopItems[1].ItemID)
	assert.Equal(t, 3, rep.TopItems[1].Quantity)
}

func TestReportService_YearReport(t *testing.T) {
	s := newTestStore(t)
	seedMarchData(t, s)
	svc := NewReportService(s)

	rep, err := svc.MonthlyReport(context.Background(), 2024, 0)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01 00:00:00", rep.Start)
	assert.Equal(t, "2025-01-01 00:00:00", rep.End)
	assert.Len(t, rep.Orders, 4)
	assert.Equal(t, 1420.0, rep.TotalRevenue)
}

func TestReportService_MonthOutOfRange(t *testing.T) {
	svc := NewReportService(newTestStore(t))
	_, err := svc.MonthlyReport(context.Background(), 2024, 13)
	assert.Error(t, err)
	_, err = svc.MonthlyReport(context.Background(), 2024, -1)
	assert.Error(t, err)
}

func TestReportService_EmptyPeriod(t *testing.T) {
	s := newTestStore(t)
	seedMarchData(t, s)
	svc := NewReportService(s)

	rep, err := svc.MonthlyReport(context.Background(), 2024, 7)
	require.NoError(t, err)
	assert.Empty(t, rep.Orders)
	assert.Equal(t, 0.0, rep.TotalRevenue)
	assert.Len(t, rep.StatusCounts, 4)
	assert.Empty(t, rep.TopItems)
}

func TestReportService_CachesResult(t *testing.T) {
	s := newTestStore(t)
	cust, items := seedMarchData(t, s)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewReportService(s)
	svc.SetRedisClient(rdb)
	ctx := context.Background()

	rep, err := svc.MonthlyReport(ctx, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 420.0, rep.TotalRevenue)
	assert.True(t, mr.Exists(ReportCacheKey(2024, 3)))

	// a new order does not show up while the cache entry lives
	seedOrder(t, s, domain.Order{CustomerID: cust.ID, Date: "2024-03-15 13:00:00", Status: domain.StatusPending, Total: 100},
		[]domain.OrderLine{{ItemID: items[0].ID, Quantity: 1, Subtotal: 100}})

	rep, err = svc.MonthlyReport(ctx, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 420.0, rep.TotalRevenue)

	// invalidation brings the fresh aggregate back
	mr.Del(ReportCacheKey(2024, 3))
	rep, err = svc.MonthlyReport(ctx, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 520.0, rep.TotalRevenue)
}

func TestReportCacheKey(t *testing.T) {
	assert.Equal(t, "report:2024:03", ReportCacheKey(2024, 3))
	assert.Equal(t, "report:2024:00", ReportCacheKey(2024, 0))
}
