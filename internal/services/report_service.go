package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/repository"
)

const (
	topItemsLimit  = 5
	reportCacheTTL = 30 * time.Second
)

// ReportService aggregates persisted orders into period reports. It only
// reads; the optional redis cache is the sole side channel.
type ReportService struct {
	store       repository.Store
	redisClient *redis.Client
}

func NewReportService(store repository.Store) *ReportService {
	return &ReportService{store: store}
}

func (s *ReportService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// ReportCacheKey names the cached aggregate for one period. Month 0 covers
// the whole year. Writers delete the affected keys after order mutations.
func ReportCacheKey(year, month int) string {
	return fmt.Sprintf("report:%d:%02d", year, month)
}

// MonthlyReport aggregates orders whose timestamp falls in the half-open
// period [start, end): revenue, per-status counts (all statuses present,
// normalized) and the top sellers. Month 0 reports the whole year.
func (s *ReportService) MonthlyReport(ctx context.Context, year, month int) (*domain.Report, error) {
	if month < 0 || month > 12 {
		return nil, fmt.Errorf("month out of range: %d", month)
	}

	cacheKey := ReportCacheKey(year, month)
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var rep domain.Report
			if err := json.Unmarshal([]byte(cached), &rep); err == nil {
				return &rep, nil
			}
		}
	}

	start, end := reportRange(year, month)

	var (
		orders []domain.Order
		top    []domain.ItemSales
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.store.Orders().InRange(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.store.Orders().TopItems(gctx, start, end, topItemsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(map[domain.OrderStatus]int, len(domain.Statuses))
	for _, st := range domain.Statuses {
		counts[st] = 0
	}
	var revenue float64
	for i := range orders {
		revenue += orders[i].Total
		orders[i].Status = orders[i].Status.Normalize()
		counts[orders[i].Status]++
	}

	rep := &domain.Report{
		Year:         year,
		Month:        month,
		Start:        start,
		End:          end,
		Orders:       orders,
		TotalRevenue: revenue,
		StatusCounts: counts,
		TopItems:     top,
	}
	if s.redisClient != nil {
		if data, err := json.Marshal(rep); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, reportCacheTTL)
		}
	}
	return rep, nil
}

// reportRange returns the half-open [start, end) period in the stored
// timestamp format.
func reportRange(year, month int) (string, string) {
	var start time.Time
	if month == 0 {
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		return start.Format(domain.DateLayout), start.AddDate(1, 0, 0).Format(domain.DateLayout)
	}
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start.Format(domain.DateLayout), start.AddDate(0, 1, 0).Format(domain.DateLayout)
}
