package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) Save(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) List(ctx context.Context, status domain.OrderStatus, month int) ([]domain.OrderSummary, error) {
	q := r.db.WithContext(ctx).Table("orders").
		Select("orders.id, orders.code, customers.name AS customer_name, orders.date, orders.status, orders.total").
		Joins("JOIN customers ON customers.id = orders.customer_id")
	if status != "" {
		q = q.Where("orders.status = ?", status)
	}
	if month > 0 {
		// substr works on both sqlite and mysql; the date layout keeps the
		// month at a fixed offset.
		q = q.Where("substr(orders.date, 6, 2) = ?", fmt.Sprintf("%02d", month))
	}
	var out []domain.OrderSummary
	if err := q.Order("orders.id DESC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) LinesByOrder(ctx context.Context, orderID uint) ([]domain.OrderLine, error) {
	var out []domain.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) ReplaceLines(ctx context.Context, orderID uint, lines []domain.OrderLine) error {
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&domain.OrderLine{}).Error
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *orderRepo) InRange(ctx context.Context, start, end string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) TopItems(ctx context.Context, start, end string, limit int) ([]domain.ItemSales, error) {
	var out []domain.ItemSales
	err := r.db.WithContext(ctx).Table("order_items").
		Select("items.id AS item_id, items.name AS name, SUM(order_items.quantity) AS quantity").
		Joins("JOIN items ON items.id = order_items.item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.date >= ? AND orders.date < ?", start, end).
		Group("items.id, items.name").
		Order("quantity DESC, items.id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) EnsureCode(ctx context.Context, o *domain.Order) (domain.Code, error) {
	if o.Code != "" {
		return o.Code, nil
	}
	code, err := ensureCode(ctx, r.db, "orders", domain.OrderCodePrefix, o.ID)
	if err != nil {
		return "", err
	}
	o.Code = code
	return code, nil
}
