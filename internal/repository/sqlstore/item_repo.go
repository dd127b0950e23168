package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

type itemRepo struct {
	db *gorm.DB
}

func (r *itemRepo) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var it domain.Item
	if err := r.db.WithContext(ctx).First(&it, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) List(ctx context.Context, category domain.Category, search string) ([]domain.Item, error) {
	q := r.db.WithContext(ctx).Model(&domain.Item{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		q = q.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var out []domain.Item
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) Create(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) Save(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Item{}, id).Error
}

// AdjustStock guards the stock >= 0 invariant in the statement itself, so
// even a racing writer cannot drive stock negative.
func (r *itemRepo) AdjustStock(ctx context.Context, id uint, delta int) error {
	res := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %d: stock adjustment by %d refused", id, delta)
	}
	return nil
}

func (r *itemRepo) EnsureCode(ctx context.Context, item *domain.Item) (domain.Code, error) {
	if item.Code != "" {
		return item.Code, nil
	}
	code, err := ensureCode(ctx, r.db, "items", domain.ItemCodePrefix, item.ID)
	if err != nil {
		return "", err
	}
	item.Code = code
	return code, nil
}
