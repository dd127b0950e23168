package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

type customerRepo struct {
	db *gorm.DB
}

func (r *customerRepo) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *customerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) Save(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Customer{}, id).Error
}

func (r *customerRepo) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("lower(email) = ? AND id <> ?", strings.ToLower(email), excludeID).
		Count(&n).Error
	return n > 0, err
}
