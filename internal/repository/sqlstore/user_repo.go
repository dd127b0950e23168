package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := r.db.WithContext(ctx).Order("full_name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) Save(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}

func (r *userRepo) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("lower(email) = ? AND id <> ?", strings.ToLower(email), excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepo) EnsureCode(ctx context.Context, u *domain.User) (domain.Code, error) {
	if u.Code != "" {
		return u.Code, nil
	}
	code, err := ensureCode(ctx, r.db, "users", domain.UserCodePrefix, u.ID)
	if err != nil {
		return "", err
	}
	u.Code = code
	return code, nil
}
