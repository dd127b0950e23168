package services

import (
	"context"
	"fmt"
	"strings"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/validate"
)

type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) SaveUser(ctx context.Context, u *domain.User) error {
	if strings.TrimSpace(u.FullName) == "" || strings.TrimSpace(u.Surname) == "" {
		return fmt.Errorf("%w: full name and surname are required", ErrInvalidUser)
	}
	if !domain.ValidRole(u.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUser, u.Role)
	}
	if !validate.Email(u.Email) {
		return fmt.Errorf("%w: malformed email %q", ErrInvalidUser, u.Email)
	}
	if !validate.Phone(u.Phone) {
		return fmt.Errorf("%w: malformed phone %q", ErrInvalidUser, u.Phone)
	}

	return s.store.Transact(ctx, func(tx repository.Store) error {
		taken, err := tx.Users().EmailTaken(ctx, u.Email, u.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
		if u.ID == 0 {
			if err := tx.Users().Create(ctx, u); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
		} else {
			existing, err := tx.Users().FindByID(ctx, u.ID)
			if err != nil {
				return err
			}
			if existing == nil {
				return ErrUserNotFound
			}
			u.Code = existing.Code
			if err := tx.Users().Save(ctx, u); err != nil {
				return fmt.Errorf("save user: %w", err)
			}
		}
		_, err = tx.Users().EnsureCode(ctx, u)
		return err
	})
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	u, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return s.store.Users().Delete(ctx, id)
}
