package services

import (
	"context"
	"fmt"
	"strings"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/validate"
)

type CustomerService struct {
	store repository.Store
}

func NewCustomerService(store repository.Store) *CustomerService {
	return &CustomerService{store: store}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.store.Customers().List(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*domain.Customer, error) {
	c, err := s.store.Customers().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

// SaveCustomer creates or updates a customer. Email uniqueness is checked
// inside the transaction so two concurrent saves cannot both claim the same
// address.
func (s *CustomerService) SaveCustomer(ctx context.Context, c *domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: name and email are required", ErrInvalidCustomer)
	}
	if !validate.Email(c.Email) {
		return fmt.Errorf("%w: malformed email %q", ErrInvalidCustomer, c.Email)
	}
	if !validate.City(c.City) {
		return fmt.Errorf("%w: malformed city %q", ErrInvalidCustomer, c.City)
	}
	if !validate.Phone(c.Phone) {
		return fmt.Errorf("%w: malformed phone %q", ErrInvalidCustomer, c.Phone)
	}

	return s.store.Transact(ctx, func(tx repository.Store) error {
		taken, err := tx.Customers().EmailTaken(ctx, c.Email, c.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
		if c.ID == 0 {
			return tx.Customers().Create(ctx, c)
		}
		existing, err := tx.Customers().FindByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrCustomerNotFound
		}
		return tx.Customers().Save(ctx, c)
	})
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	c, err := s.store.Customers().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCustomerNotFound
	}
	return s.store.Customers().Delete(ctx, id)
}
