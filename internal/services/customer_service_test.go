package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-pos/internal/domain"
)

func TestCustomerService_SaveCustomer(t *testing.T) {
	svc := NewCustomerService(newTestStore(t))
	ctx := context.Background()

	c := domain.Customer{Name: "Jane Doe", Email: "jane@example.com", City: "Rome", Phone: "+39 333 1234567"}
	require.NoError(t, svc.SaveCustomer(ctx, &c))
	assert.NotZero(t, c.ID)

	c.City = "Milan"
	require.NoError(t, svc.SaveCustomer(ctx, &c))

	got, err := svc.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milan", got.City)
}

func TestCustomerService_SaveCustomerValidation(t *testing.T) {
	svc := NewCustomerService(newTestStore(t))
	ctx := context.Background()

	tests := []struct {
		name string
		cust domain.Customer
	}{
		{"missing name", domain.Customer{Email: "jane@example.com"}},
		{"missing email", domain.Customer{Name: "Jane"}},
		{"malformed email", domain.Customer{Name: "Jane", Email: "not-an-email"}},
		{"malformed city", domain.Customer{Name: "Jane", Email: "jane@example.com", City: "4th District"}},
		{"malformed phone", domain.Customer{Name: "Jane", Email: "jane@example.com", Phone: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.SaveCustomer(ctx, &tt.cust), ErrInvalidCustomer)
		})
	}
}

func TestCustomerService_DuplicateEmail(t *testing.T) {
	svc := NewCustomerService(newTestStore(t))
	ctx := context.Background()

	first := domain.Customer{Name: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, svc.SaveCustomer(ctx, &first))

	// a second customer cannot claim the address, case-insensitively
	second := domain.Customer{Name: "Other", Email: "Jane@Example.com"}
	assert.ErrorIs(t, svc.SaveCustomer(ctx, &second), ErrDuplicateEmail)

	// updating the owner with its own email is fine
	first.Name = "Jane D."
	assert.NoError(t, svc.SaveCustomer(ctx, &first))
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	s := newTestStore(t)
	svc := NewCustomerService(s)
	ctx := context.Background()

	c := seedCustomer(t, s, "Jane Doe", "jane@example.com")
	require.NoError(t, svc.DeleteCustomer(ctx, c.ID))
	assert.ErrorIs(t, svc.DeleteCustomer(ctx, c.ID), ErrCustomerNotFound)

	_, err := svc.GetCustomer(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
