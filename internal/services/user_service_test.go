package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-pos/internal/domain"
)

func TestUserService_SaveUserAssignsCode(t *testing.T) {
	svc := NewUserService(newTestStore(t))
	ctx := context.Background()

	u := domain.User{FullName: "Ada", Surname: "Lovelace", Role: "Manager", Email: "ada@example.com"}
	require.NoError(t, svc.SaveUser(ctx, &u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, domain.MakeCode(domain.UserCodePrefix, u.ID), u.Code)

	// the code survives updates untouched
	code := u.Code
	u.Role = "Owner"
	require.NoError(t, svc.SaveUser(ctx, &u))
	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Owner", got.Role)
	assert.Equal(t, code, got.Code)
}

func TestUserService_SaveUserValidation(t *testing.T) {
	svc := NewUserService(newTestStore(t))
	ctx := context.Background()

	tests := []struct {
		name string
		user domain.User
	}{
		{"missing full name", domain.User{Surname: "L", Role: "Cashier", Email: "a@example.com"}},
		{"missing surname", domain.User{FullName: "Ada", Role: "Cashier", Email: "a@example.com"}},
		{"unknown role", domain.User{FullName: "Ada", Surname: "L", Role: "Admin", Email: "a@example.com"}},
		{"malformed email", domain.User{FullName: "Ada", Surname: "L", Role: "Cashier", Email: "bad"}},
		{"malformed phone", domain.User{FullName: "Ada", Surname: "L", Role: "Cashier", Email: "a@example.com", Phone: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.SaveUser(ctx, &tt.user), ErrInvalidUser)
		})
	}
}

func TestUserService_Roles(t *testing.T) {
	svc := NewUserService(newTestStore(t))
	ctx := context.Background()

	for i, role := range domain.Roles {
		u := domain.User{FullName: "Ada", Surname: "L", Role: role, Email: roleEmail(i)}
		assert.NoError(t, svc.SaveUser(ctx, &u), role)
	}
}

func roleEmail(i int) string {
	return string(rune('a'+i)) + "@example.com"
}

func TestUserService_DuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestStore(t))
	ctx := context.Background()

	first := domain.User{FullName: "Ada", Surname: "L", Role: "Owner", Email: "ada@example.com"}
	require.NoError(t, svc.SaveUser(ctx, &first))

	second := domain.User{FullName: "Grace", Surname: "H", Role: "Cashier", Email: "ADA@example.com"}
	assert.ErrorIs(t, svc.SaveUser(ctx, &second), ErrDuplicateEmail)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc := NewUserService(newTestStore(t))
	ctx := context.Background()

	u := domain.User{FullName: "Ada", Surname: "L", Role: "Kitchen", Email: "ada@example.com"}
	require.NoError(t, svc.SaveUser(ctx, &u))

	require.NoError(t, svc.DeleteUser(ctx, u.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, u.ID), ErrUserNotFound)
	_, err := svc.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
