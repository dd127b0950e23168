package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrLockedOrder      = errors.New("completed orders cannot be edited")
	ErrInvalidOrder     = errors.New("invalid order")
	ErrInvalidItem      = errors.New("invalid item")
	ErrInvalidCustomer  = errors.New("invalid customer")
	ErrInvalidUser      = errors.New("invalid user")
	ErrInvalidStatus    = errors.New("unknown order status")
	ErrDuplicateEmail   = errors.New("email already in use")
)

// Shortage describes one line the catalog cannot satisfy. For edits,
// Available includes the quantity the order already holds for the item.
type Shortage struct {
	ItemID    uint   `json:"itemId"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// InsufficientStockError carries every offending line of a checkout or edit
// so the caller can surface all problems at once.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		parts[i] = fmt.Sprintf("%s: requested %d, available %d", s.Name, s.Requested, s.Available)
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}
