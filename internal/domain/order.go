package domain

import "strings"

// DateLayout is the timestamp format stored on orders. Range queries compare
// these strings lexicographically, which the layout keeps sound.
const DateLayout = "2006-01-02 15:04:05"

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusReady     OrderStatus = "Ready"
	StatusCompleted OrderStatus = "Completed"
)

// Statuses lists every status in kitchen order.
var Statuses = []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusCompleted}

// Normalize maps stored status values onto the current enum. "Delivered" is
// the pre-rename label for Completed and still appears in old rows; it is
// mapped on read only, never rewritten in storage. Any other unknown value
// falls back to Pending.
func (s OrderStatus) Normalize() OrderStatus {
	if strings.EqualFold(string(s), "delivered") {
		return StatusCompleted
	}
	for _, known := range Statuses {
		if s == known {
			return known
		}
	}
	return StatusPending
}

func (s OrderStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further mutation of the order is permitted.
func (s OrderStatus) Terminal() bool {
	return s.Normalize() == StatusCompleted
}

type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint        `json:"customerId" gorm:"column:customer_id;not null;index"`
	Date       string      `json:"date" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(16);not null;default:'Pending'"`
	Total      float64     `json:"total" gorm:"not null;default:0"`
	Code       Code        `json:"code" gorm:"type:varchar(24);index"`
	Notes      string      `json:"notes"`
}

// OrderLine is one (item, quantity) entry of an order. Subtotal is the price
// at order or edit time; the whole set for an order is replaced on each edit.
type OrderLine struct {
	OrderID  uint    `json:"orderId" gorm:"column:order_id;not null;index"`
	ItemID   uint    `json:"itemId" gorm:"column:item_id;not null;index"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Subtotal float64 `json:"subtotal" gorm:"not null"`
}

func (OrderLine) TableName() string { return "order_items" }

// OrderSummary is one row of the order history screen.
type OrderSummary struct {
	ID           uint        `json:"id"`
	Code         Code        `json:"code"`
	CustomerName string      `json:"customerName"`
	Date         string      `json:"date"`
	Status       OrderStatus `json:"status"`
	Total        float64     `json:"total"`
}
