package domain

// OrderEvent is the payload published to the kitchen display exchange on
// order creation, edit and status change.
type OrderEvent struct {
	OrderID    uint        `json:"orderId"`
	Code       Code        `json:"code"`
	CustomerID uint        `json:"customerId"`
	Status     OrderStatus `json:"status"`
	Total      float64     `json:"total"`
	Date       string      `json:"date"`
}
