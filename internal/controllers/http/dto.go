package http

import (
	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/services"
)

type AddCartItemRequest struct {
	ItemID uint `json:"itemId" binding:"required"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type CheckoutRequest struct {
	CustomerID uint   `json:"customerId" binding:"required"`
	Notes      string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type EditItemsRequest struct {
	Lines []services.LineInput `json:"lines" binding:"required"`
}

type CartView struct {
	Lines []cart.Line `json:"lines"`
	Total float64     `json:"total"`
}

type OrderView struct {
	Order *domain.Order      `json:"order"`
	Lines []domain.OrderLine `json:"lines"`
}
