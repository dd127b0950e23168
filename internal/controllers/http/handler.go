package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/services"
)

// Handler is the HTTP surface the rendering layer talks to. Cart operations
// are scoped by the X-Session-ID header; everything else is stateless.
type Handler struct {
	catalog   *services.CatalogService
	customers *services.CustomerService
	users     *services.UserService
	orders    *services.OrderService
	reports   *services.ReportService
	carts     *cart.Manager
	rdb       *redis.Client
}

func NewHandler(
	catalog *services.CatalogService,
	customers *services.CustomerService,
	users *services.UserService,
	orders *services.OrderService,
	reports *services.ReportService,
	carts *cart.Manager,
	rdb *redis.Client,
) *Handler {
	return &Handler{
		catalog:   catalog,
		customers: customers,
		users:     users,
		orders:    orders,
		reports:   reports,
		carts:     carts,
		rdb:       rdb,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/items", h.ListItems)
	r.GET("/items/:id", h.GetItem)
	r.POST("/items", h.CreateItem)
	r.PUT("/items/:id", h.UpdateItem)
	r.DELETE("/items/:id", h.DeleteItem)

	r.GET("/customers", h.ListCustomers)
	r.GET("/customers/:id", h.GetCustomer)
	r.POST("/customers", h.CreateCustomer)
	r.PUT("/customers/:id", h.UpdateCustomer)
	r.DELETE("/customers/:id", h.DeleteCustomer)

	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.POST("/users", h.CreateUser)
	r.PUT("/users/:id", h.UpdateUser)
	r.DELETE("/users/:id", h.DeleteUser)

	r.GET("/cart", h.ViewCart)
	r.POST("/cart/items", h.AddCartItem)
	r.PATCH("/cart/items/:id", h.ChangeCartQuantity)
	r.DELETE("/cart/items/:id", h.RemoveCartItem)
	r.DELETE("/cart", h.ClearCart)
	r.POST("/checkout", h.Checkout)

	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.PUT("/orders/:id/status", h.UpdateOrderStatus)
	r.PUT("/orders/:id/items", h.EditOrderItems)

	r.GET("/reports/monthly", h.MonthlyReport)
}

// ---- catalog ----

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.catalog.ListItems(c.Request.Context(), domain.Category(c.Query("category")), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.catalog.GetItem(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var item domain.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = 0
	if err := h.catalog.SaveItem(c.Request.Context(), &item); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var item domain.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = id
	if err := h.catalog.SaveItem(c.Request.Context(), &item); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteItem(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- customers ----

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cust, err := h.customers.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var cust domain.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cust.ID = 0
	if err := h.customers.SaveCustomer(c.Request.Context(), &cust); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cust domain.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cust.ID = id
	if err := h.customers.SaveCustomer(c.Request.Context(), &cust); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.customers.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- users ----

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var u domain.User
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u.ID = 0
	if err := h.users.SaveUser(c.Request.Context(), &u); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var u domain.User
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u.ID = id
	if err := h.users.SaveUser(c.Request.Context(), &u); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- cart & checkout ----

func (h *Handler) sessionCart(c *gin.Context) (*cart.Cart, bool) {
	sid := c.GetHeader("X-Session-ID")
	if sid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return nil, false
	}
	return h.carts.Get(sid), true
}

func (h *Handler) ViewCart(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, CartView{Lines: crt.Lines(), Total: crt.Total()})
}

func (h *Handler) AddCartItem(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := crt.Add(c.Request.Context(), req.ItemID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartView{Lines: crt.Lines(), Total: crt.Total()})
}

func (h *Handler) ChangeCartQuantity(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := crt.ChangeQuantity(c.Request.Context(), id, req.Delta); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartView{Lines: crt.Lines(), Total: crt.Total()})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	crt.Remove(id)
	c.JSON(http.StatusOK, CartView{Lines: crt.Lines(), Total: crt.Total()})
}

func (h *Handler) ClearCart(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}
	crt.Clear()
	c.Status(http.StatusNoContent)
}

func (h *Handler) Checkout(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.Checkout(c.Request.Context(), crt, req.CustomerID, req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidateReportCache(order.Date)
	c.JSON(http.StatusCreated, order)
}

// ---- orders ----

func (h *Handler) ListOrders(c *gin.Context) {
	month := 0
	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1..12"})
			return
		}
		month = v
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), domain.OrderStatus(c.Query("status")), month)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, lines, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OrderView{Order: order, Lines: lines})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidateReportCache(order.Date)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) EditOrderItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req EditItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.EditItems(c.Request.Context(), id, req.Lines)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidateReportCache(order.Date)
	c.JSON(http.StatusOK, order)
}

// ---- reports ----

func (h *Handler) MonthlyReport(c *gin.Context) {
	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be numeric"})
			return
		}
		year = v
	}
	month := 0
	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1..12"})
			return
		}
		month = v
	}
	rep, err := h.reports.MonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// ---- helpers ----

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// invalidateReportCache drops the cached aggregates covering the order's
// period so the next report reflects the mutation.
func (h *Handler) invalidateReportCache(date string) {
	if h.rdb == nil {
		return
	}
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return
	}
	h.rdb.Del(context.Background(),
		services.ReportCacheKey(t.Year(), int(t.Month())),
		services.ReportCacheKey(t.Year(), 0),
	)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	var limitErr *cart.StockLimitError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "shortages": stockErr.Shortages})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLockedOrder):
		c.JSON(http.StatusLocked, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, cart.ErrUnknownItem):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidOrder),
		errors.Is(err, services.ErrInvalidItem),
		errors.Is(err, services.ErrInvalidCustomer),
		errors.Is(err, services.ErrInvalidUser),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
