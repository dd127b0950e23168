package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/domain"
	rabbit "restaurant-pos/internal/infra/rabbitmq"
	"restaurant-pos/internal/repository"
)

// LineInput is one desired (item, quantity) pair for an order edit.
// Duplicated item ids are summed; non-positive quantities are dropped.
type LineInput struct {
	ItemID   uint `json:"itemId"`
	Quantity int  `json:"quantity"`
}

// OrderService turns carts into persisted orders, reconciles edits against
// catalog stock and drives the order status machine. Every multi-step
// mutation runs inside one store transaction.
type OrderService struct {
	store     repository.Store
	publisher rabbit.PublisherInterface

	// mu serializes the check-then-act stock sections. The transaction
	// already isolates each operation on sqlite; the mutex keeps two
	// in-process checkouts from racing the availability check on backends
	// with weaker isolation.
	mu sync.Mutex
}

func NewOrderService(store repository.Store, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{store: store, publisher: pub}
}

// Checkout converts the cart into a persisted order, decrementing catalog
// stock for every line. The cart is cleared only after a successful commit;
// on any failure it survives untouched so the operator can fix it.
func (s *OrderService) Checkout(ctx context.Context, c *cart.Cart, customerID uint, notes string) (*domain.Order, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidOrder)
	}
	if customerID == 0 {
		return nil, fmt.Errorf("%w: no customer selected", ErrInvalidOrder)
	}
	total := c.Total()
	if total <= 0 {
		return nil, fmt.Errorf("%w: total must be positive", ErrInvalidOrder)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var order *domain.Order
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		cust, err := tx.Customers().FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if cust == nil {
			return ErrCustomerNotFound
		}

		// Authoritative stock re-check. The cart's own check was advisory
		// and may be stale by now.
		var shortages []Shortage
		for _, ln := range lines {
			it, err := tx.Items().FindByID(ctx, ln.ItemID)
			if err != nil {
				return err
			}
			if it == nil {
				shortages = append(shortages, Shortage{ItemID: ln.ItemID, Name: ln.Name, Requested: ln.Quantity})
				continue
			}
			if ln.Quantity > it.Stock {
				shortages = append(shortages, Shortage{ItemID: it.ID, Name: it.Name, Requested: ln.Quantity, Available: it.Stock})
			}
		}
		if len(shortages) > 0 {
			return &InsufficientStockError{Shortages: shortages}
		}

		o := &domain.Order{
			CustomerID: customerID,
			Date:       time.Now().Format(domain.DateLayout),
			Status:     domain.StatusPending,
			Total:      total,
			Notes:      notes,
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if _, err := tx.Orders().EnsureCode(ctx, o); err != nil {
			return err
		}

		olines := make([]domain.OrderLine, 0, len(lines))
		for _, ln := range lines {
			olines = append(olines, domain.OrderLine{
				OrderID:  o.ID,
				ItemID:   ln.ItemID,
				Quantity: ln.Quantity,
				Subtotal: float64(ln.Quantity) * ln.Price,
			})
			if err := tx.Items().AdjustStock(ctx, ln.ItemID, -ln.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Orders().ReplaceLines(ctx, o.ID, olines); err != nil {
			return fmt.Errorf("write order lines: %w", err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.Clear()
	go s.publishEvent(context.Background(), "order.created", order)
	return order, nil
}

// EditItems replaces the order's whole line set, reconciling catalog stock
// against the original quantities: returned quantity goes back to stock,
// increases and new items consume it. Subtotals are recomputed at current
// catalog prices, and the edit reopens the order into Preparing.
func (s *OrderService) EditItems(ctx context.Context, orderID uint, inputs []LineInput) (*domain.Order, error) {
	desired, keys := mergeLineInputs(inputs)
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: an order must keep at least one line", ErrInvalidOrder)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated *domain.Order
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		// Re-read inside the transaction so a just-completed order cannot
		// be edited from a stale screen.
		if o.Status.Terminal() {
			return ErrLockedOrder
		}

		origLines, err := tx.Orders().LinesByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		orig := make(map[uint]int, len(origLines))
		for _, ln := range origLines {
			orig[ln.ItemID] += ln.Quantity
		}

		// Availability first, before any stock mutation. An edit may claim
		// current stock plus whatever the order already holds for the item.
		items := make(map[uint]*domain.Item, len(keys))
		var shortages []Shortage
		for _, id := range keys {
			it, err := tx.Items().FindByID(ctx, id)
			if err != nil {
				return err
			}
			if it == nil {
				return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
			}
			items[id] = it
			if available := it.Stock + orig[id]; desired[id] > available {
				shortages = append(shortages, Shortage{ItemID: id, Name: it.Name, Requested: desired[id], Available: available})
			}
		}
		if len(shortages) > 0 {
			return &InsufficientStockError{Shortages: shortages}
		}

		for _, id := range unionKeys(orig, keys) {
			if delta := orig[id] - desired[id]; delta != 0 {
				if err := tx.Items().AdjustStock(ctx, id, delta); err != nil {
					return err
				}
			}
		}

		var total float64
		newLines := make([]domain.OrderLine, 0, len(keys))
		for _, id := range keys {
			sub := float64(desired[id]) * items[id].Price
			total += sub
			newLines = append(newLines, domain.OrderLine{
				OrderID:  orderID,
				ItemID:   id,
				Quantity: desired[id],
				Subtotal: sub,
			})
		}
		if err := tx.Orders().ReplaceLines(ctx, orderID, newLines); err != nil {
			return fmt.Errorf("replace order lines: %w", err)
		}

		o.Total = total
		// Any edit sends the order back to the kitchen.
		o.Status = domain.StatusPreparing
		if err := tx.Orders().Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), "order.updated", updated)
	return updated, nil
}

// UpdateStatus moves the order to any status of the enum, including
// regressions like Ready back to Pending. The only forbidden move is out of
// Completed.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var updated *domain.Order
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		if o.Status.Terminal() {
			return ErrLockedOrder
		}
		o.Status = status
		if err := tx.Orders().Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), "order.status_changed", updated)
	return updated, nil
}

// GetOrder returns the order and its lines with the status normalized for
// display; the stored value stays untouched.
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*domain.Order, []domain.OrderLine, error) {
	o, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if o == nil {
		return nil, nil, ErrOrderNotFound
	}
	lines, err := s.store.Orders().LinesByOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	o.Status = o.Status.Normalize()
	return o, lines, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status domain.OrderStatus, month int) ([]domain.OrderSummary, error) {
	out, err := s.store.Orders().List(ctx, status, month)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Status = out[i].Status.Normalize()
	}
	return out, nil
}

func (s *OrderService) publishEvent(ctx context.Context, routingKey string, o *domain.Order) {
	if s.publisher == nil || o == nil {
		return
	}
	evt := domain.OrderEvent{
		OrderID:    o.ID,
		Code:       o.Code,
		CustomerID: o.CustomerID,
		Status:     o.Status.Normalize(),
		Total:      o.Total,
		Date:       o.Date,
	}
	if err := s.publisher.Publish(ctx, routingKey, evt); err != nil {
		log.Printf("publish %s for order %d: %v", routingKey, o.ID, err)
	}
}

func mergeLineInputs(inputs []LineInput) (map[uint]int, []uint) {
	desired := make(map[uint]int, len(inputs))
	keys := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			continue
		}
		if _, seen := desired[in.ItemID]; !seen {
			keys = append(keys, in.ItemID)
		}
		desired[in.ItemID] += in.Quantity
	}
	return desired, keys
}

// unionKeys lists the desired item ids followed by items only present in the
// original line set (removed by the edit), the latter sorted for
// deterministic iteration.
func unionKeys(orig map[uint]int, desired []uint) []uint {
	seen := make(map[uint]bool, len(desired))
	for _, id := range desired {
		seen[id] = true
	}
	extra := make([]uint, 0)
	for id := range orig {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(append([]uint(nil), desired...), extra...)
}
