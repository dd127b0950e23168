package cart

import "sync"

// Manager hands out one cart per order-entry session. Carts are created
// lazily and dropped when the session checks out or abandons the order;
// a cart is never shared between sessions.
type Manager struct {
	catalog CatalogReader

	mu    sync.Mutex
	carts map[string]*Cart
}

func NewManager(catalog CatalogReader) *Manager {
	return &Manager{
		catalog: catalog,
		carts:   make(map[string]*Cart),
	}
}

func (m *Manager) Get(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[sessionID]
	if !ok {
		c = New(m.catalog)
		m.carts[sessionID] = c
	}
	return c
}

func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}
