package cart

import "sync"

// Sessions is the in-memory registry of active carts, one per customer.
// Individual carts are single-session and unlocked; the registry itself is
// shared across requests and guards the map.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Get returns the customer's cart, creating an empty one on first use.
func (s *Sessions) Get(customerID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[customerID]
	if !ok {
		c = New()
		s.carts[customerID] = c
	}
	return c
}

// Discard drops the customer's cart entirely, e.g. on navigation away.
func (s *Sessions) Discard(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, customerID)
}
