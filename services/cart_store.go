package services

import (
	"context"
	"sync"
)

// CartStore keeps one cart per session. Update applies fn atomically for the
// session: when fn fails nothing is written.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Update(ctx context.Context, sessionID string, fn func(*Cart) error) error
	Delete(ctx context.Context, sessionID string) error
}

type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]*Cart)}
}

func (s *MemoryCartStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyOf(sessionID), nil
}

func (s *MemoryCartStore) Update(_ context.Context, sessionID string, fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.copyOf(sessionID)
	if err := fn(cart); err != nil {
		return err
	}
	if cart.IsEmpty() {
		delete(s.carts, sessionID)
		return nil
	}
	s.carts[sessionID] = cart
	return nil
}

func (s *MemoryCartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *MemoryCartStore) copyOf(sessionID string) *Cart {
	cart, ok := s.carts[sessionID]
	if !ok {
		return &Cart{}
	}
	return &Cart{Lines: cart.Snapshot()}
}

var _ CartStore = (*MemoryCartStore)(nil)
