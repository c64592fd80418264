package memory

import (
	"context"
	"sync"

	"moneytracker/internal/core"
	"moneytracker/internal/store"

	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
	newID func() string
}

func New() *Store {
	return &Store{newID: uuid.NewString}
}

// NewWith seeds the store with existing records, kept in the given order.
func NewWith(items ...core.Transaction) *Store {
	s := New()
	s.items = append(s.items, items...)
	return s
}

// Create stores the transaction under a fresh UUID.
func (s *Store) Create(_ context.Context, nt core.NewTransaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := nt.WithID(s.newID())
	if t.Price != nil {
		p := *t.Price
		t.Price = &p
	}
	s.items = append(s.items, t)
	return t, nil
}

// List returns a copy of the records in insertion order.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Ping(_ context.Context) error { return nil }

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
