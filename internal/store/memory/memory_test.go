package memory

import (
	"context"
	"testing"

	"moneytracker/internal/core"
	"moneytracker/internal/store"
	"moneytracker/internal/store/storetest"
)

func TestMemoryStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	s := NewWith(core.Transaction{ID: "a", Name: "seed", Price: core.Float(1)})
	list, _ := s.List(context.Background())
	list[0].Name = "changed"

	again, _ := s.List(context.Background())
	if again[0].Name != "seed" {
		t.Fatalf("store mutated through returned slice: %+v", again[0])
	}
}

func TestMemoryStoreCreateCopiesPrice(t *testing.T) {
	s := New()
	p := core.Float(5)
	created, err := s.Create(context.Background(), core.NewTransaction{Price: p, Name: "n"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	*p = 99
	if *created.Price != 5 {
		t.Fatalf("created price aliased caller pointer: %v", *created.Price)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}
