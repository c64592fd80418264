package postgres

import (
	"context"
	"errors"
	"testing"

	"moneytracker/internal/core"
	"moneytracker/internal/store"
)

func TestModelToTransaction(t *testing.T) {
	m := TransactionModel{ID: 42, Name: "rent", Description: "d", DateTime: "t", Price: core.Float(-900)}
	got := m.toTransaction()
	if got.ID != "42" {
		t.Errorf("ID = %q, want 42", got.ID)
	}
	if got.Price == nil || *got.Price != -900 {
		t.Errorf("Price = %v, want -900", got.Price)
	}
	if (TransactionModel{}).TableName() != "transactions" {
		t.Errorf("TableName() = %q", (TransactionModel{}).TableName())
	}
}

func TestUninitializedStore(t *testing.T) {
	var s Store
	ctx := context.Background()
	if _, err := s.Create(ctx, core.NewTransaction{}); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("Create() error = %v, want ErrNotInitialized", err)
	}
	if _, err := s.List(ctx); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("List() error = %v, want ErrNotInitialized", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("Ping() error = %v, want ErrNotInitialized", err)
	}
}
