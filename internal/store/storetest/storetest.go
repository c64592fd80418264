// Package storetest holds the behaviour every store backend must share.
package storetest

import (
	"context"
	"testing"

	"moneytracker/internal/core"
	"moneytracker/internal/store"
)

// Run exercises a backend against the store contract. newStore must return an
// empty store each time it is called.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("empty list is non-nil", func(t *testing.T) {
		s := newStore(t)
		list, err := s.List(context.Background())
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if list == nil {
			t.Fatal("List() returned nil slice, want empty slice")
		}
		if len(list) != 0 {
			t.Fatalf("List() len = %d, want 0", len(list))
		}
	})

	t.Run("create round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		in := core.NewTransaction{
			Price:       core.Float(20000),
			Name:        "mobile",
			Description: "d",
			DateTime:    "2024-01-02T03:04",
		}
		created, err := s.Create(ctx, in)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.ID == "" {
			t.Fatal("Create() returned empty ID")
		}
		if created.Name != in.Name || created.Description != in.Description || created.DateTime != in.DateTime {
			t.Fatalf("Create() = %+v, want fields of %+v", created, in)
		}
		if created.Price == nil || *created.Price != 20000 {
			t.Fatalf("Create() price = %v, want 20000", created.Price)
		}

		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("List() len = %d, want 1", len(list))
		}
		got := list[0]
		if got.ID != created.ID || got.Name != "mobile" || got.Description != "d" || got.DateTime != in.DateTime {
			t.Fatalf("List()[0] = %+v, want %+v", got, created)
		}
		if got.Price == nil || *got.Price != 20000 {
			t.Fatalf("List()[0] price = %v, want 20000", got.Price)
		}
	})

	t.Run("nil price survives", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if _, err := s.Create(ctx, core.NewTransaction{Name: "food", Description: "x", DateTime: "t"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 1 || list[0].Price != nil {
			t.Fatalf("List() = %+v, want one record with nil price", list)
		}
	})

	t.Run("creation order and unique ids", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		names := []string{"first", "second", "third"}
		for i, n := range names {
			if _, err := s.Create(ctx, core.NewTransaction{Price: core.Float(float64(i) - 1.5), Name: n, Description: "d", DateTime: "t"}); err != nil {
				t.Fatalf("Create(%s) error = %v", n, err)
			}
		}
		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != len(names) {
			t.Fatalf("List() len = %d, want %d", len(list), len(names))
		}
		seen := map[string]bool{}
		for i, tr := range list {
			if tr.Name != names[i] {
				t.Errorf("List()[%d].Name = %q, want %q", i, tr.Name, names[i])
			}
			if seen[tr.ID] {
				t.Errorf("duplicate ID %q", tr.ID)
			}
			seen[tr.ID] = true
		}
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		if err := s.Ping(context.Background()); err != nil {
			t.Fatalf("Ping() error = %v", err)
		}
	})
}
