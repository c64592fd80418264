package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/store"
	"moneytracker/internal/store/storetest"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	cfg := applog.DefaultConfig()
	cfg.Output = io.Discard
	repo, err := NewRepository(filepath.Join(t.TempDir(), "data", "test.db"), applog.New(cfg))
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return newTestRepository(t) })
}

func TestRepositoryIDsAreDecimalText(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, core.NewTransaction{Price: core.Float(-200), Name: "", Description: "d", DateTime: "t"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := repo.Create(ctx, core.NewTransaction{Price: core.Float(1), Name: "x", Description: "d", DateTime: "t"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID != "1" || second.ID != "2" {
		t.Fatalf("IDs = %q, %q; want 1, 2", first.ID, second.ID)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	repo, err := NewRepository(path, nil)
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	defer repo.Close()

	if err := RunMigrations(path); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}
}
