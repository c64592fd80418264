package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/store"
	"moneytracker/internal/store/memory"
)

type fakePublisher struct {
	mu        sync.Mutex
	published []core.Transaction
	err       error
	closed    bool
}

func (f *fakePublisher) PublishTransactionCreated(_ context.Context, t core.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, t)
	return f.err
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

type failingStore struct {
	err error
}

func (f failingStore) Create(context.Context, core.NewTransaction) (core.Transaction, error) {
	return core.Transaction{}, f.err
}
func (f failingStore) List(context.Context) ([]core.Transaction, error) { return nil, f.err }
func (f failingStore) Ping(context.Context) error                       { return f.err }

type nilListStore struct{ failingStore }

func (nilListStore) List(context.Context) ([]core.Transaction, error) { return nil, nil }

type deadlineStore struct{ memory.Store }

func (d *deadlineStore) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	return nil
}

func newBufferLogger(w io.Writer) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Output = w
	return applog.New(cfg)
}

func TestNewTransactionService(t *testing.T) {
	service := NewTransactionService(nil)
	if service == nil {
		t.Fatal("NewTransactionService should return a non-nil service")
	}
	if _, err := service.List(context.Background()); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("List() with nil store error = %v", err)
	}
	if _, err := service.Create(context.Background(), core.NewTransaction{}); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("Create() with nil store error = %v", err)
	}
}

func TestTransactionService_CreatePublishes(t *testing.T) {
	pub := &fakePublisher{}
	s := NewTransactionService(memory.New(), WithPublisher(pub), WithLogger(newBufferLogger(io.Discard)))

	created, err := s.Create(context.Background(), core.NewTransaction{Price: core.Float(20000), Name: "mobile", Description: "d", DateTime: "t"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(pub.published) != 1 || pub.published[0].ID != created.ID {
		t.Fatalf("published = %+v, want the created record", pub.published)
	}
}

func TestTransactionService_PublishFailureDoesNotFailCreate(t *testing.T) {
	var buf strings.Builder
	pub := &fakePublisher{err: errors.New("broker down")}
	st := memory.New()
	s := NewTransactionService(st, WithPublisher(pub), WithLogger(newBufferLogger(&buf)))

	created, err := s.Create(context.Background(), core.NewTransaction{Name: "food"})
	if err != nil {
		t.Fatalf("Create() error = %v, want nil", err)
	}
	if created.ID == "" || st.Len() != 1 {
		t.Fatalf("record not stored: %+v len=%d", created, st.Len())
	}
	if !strings.Contains(buf.String(), "broker down") {
		t.Errorf("publish failure not logged: %q", buf.String())
	}
}

func TestTransactionService_StoreErrorsAreWrapped(t *testing.T) {
	sentinel := errors.New("db gone")
	pub := &fakePublisher{}
	s := NewTransactionService(failingStore{err: sentinel}, WithPublisher(pub), WithLogger(newBufferLogger(io.Discard)))

	if _, err := s.Create(context.Background(), core.NewTransaction{}); !errors.Is(err, sentinel) {
		t.Errorf("Create() error = %v, want wrapped sentinel", err)
	}
	if len(pub.published) != 0 {
		t.Error("nothing should be published when the write fails")
	}
	if _, err := s.List(context.Background()); !errors.Is(err, sentinel) {
		t.Errorf("List() error = %v, want wrapped sentinel", err)
	}
}

func TestTransactionService_ListNeverNil(t *testing.T) {
	s := NewTransactionService(nilListStore{}, WithLogger(newBufferLogger(io.Discard)))
	list, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list == nil {
		t.Fatal("List() returned nil, want empty slice")
	}
}

func TestTransactionService_WithTimeout(t *testing.T) {
	s := NewTransactionService(&deadlineStore{}, WithTimeout(time.Second))
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v, want deadline applied", err)
	}
}

func TestTransactionService_Close(t *testing.T) {
	t.Run("nil components", func(t *testing.T) {
		service := &TransactionService{}
		if err := service.Close(); err != nil {
			t.Fatalf("Close should not return error with nil components: %v", err)
		}
	})

	t.Run("closes publisher", func(t *testing.T) {
		pub := &fakePublisher{}
		service := NewTransactionService(memory.New(), WithPublisher(pub))
		if err := service.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if !pub.closed {
			t.Error("publisher was not closed")
		}
	})
}
