package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/store"
)

// EventPublisher announces stored transactions to other processes.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, t core.Transaction) error
}

// TransactionService orchestrates transaction operations across the store and AMQP
type TransactionService struct {
	store     store.Store
	publisher EventPublisher
	timeout   time.Duration
	logger    *applog.Logger
	events    *applog.StructuredLogger
}

type Option func(*TransactionService)

// WithPublisher enables transaction created events.
func WithPublisher(p EventPublisher) Option {
	return func(s *TransactionService) { s.publisher = p }
}

// WithTimeout bounds every store call.
func WithTimeout(d time.Duration) Option {
	return func(s *TransactionService) { s.timeout = d }
}

func WithLogger(l *applog.Logger) Option {
	return func(s *TransactionService) {
		if l != nil {
			s.logger = l.WithComponent(applog.ComponentService)
		}
	}
}

func NewTransactionService(st store.Store, opts ...Option) *TransactionService {
	s := &TransactionService{
		store:  st,
		logger: applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentService),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = applog.NewStructuredLogger(s.logger)
	return s
}

// List returns every stored transaction, oldest first.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	if s.store == nil {
		return nil, store.ErrNotInitialized
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if list == nil {
		list = []core.Transaction{}
	}
	return list, nil
}

// Create persists the transaction, then publishes its event. A publish
// failure is logged only: the record is already stored.
func (s *TransactionService) Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error) {
	if s.store == nil {
		return core.Transaction{}, store.ErrNotInitialized
	}
	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	t, err := s.store.Create(storeCtx, nt)
	if err != nil {
		s.events.LogError(ctx, "Failed to store transaction", err, applog.ComponentStorage, applog.OpCreate,
			applog.NewFields().WithTransaction("", nt.Name, nt.Price, nt.DateTime))
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.events.LogTransactionCreated(ctx, t.ID, t.Name, t.Price, t.DateTime)

	if err := s.publishCreated(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction created message",
			applog.NewFields().
				WithOperation(applog.OpPublish).
				WithTransaction(t.ID, t.Name, t.Price, t.DateTime).
				WithError(err).
				ToSlice()...)
	}

	return t, nil
}

// Ping reports store readiness.
func (s *TransactionService) Ping(ctx context.Context) error {
	if s.store == nil {
		return store.ErrNotInitialized
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.Ping(ctx)
}

func (s *TransactionService) publishCreated(ctx context.Context, t core.Transaction) error {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "AMQP client not available, skipping transaction event")
		return nil
	}
	return s.publisher.PublishTransactionCreated(ctx, t)
}

func (s *TransactionService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Close closes the publisher if it holds a connection.
func (s *TransactionService) Close() error {
	var errs []error

	if c, ok := s.publisher.(interface{ Close() error }); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %w", errors.Join(errs...))
	}

	return nil
}
