package worker

import (
	"context"
	"fmt"
	"sync"

	"moneytracker/internal/amqp"
	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/store"

	"github.com/shopspring/decimal"
)

// BalanceWorker keeps a running balance of every stored transaction, fed by
// transaction created events.
type BalanceWorker struct {
	lister store.TransactionLister
	logger *applog.Logger

	mu      sync.Mutex
	balance decimal.Decimal
	seen    map[string]struct{}
}

func NewBalanceWorker(lister store.TransactionLister, logger *applog.Logger) *BalanceWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &BalanceWorker{
		lister:  lister,
		logger:  logger.WithComponent(applog.ComponentWorker),
		balance: decimal.Zero,
		seen:    make(map[string]struct{}),
	}
}

// Seed replaces the running balance with the one derived from the store.
func (w *BalanceWorker) Seed(ctx context.Context) error {
	list, err := w.lister.List(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	seen := make(map[string]struct{}, len(list))
	for _, t := range list {
		seen[t.ID] = struct{}{}
	}
	balance := core.Balance(list)

	w.mu.Lock()
	w.balance = balance
	w.seen = seen
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Seeded balance from store",
		applog.FieldCount, len(list),
		applog.FieldBalance, core.FormatBalance(balance).String())
	return nil
}

// Reconcile re-derives the balance from the store and logs any drift from
// the event-fed value.
func (w *BalanceWorker) Reconcile(ctx context.Context) error {
	before := w.Balance()
	if err := w.Seed(ctx); err != nil {
		return err
	}
	after := w.Balance()
	if !before.Equal(after) {
		w.logger.WarnContext(ctx, "Balance drift corrected",
			"previous", core.FormatBalance(before).String(),
			applog.FieldBalance, core.FormatBalance(after).String())
	}
	return nil
}

// HandleTransactionCreated folds one event into the balance. Events for
// records already counted are ignored, so redeliveries and the seed race
// do not double count.
func (w *BalanceWorker) HandleTransactionCreated(ctx context.Context, msg *amqp.TransactionCreatedMessage) error {
	if msg.ID == "" {
		return fmt.Errorf("transaction created message without id")
	}

	w.mu.Lock()
	if _, ok := w.seen[msg.ID]; ok {
		w.mu.Unlock()
		w.logger.DebugContext(ctx, "Skipping already counted transaction", applog.FieldTransactionID, msg.ID)
		return nil
	}
	w.seen[msg.ID] = struct{}{}
	if msg.Price != nil {
		w.balance = w.balance.Add(decimal.NewFromFloat(*msg.Price))
	}
	balance := w.balance
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Transaction recorded",
		append(applog.NewFields().
			WithOperation(applog.OpConsume).
			WithTransaction(msg.ID, msg.Name, msg.Price, msg.DateTime).
			ToSlice(),
			applog.FieldBalance, core.FormatBalance(balance).String(),
			"negative", core.IsNegative(balance))...)
	return nil
}

// Balance returns the current running balance.
func (w *BalanceWorker) Balance() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}
