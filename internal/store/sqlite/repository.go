package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Repository)(nil)

type Repository struct {
	db      *sql.DB
	queries *Queries
	logger  *applog.Logger
}

func NewRepository(dbPath string, logger *applog.Logger) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	return &Repository{
		db:      db,
		queries: New(db),
		logger:  logger.WithComponent(applog.ComponentStorage),
	}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create implements store.TransactionCreator
func (r *Repository) Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error) {
	var price sql.NullFloat64
	if nt.Price != nil {
		price = sql.NullFloat64{Float64: *nt.Price, Valid: true}
	}
	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		Name:        nt.Name,
		Description: nt.Description,
		DateTime:    nt.DateTime,
		Price:       price,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	t := toTransaction(row)
	r.logger.DebugContext(ctx, "Transaction saved to SQLite",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction(t.ID, t.Name, t.Price, t.DateTime).
			ToSlice()...)

	return t, nil
}

// List implements store.TransactionLister
func (r *Repository) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, toTransaction(row))
	}
	return out, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func toTransaction(row TransactionRow) core.Transaction {
	t := core.Transaction{
		ID:          strconv.FormatInt(row.ID, 10),
		Name:        row.Name,
		Description: row.Description,
		DateTime:    row.DateTime,
	}
	if row.Price.Valid {
		t.Price = core.Float(row.Price.Float64)
	}
	return t
}
