package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var _ store.Store = (*Store)(nil)

// TransactionModel is the table row for a transaction.
type TransactionModel struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;type:text;not null;default:''"`
	Description string    `gorm:"column:description;type:text;not null;default:''"`
	DateTime    string    `gorm:"column:date_time;type:text;not null;default:''"`
	Price       *float64  `gorm:"column:price;type:double precision"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (TransactionModel) TableName() string { return "transactions" }

func (m TransactionModel) toTransaction() core.Transaction {
	return core.Transaction{
		ID:          strconv.FormatUint(m.ID, 10),
		Name:        m.Name,
		Description: m.Description,
		DateTime:    m.DateTime,
		Price:       m.Price,
	}
}

type Store struct {
	db     *gorm.DB
	logger *applog.Logger
}

// Open connects with dsn and migrates the transactions table.
func Open(dsn string, logger *applog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewWithDB(db, logger)
}

// NewWithDB migrates the schema on an existing handle and wraps it.
func NewWithDB(db *gorm.DB, logger *applog.Logger) (*Store, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if err := db.AutoMigrate(&TransactionModel{}); err != nil {
		return nil, fmt.Errorf("error migrating transactions table: %w", err)
	}
	return &Store{db: db, logger: logger.WithComponent(applog.ComponentStorage)}, nil
}

func (s *Store) Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error) {
	if s.db == nil {
		return core.Transaction{}, store.ErrNotInitialized
	}
	m := TransactionModel{
		Name:        nt.Name,
		Description: nt.Description,
		DateTime:    nt.DateTime,
		Price:       nt.Price,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	t := m.toTransaction()
	s.logger.DebugContext(ctx, "Transaction saved to Postgres",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction(t.ID, t.Name, t.Price, t.DateTime).
			ToSlice()...)
	return t, nil
}

func (s *Store) List(ctx context.Context) ([]core.Transaction, error) {
	if s.db == nil {
		return nil, store.ErrNotInitialized
	}
	var rows []TransactionModel
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toTransaction())
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return store.ErrNotInitialized
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql handle: %w", err)
	}
	return sqlDB.Close()
}
