package sqlite

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type TransactionRow struct {
	ID          int64
	Name        string
	Description string
	DateTime    string
	Price       sql.NullFloat64
}

type CreateTransactionParams struct {
	Name        string
	Description string
	DateTime    string
	Price       sql.NullFloat64
}

const createTransaction = `
INSERT INTO transactions (name, description, date_time, price)
VALUES (?, ?, ?, ?)
RETURNING id, name, description, date_time, price
`

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (TransactionRow, error) {
	row := q.db.QueryRowContext(ctx, createTransaction, arg.Name, arg.Description, arg.DateTime, arg.Price)
	var i TransactionRow
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.DateTime, &i.Price)
	return i, err
}

const listTransactions = `
SELECT id, name, description, date_time, price
FROM transactions
ORDER BY id ASC
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []TransactionRow{}
	for rows.Next() {
		var i TransactionRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.DateTime, &i.Price); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
