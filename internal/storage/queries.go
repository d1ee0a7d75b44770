package storage

import (
	"context"
	"database/sql"
)

// TransactionRow is one row of the transactions table.
type TransactionRow struct {
	ID              string
	Amount          string
	Type            string
	CategoryID      sql.NullString
	TransactionDate sql.NullString
	CreatedAt       sql.NullString
	ImportedAt      string
}

const upsertTransaction = `
INSERT INTO transactions (id, amount, type, category_id, transaction_date, created_at, imported_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    amount = excluded.amount,
    type = excluded.type,
    category_id = excluded.category_id,
    transaction_date = excluded.transaction_date,
    created_at = excluded.created_at,
    imported_at = excluded.imported_at
`

type UpsertTransactionParams struct {
	ID              string
	Amount          string
	Type            string
	CategoryID      sql.NullString
	TransactionDate sql.NullString
	CreatedAt       sql.NullString
	ImportedAt      string
}

func (q *Queries) UpsertTransaction(ctx context.Context, arg UpsertTransactionParams) error {
	_, err := q.db.ExecContext(ctx, upsertTransaction,
		arg.ID,
		arg.Amount,
		arg.Type,
		arg.CategoryID,
		arg.TransactionDate,
		arg.CreatedAt,
		arg.ImportedAt,
	)
	return err
}

const listTransactions = `
SELECT id, amount, type, category_id, transaction_date, created_at, imported_at
FROM transactions
ORDER BY rowid
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TransactionRow
	for rows.Next() {
		var i TransactionRow
		if err := rows.Scan(
			&i.ID,
			&i.Amount,
			&i.Type,
			&i.CategoryID,
			&i.TransactionDate,
			&i.CreatedAt,
			&i.ImportedAt,
		); err != nil {
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

const countTransactions = `SELECT COUNT(*) FROM transactions`

func (q *Queries) CountTransactions(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTransactions)
	var count int64
	err := row.Scan(&count)
	return count, err
}
