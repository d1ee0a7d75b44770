package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"statistik/internal/core"
	"statistik/internal/log"
	"statistik/internal/source"

	_ "modernc.org/sqlite"
)

// Ensure interface conformance
var _ source.Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	logger  *log.Logger
	now     func() time.Time
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
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
		logger = log.Discard()
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		logger:  logger.WithComponent(log.ComponentStorage),
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks the database connection, for readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ListTransactions returns every stored transaction in first-insert order.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		amount, _ := core.ParseAmount(row.Amount)
		out = append(out, core.Transaction{
			ID:              row.ID,
			Amount:          amount,
			Type:            core.TxType(row.Type),
			CategoryID:      row.CategoryID.String,
			TransactionDate: row.TransactionDate.String,
			CreatedAt:       row.CreatedAt.String,
		})
	}
	return out, nil
}

// SaveTransactions upserts txs in a single database transaction. Records
// without an id get a generated one.
func (r *SQLiteRepository) SaveTransactions(ctx context.Context, txs []core.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	importedAt := r.now().UTC().Format(time.RFC3339)
	for _, t := range txs {
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		err := q.UpsertTransaction(ctx, UpsertTransactionParams{
			ID:              id,
			Amount:          t.Amount.String(),
			Type:            string(t.Type),
			CategoryID:      nullString(t.CategoryID),
			TransactionDate: nullString(t.TransactionDate),
			CreatedAt:       nullString(t.CreatedAt),
			ImportedAt:      importedAt,
		})
		if err != nil {
			return 0, fmt.Errorf("upsert transaction %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.InfoContext(ctx, "Transactions saved to SQLite",
		log.NewFields().WithSource("sqlite", len(txs)).WithOperation(log.OpSave).ToSlice()...)

	return len(txs), nil
}

// Count returns the number of stored transactions.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
