// Package source defines the ports through which transactions enter the
// system, plus the payload decoding shared by the JSON based adapters.
package source

import (
	"context"

	"statistik/internal/core"
)

// Ports for transaction adapters.
type (
	// TransactionLister returns the full transaction set of the store.
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// TransactionWriter persists transactions, replacing records that share
	// an id. It returns how many records were written.
	TransactionWriter interface {
		SaveTransactions(ctx context.Context, txs []core.Transaction) (int, error)
	}

	// Store is a source that can both list and save.
	Store interface {
		TransactionLister
		TransactionWriter
	}
)
