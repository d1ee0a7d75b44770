// Package memory is an in-process transaction store, optionally seeded from
// a JSON file in the transaction store shape.
package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"statistik/internal/core"
	"statistik/internal/source"
)

// Ensure interface conformance
var _ source.Store = (*Store)(nil)

type Store struct {
	mu    sync.RWMutex
	byID  map[string]int
	items []core.Transaction
}

func New(txs ...core.Transaction) *Store {
	s := &Store{byID: make(map[string]int)}
	s.put(txs)
	return s
}

// NewFromFile seeds the store from path. An empty path gives an empty store.
func NewFromFile(path string) (*Store, error) {
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	txs, err := source.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return New(txs...), nil
}

// ListTransactions returns a copy of the stored transactions in insertion
// order.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.items...), nil
}

// SaveTransactions appends txs. A transaction whose id is already stored
// replaces the stored record in place.
func (s *Store) SaveTransactions(_ context.Context, txs []core.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(txs)
	return len(txs), nil
}

func (s *Store) put(txs []core.Transaction) {
	for _, tx := range txs {
		if tx.ID != "" {
			if i, ok := s.byID[tx.ID]; ok {
				s.items[i] = tx
				continue
			}
			s.byID[tx.ID] = len(s.items)
		}
		s.items = append(s.items, tx)
	}
}
