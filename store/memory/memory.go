// Package memory provides the in-memory ledger store (for testing/dev).
package memory

import (
	"context"
	"sync"

	"github.com/warp/payroll-engine/ledger"
)

// Store implements ledger.Store with a plain slice. Append-only.
type Store struct {
	mu           sync.RWMutex
	transactions []ledger.Transaction
}

var _ ledger.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Append adds a single transaction.
func (m *Store) Append(_ context.Context, tx ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, tx)
	return nil
}

// Load returns all transactions in recording order.
func (m *Store) Load(_ context.Context) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]ledger.Transaction, len(m.transactions))
	copy(result, m.transactions)
	return result, nil
}
