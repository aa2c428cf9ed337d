/*
Package ledger provides the append-only record of pay and leave events.

PURPOSE:
  The Ledger is the audit trail: every finalized leave grant, payout, and
  payment is recorded here as an immutable entry. The in-memory sequence is
  the running process's authoritative view; persistence is delegated to a
  Store and a write failure is reported to the caller without rolling back
  the in-memory record.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: No Update, No Delete. EVER.
  2. IMMUTABLE: Once recorded, entries cannot be modified
  3. ORDERED: HistoryFor and ByKind preserve insertion order;
     Recent is newest-first with ties broken by insertion order

DURABILITY TRADE-OFF:
  The ledger favors availability of the running process's view over
  guaranteed durability of every write. Callers needing durability must
  check the reported outcome of each record call.

SEE ALSO:
  - store/memory: in-memory Store for tests/dev
  - store/sqlite: SQLite-backed Store
*/
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/workforce"
)

// =============================================================================
// TRANSACTION - Immutable audit record
// =============================================================================

// Kind discriminates the two transaction shapes.
type Kind string

const (
	KindLeave   Kind = "leave"
	KindPayment Kind = "payment"
)

// Transaction is one immutable ledger entry. Leave entries populate Days,
// Payout and ResultingBalance; payment entries populate the amount fields.
type Transaction struct {
	ID         string          `json:"id"`
	RecordedAt time.Time       `json:"recorded_at"`
	WorkerID   string          `json:"worker_id"`
	WorkerName string          `json:"worker_name"`
	Role       workforce.Role  `json:"role"`
	Kind       Kind            `json:"transaction_type"`

	// Leave fields
	Days             int  `json:"days,omitempty"`
	Payout           bool `json:"payout,omitempty"`
	ResultingBalance int  `json:"resulting_balance,omitempty"`

	// Payment fields
	Total        decimal.Decimal `json:"total,omitempty"`
	Base         decimal.Decimal `json:"base,omitempty"`
	Bonus        decimal.Decimal `json:"bonus,omitempty"`
	Overtime     decimal.Decimal `json:"overtime,omitempty"`
	SpecialHours decimal.Decimal `json:"special_hours,omitempty"`
}

// =============================================================================
// STORE - Persistence interface (append-only)
// =============================================================================

// Store persists transactions. IMPORTANT: Store is APPEND-ONLY. No Update,
// No Delete. Ever.
type Store interface {
	// Append persists a single transaction.
	Append(ctx context.Context, tx Transaction) error

	// Load returns all persisted transactions in recording order.
	Load(ctx context.Context) ([]Transaction, error)
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger keeps the in-memory transaction sequence and mirrors each append
// to the Store.
type Ledger struct {
	mu      sync.RWMutex
	store   Store
	entries []Transaction
}

// New creates a ledger over the given store. Call Load to pick up entries
// persisted by earlier runs (load-then-append semantics).
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Load replaces the in-memory sequence with the persisted one.
func (l *Ledger) Load(ctx context.Context) error {
	entries, err := l.store.Load(ctx)
	if err != nil {
		return &workforce.PersistenceError{Resource: "transaction ledger", Err: err}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = entries
	return nil
}

// RecordLeave appends a leave entry. The entry is always added to the
// in-memory sequence; a persistence failure is returned alongside it and
// does not roll the entry back.
func (l *Ledger) RecordLeave(ctx context.Context, w *workforce.Worker, days int, payout bool, resultingBalance int) (Transaction, error) {
	tx := Transaction{
		ID:               uuid.NewString(),
		RecordedAt:       time.Now().UTC(),
		WorkerID:         w.ID,
		WorkerName:       w.Name,
		Role:             w.Role,
		Kind:             KindLeave,
		Days:             days,
		Payout:           payout,
		ResultingBalance: resultingBalance,
	}
	return tx, l.append(ctx, tx)
}

// Breakdown is the payment shape the payroll engine reports. Declared here
// so the ledger does not depend on the engine.
type Breakdown struct {
	Total        decimal.Decimal
	Base         decimal.Decimal
	Bonus        decimal.Decimal
	Overtime     decimal.Decimal
	SpecialHours decimal.Decimal
}

// RecordPayment appends a payment entry with the full component breakdown.
func (l *Ledger) RecordPayment(ctx context.Context, w *workforce.Worker, b Breakdown) (Transaction, error) {
	tx := Transaction{
		ID:           uuid.NewString(),
		RecordedAt:   time.Now().UTC(),
		WorkerID:     w.ID,
		WorkerName:   w.Name,
		Role:         w.Role,
		Kind:         KindPayment,
		Total:        b.Total,
		Base:         b.Base,
		Bonus:        b.Bonus,
		Overtime:     b.Overtime,
		SpecialHours: b.SpecialHours,
	}
	return tx, l.append(ctx, tx)
}

func (l *Ledger) append(ctx context.Context, tx Transaction) error {
	l.mu.Lock()
	l.entries = append(l.entries, tx)
	l.mu.Unlock()

	if err := l.store.Append(ctx, tx); err != nil {
		return &workforce.PersistenceError{Resource: "transaction ledger", Err: err}
	}
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// HistoryFor returns all entries for a worker in original recording order.
func (l *Ledger) HistoryFor(workerID string) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Transaction
	for _, tx := range l.entries {
		if tx.WorkerID == workerID {
			out = append(out, tx)
		}
	}
	return out
}

// Recent returns the n most recently recorded entries, newest first.
// Entries with equal timestamps keep insertion order among themselves,
// later insertions counting as newer.
func (l *Ledger) Recent(n int) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	reversed := make([]Transaction, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		reversed = append(reversed, l.entries[i])
	}
	// Stable sort keeps the reversed insertion order for equal timestamps.
	sort.SliceStable(reversed, func(i, j int) bool {
		return reversed[i].RecordedAt.After(reversed[j].RecordedAt)
	})

	if n > len(reversed) {
		n = len(reversed)
	}
	if n < 0 {
		n = 0
	}
	return reversed[:n]
}

// ByKind returns all entries of one kind, insertion order preserved.
func (l *Ledger) ByKind(kind Kind) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Transaction
	for _, tx := range l.entries {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out
}

// All returns every entry in recording order.
func (l *Ledger) All() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}
