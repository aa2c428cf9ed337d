/*
Package sqlite provides the SQLite-backed ledger store.

PURPOSE:
  Durable persistence for the transaction ledger. Single file (or ":memory:"
  for tests), auto-migrated schema, one append-only table.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the transactions table
  - No DELETE statements on the transactions table

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  led := ledger.New(store)

SEE ALSO:
  - ledger package: the Store interface this implements
  - store/memory: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/workforce"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ ledger.Store = (*Store)(nil)

// New creates a SQLite store at the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema. The seq column preserves recording
// order across restarts; money columns hold decimal strings to keep exact
// values through the round trip.
func (s *Store) migrate() error {
	schema := `
	-- Transactions (append-only ledger)
	CREATE TABLE IF NOT EXISTS transactions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		recorded_at TEXT NOT NULL,
		worker_id TEXT NOT NULL,
		worker_name TEXT NOT NULL,
		role TEXT NOT NULL,
		tx_kind TEXT NOT NULL,
		days INTEGER NOT NULL DEFAULT 0,
		payout BOOLEAN NOT NULL DEFAULT FALSE,
		resulting_balance INTEGER NOT NULL DEFAULT 0,
		total TEXT NOT NULL DEFAULT '0',
		base TEXT NOT NULL DEFAULT '0',
		bonus TEXT NOT NULL DEFAULT '0',
		overtime TEXT NOT NULL DEFAULT '0',
		special_hours TEXT NOT NULL DEFAULT '0'
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_worker
		ON transactions(worker_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_kind
		ON transactions(tx_kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append adds a transaction to the ledger.
func (s *Store) Append(ctx context.Context, tx ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO transactions
		(id, recorded_at, worker_id, worker_name, role, tx_kind,
		 days, payout, resulting_balance, total, base, bonus, overtime, special_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.RecordedAt.UTC().Format(time.RFC3339Nano),
		tx.WorkerID,
		tx.WorkerName,
		string(tx.Role),
		string(tx.Kind),
		tx.Days,
		tx.Payout,
		tx.ResultingBalance,
		tx.Total.String(),
		tx.Base.String(),
		tx.Bonus.String(),
		tx.Overtime.String(),
		tx.SpecialHours.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// Load returns all transactions in recording order.
func (s *Store) Load(ctx context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, recorded_at, worker_id, worker_name, role, tx_kind,
		       days, payout, resulting_balance, total, base, bonus, overtime, special_hours
		FROM transactions
		ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(rows *sql.Rows) (ledger.Transaction, error) {
	var (
		tx         ledger.Transaction
		recordedAt string
		role       string
		kind       string
		total      string
		base       string
		bonus      string
		overtime   string
		special    string
	)

	err := rows.Scan(
		&tx.ID, &recordedAt, &tx.WorkerID, &tx.WorkerName, &role, &kind,
		&tx.Days, &tx.Payout, &tx.ResultingBalance,
		&total, &base, &bonus, &overtime, &special,
	)
	if err != nil {
		return tx, fmt.Errorf("failed to scan transaction: %w", err)
	}

	tx.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedAt)
	tx.Role = workforce.Role(role)
	tx.Kind = ledger.Kind(kind)
	if tx.Total, err = decimal.NewFromString(total); err != nil {
		return tx, fmt.Errorf("failed to parse total %q: %w", total, err)
	}
	if tx.Base, err = decimal.NewFromString(base); err != nil {
		return tx, fmt.Errorf("failed to parse base %q: %w", base, err)
	}
	if tx.Bonus, err = decimal.NewFromString(bonus); err != nil {
		return tx, fmt.Errorf("failed to parse bonus %q: %w", bonus, err)
	}
	if tx.Overtime, err = decimal.NewFromString(overtime); err != nil {
		return tx, fmt.Errorf("failed to parse overtime %q: %w", overtime, err)
	}
	if tx.SpecialHours, err = decimal.NewFromString(special); err != nil {
		return tx, fmt.Errorf("failed to parse special_hours %q: %w", special, err)
	}

	return tx, nil
}

// CountByKind returns the number of stored transactions per kind (for the
// admin view).
func (s *Store) CountByKind(ctx context.Context) (map[ledger.Kind]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT tx_kind, COUNT(*) FROM transactions GROUP BY tx_kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[ledger.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[ledger.Kind(kind)] = n
	}
	return counts, rows.Err()
}
