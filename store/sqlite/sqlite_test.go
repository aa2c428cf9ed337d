package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/workforce"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func leaveTx(workerID string, days int) ledger.Transaction {
	return ledger.Transaction{
		ID:               uuid.NewString(),
		RecordedAt:       time.Now().UTC(),
		WorkerID:         workerID,
		WorkerName:       "Grace",
		Role:             workforce.RoleManager,
		Kind:             ledger.KindLeave,
		Days:             days,
		Payout:           false,
		ResultingBalance: 25 - days,
		Total:            decimal.Zero,
		Base:             decimal.Zero,
		Bonus:            decimal.Zero,
		Overtime:         decimal.Zero,
		SpecialHours:     decimal.Zero,
	}
}

func paymentTx(workerID string) ledger.Transaction {
	return ledger.Transaction{
		ID:           uuid.NewString(),
		RecordedAt:   time.Now().UTC(),
		WorkerID:     workerID,
		WorkerName:   "Hank",
		Role:         workforce.RoleVicePresident,
		Kind:         ledger.KindPayment,
		Total:        decimal.NewFromInt(12600),
		Base:         decimal.NewFromInt(2000),
		Bonus:        decimal.NewFromInt(100),
		Overtime:     decimal.NewFromInt(10500),
		SpecialHours: decimal.Zero,
	}
}

// =============================================================================
// ROUND TRIP
// =============================================================================

func TestStore_AppendLoadRoundTrip(t *testing.T) {
	// GIVEN: One leave and one payment appended
	// WHEN: The store loads
	// THEN: Both come back in recording order with exact values

	store := newTestStore(t)
	ctx := context.Background()

	lv := leaveTx("w-1", 5)
	pay := paymentTx("w-2")
	require.NoError(t, store.Append(ctx, lv))
	require.NoError(t, store.Append(ctx, pay))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, lv.ID, loaded[0].ID)
	assert.Equal(t, ledger.KindLeave, loaded[0].Kind)
	assert.Equal(t, 5, loaded[0].Days)
	assert.Equal(t, 20, loaded[0].ResultingBalance)
	assert.Equal(t, workforce.RoleManager, loaded[0].Role)

	assert.Equal(t, pay.ID, loaded[1].ID)
	assert.True(t, loaded[1].Total.Equal(decimal.NewFromInt(12600)),
		"total round trip, got %s", loaded[1].Total)
	assert.True(t, loaded[1].Overtime.Equal(decimal.NewFromInt(10500)))
}

func TestStore_DecimalPrecisionSurvives(t *testing.T) {
	// GIVEN: A payment with a non-integer amount
	// WHEN: It round-trips through the database
	// THEN: The decimal value is exact, not a float approximation

	store := newTestStore(t)
	ctx := context.Background()

	tx := paymentTx("w-1")
	tx.Total = decimal.RequireFromString("1234.5678")
	require.NoError(t, store.Append(ctx, tx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "1234.5678", loaded[0].Total.String())
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tx := leaveTx("w-1", 5)
	require.NoError(t, store.Append(ctx, tx))
	assert.Error(t, store.Append(ctx, tx), "id column is unique")
}

func TestStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_CountByKind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, leaveTx("w-1", 3)))
	require.NoError(t, store.Append(ctx, leaveTx("w-1", 2)))
	require.NoError(t, store.Append(ctx, paymentTx("w-1")))

	counts, err := store.CountByKind(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[ledger.KindLeave])
	assert.Equal(t, 1, counts[ledger.KindPayment])
}

func TestStore_WorksWithLedger(t *testing.T) {
	// GIVEN: A ledger over the SQLite store
	// WHEN: Entries are recorded and a fresh ledger loads the same store
	// THEN: The replayed history matches

	store := newTestStore(t)
	ctx := context.Background()
	w := workforce.NewWorker("Grace", workforce.RoleManager, workforce.TypeSalaried)

	led := ledger.New(store)
	_, err := led.RecordLeave(ctx, w, 5, true, 20)
	require.NoError(t, err)

	replay := ledger.New(store)
	require.NoError(t, replay.Load(ctx))
	history := replay.HistoryFor(w.ID)
	require.Len(t, history, 1)
	assert.True(t, history[0].Payout)
}
