package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/leave"
	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/policy"
	"github.com/warp/payroll-engine/store/memory"
	"github.com/warp/payroll-engine/workforce"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	policies := policy.NewStore(filepath.Join(t.TempDir(), "pay_policies.json"))
	require.NoError(t, policies.Load())

	led := ledger.New(memory.New())
	workers := workforce.NewRepository()
	handler := api.NewHandler(
		workers,
		policies,
		payroll.NewService(payroll.NewRegistry(policies), led),
		leave.NewManager(policies, led),
		led,
	)
	return api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: []string{"*"},
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func createWorker(t *testing.T, router http.Handler, body map[string]any) api.WorkerDTO {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/workers", body)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	return decode[api.WorkerDTO](t, rec)
}

// =============================================================================
// WORKERS
// =============================================================================

func TestAPI_CreateAndListWorkers(t *testing.T) {
	router := newTestRouter(t)

	w := createWorker(t, router, map[string]any{
		"name": "Ada", "role": "manager", "type": "salaried",
		"monthly_salary": "5000",
	})
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, workforce.DefaultLeaveDays, w.LeaveDays)

	createWorker(t, router, map[string]any{
		"name": "Ivy", "role": "intern", "type": "hourly", "hourly_rate": "20",
	})

	rec := doJSON(t, router, http.MethodGet, "/api/workers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.WorkerDTO](t, rec), 2)

	rec = doJSON(t, router, http.MethodGet, "/api/workers?role=intern", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	interns := decode[[]api.WorkerDTO](t, rec)
	require.Len(t, interns, 1)
	assert.Equal(t, "Ivy", interns[0].Name)
}

func TestAPI_CreateWorkerValidation(t *testing.T) {
	router := newTestRouter(t)

	for name, body := range map[string]map[string]any{
		"missing name": {"role": "manager", "type": "salaried"},
		"bad role":     {"name": "X", "role": "boss", "type": "salaried"},
		"bad type":     {"name": "X", "role": "manager", "type": "contractor"},
		"bad rating":   {"name": "X", "role": "manager", "type": "salaried", "rating": 1.5},
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/workers", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestAPI_GetWorkerNotFound(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/workers/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// PAY
// =============================================================================

func TestAPI_PaySalariedManager(t *testing.T) {
	// GIVEN: A salaried manager earning 5000
	// WHEN: POST /pay
	// THEN: 200 with the 5500 breakdown, persisted, and a ledger entry

	router := newTestRouter(t)
	w := createWorker(t, router, map[string]any{
		"name": "Ada", "role": "manager", "type": "salaried",
		"monthly_salary": "5000",
	})

	rec := doJSON(t, router, http.MethodPost, "/api/workers/"+w.ID+"/pay", nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	resp := decode[api.PayResponse](t, rec)
	assert.True(t, resp.Breakdown.Total.Equal(decimal.NewFromInt(5500)),
		"total, got %s", resp.Breakdown.Total)
	assert.True(t, resp.Persisted)
	assert.Equal(t, "payment", resp.Transaction.Kind)

	rec = doJSON(t, router, http.MethodGet, "/api/workers/"+w.ID+"/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.TransactionDTO](t, rec), 1)
}

func TestAPI_PayHourlyWithOvertime(t *testing.T) {
	router := newTestRouter(t)
	w := createWorker(t, router, map[string]any{
		"name": "Hank", "role": "manager", "type": "hourly",
		"hourly_rate": "50", "hours_worked": 180,
	})

	rec := doJSON(t, router, http.MethodPost, "/api/workers/"+w.ID+"/pay", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[api.PayResponse](t, rec)
	assert.True(t, resp.Breakdown.Total.Equal(decimal.NewFromInt(12600)),
		"total, got %s", resp.Breakdown.Total)
}

// =============================================================================
// LEAVE
// =============================================================================

func TestAPI_LeavePayoutPath(t *testing.T) {
	router := newTestRouter(t)
	w := createWorker(t, router, map[string]any{
		"name": "Grace", "role": "manager", "type": "salaried",
		"monthly_salary": "5000",
	})

	rec := doJSON(t, router, http.MethodPost, "/api/workers/"+w.ID+"/leave",
		api.LeaveRequest{Days: 10, Payout: true})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	resp := decode[api.LeaveResponse](t, rec)
	assert.Equal(t, 15, resp.ResultingBalance)
	assert.True(t, resp.Payout)
	assert.True(t, resp.Persisted)
}

func TestAPI_LeaveRejectionsAre422(t *testing.T) {
	router := newTestRouter(t)

	freelancer := createWorker(t, router, map[string]any{
		"name": "Fred", "role": "manager", "type": "freelancer",
		"projects": map[string]string{"alpha": "1000"},
	})
	intern := createWorker(t, router, map[string]any{
		"name": "Ivy", "role": "intern", "type": "salaried",
		"monthly_salary": "1000",
	})
	manager := createWorker(t, router, map[string]any{
		"name": "Grace", "role": "manager", "type": "salaried",
		"monthly_salary": "5000",
	})

	// Drain the manager's balance to 5 so the balance case trips on
	// balance, not on a cap.
	for i := 0; i < 2; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/workers/"+manager.ID+"/leave",
			api.LeaveRequest{Days: 10})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	cases := map[string]struct {
		id  string
		req api.LeaveRequest
	}{
		"freelancer has no benefit": {freelancer.ID, api.LeaveRequest{Days: 5}},
		"intern not eligible":       {intern.ID, api.LeaveRequest{Days: 1}},
		"over per-request cap":      {manager.ID, api.LeaveRequest{Days: 11}},
		"over payout cap":           {manager.ID, api.LeaveRequest{Days: 11, Payout: true}},
		"over balance":              {manager.ID, api.LeaveRequest{Days: 10, Payout: true}},
	}
	for name, tc := range cases {
		rec := doJSON(t, router, http.MethodPost, "/api/workers/"+tc.id+"/leave", tc.req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code,
			"%s: body %s", name, rec.Body.String())
	}
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestAPI_RecentAndByKind(t *testing.T) {
	router := newTestRouter(t)
	w := createWorker(t, router, map[string]any{
		"name": "Grace", "role": "manager", "type": "salaried",
		"monthly_salary": "5000",
	})

	doJSON(t, router, http.MethodPost, "/api/workers/"+w.ID+"/pay", nil)
	doJSON(t, router, http.MethodPost, "/api/workers/"+w.ID+"/leave", api.LeaveRequest{Days: 5})

	rec := doJSON(t, router, http.MethodGet, "/api/transactions/recent?n=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	recent := decode[[]api.TransactionDTO](t, rec)
	require.Len(t, recent, 1)
	assert.Equal(t, "leave", recent[0].Kind, "newest first")

	rec = doJSON(t, router, http.MethodGet, "/api/transactions?kind=payment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.TransactionDTO](t, rec), 1)

	rec = doJSON(t, router, http.MethodGet, "/api/transactions?kind=refund", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// POLICIES
// =============================================================================

func TestAPI_PolicyGetPatchReload(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/policies/pay/hourly", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[policy.PayPolicy](t, rec)
	assert.True(t, p.BaseRate.Equal(decimal.NewFromInt(50)))

	rec = doJSON(t, router, http.MethodPatch, "/api/policies/pay/hourly",
		map[string]float64{"base_rate": 75})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	p = decode[policy.PayPolicy](t, rec)
	assert.True(t, p.BaseRate.Equal(decimal.NewFromInt(75)))

	// Reload re-reads the persisted snapshot, the patch survives.
	rec = doJSON(t, router, http.MethodPost, "/api/policies/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/policies/pay/hourly", nil)
	p = decode[policy.PayPolicy](t, rec)
	assert.True(t, p.BaseRate.Equal(decimal.NewFromInt(75)))
}

func TestAPI_PolicyErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/policies/pay/contractor", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/api/policies/pay/hourly",
		map[string]float64{"base_rat": 75})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/policies/leave/director", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_LeavePolicyByRole(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/policies/leave/manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[policy.LeavePolicy](t, rec)
	assert.Equal(t, 25, p.BaseDays)
	assert.True(t, p.PayoutAllowed)
}
