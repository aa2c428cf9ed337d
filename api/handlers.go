/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll and leave subsystems via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Workers:
    GET    /api/workers                    List workers (optional ?role=)
    POST   /api/workers                    Create worker
    GET    /api/workers/{id}               Get worker
    POST   /api/workers/{id}/pay           Compute and record pay
    POST   /api/workers/{id}/leave         Request time off or a payout
    GET    /api/workers/{id}/transactions  Per-worker history

  Transactions:
    GET    /api/transactions               All (optional ?kind=)
    GET    /api/transactions/recent        Most recent n (?n=, default 10)

  Policies:
    GET    /api/policies/pay               Full pay policy set
    GET    /api/policies/pay/{type}        One pay policy
    PATCH  /api/policies/pay/{type}        Field patch + persist
    POST   /api/policies/reload            Re-read the policy document
    GET    /api/policies/leave/{role}      One leave policy

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Worker, policy, or calculator not found
  - 422: Business rejections (eligibility, caps, balance)
  - 500: Internal errors
  A ledger persistence failure is not an error status: the operation
  completed, so the response carries persisted=false and a warning.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/leave"
	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/policy"
	"github.com/warp/payroll-engine/workforce"
)

const timestampLayout = time.RFC3339Nano

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Workers  *workforce.Repository
	Policies *policy.Store
	Payroll  *payroll.Service
	Leave    *leave.Manager
	Ledger   *ledger.Ledger
}

// NewHandler creates a handler over the assembled subsystems.
func NewHandler(workers *workforce.Repository, policies *policy.Store, pay *payroll.Service, lv *leave.Manager, led *ledger.Ledger) *Handler {
	return &Handler{
		Workers:  workers,
		Policies: policies,
		Payroll:  pay,
		Leave:    lv,
		Ledger:   led,
	}
}

// =============================================================================
// WORKER HANDLERS
// =============================================================================

// ListWorkers returns all workers, optionally filtered by role.
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	var workers []*workforce.Worker
	if role := r.URL.Query().Get("role"); role != "" {
		if !workforce.Role(role).Valid() {
			writeError(w, http.StatusBadRequest, "Unknown role", nil)
			return
		}
		workers = h.Workers.FindByRole(workforce.Role(role))
	} else {
		workers = h.Workers.All()
	}

	dtos := make([]WorkerDTO, len(workers))
	for i, wk := range workers {
		dtos[i] = toWorkerDTO(wk)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorker returns a single worker.
func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	wk, err := h.Workers.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Worker not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerDTO(wk))
}

// CreateWorker creates a new worker with the activity payload matching its
// declared type.
func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	role := workforce.Role(req.Role)
	if !role.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown role", nil)
		return
	}
	workerType := workforce.WorkerType(req.Type)
	if !workerType.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown worker type", nil)
		return
	}
	if req.Rating < 0 || req.Rating > 1 {
		writeError(w, http.StatusBadRequest, "Rating must be in [0, 1]", nil)
		return
	}

	wk := workforce.NewWorker(req.Name, role, workerType)
	wk.Rating = req.Rating

	switch workerType {
	case workforce.TypeSalaried:
		salary := decimal.Zero
		if req.MonthlySalary != nil {
			salary = *req.MonthlySalary
		}
		wk.Salaried = &workforce.SalariedData{MonthlySalary: salary}
	case workforce.TypeHourly:
		rate := decimal.Zero
		if req.HourlyRate != nil {
			rate = *req.HourlyRate
		}
		wk.Hourly = &workforce.HourlyData{
			Rate:         rate,
			HoursWorked:  req.HoursWorked,
			NightHours:   req.NightHours,
			WeekendHours: req.WeekendHours,
			HolidayHours: req.HolidayHours,
		}
	case workforce.TypeFreelancer:
		projects := req.Projects
		if projects == nil {
			projects = make(map[string]decimal.Decimal)
		}
		wk.Freelance = &workforce.FreelanceData{Projects: projects}
	}

	h.Workers.Add(wk)
	writeJSON(w, http.StatusCreated, toWorkerDTO(wk))
}

// =============================================================================
// PAY HANDLER
// =============================================================================

// PayWorker computes the worker's pay and records the payment.
func (h *Handler) PayWorker(w http.ResponseWriter, r *http.Request) {
	wk, err := h.Workers.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Worker not found", err)
		return
	}

	breakdown, tx, err := h.Payroll.Pay(r.Context(), wk)
	if err != nil && !errors.Is(err, workforce.ErrPersistenceFailed) {
		writeDomainError(w, "Pay calculation failed", err)
		return
	}

	resp := PayResponse{
		Breakdown:   breakdown,
		Transaction: toTransactionDTO(tx),
		Persisted:   err == nil,
	}
	if err != nil {
		resp.Warning = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// LEAVE HANDLER
// =============================================================================

// RequestLeave validates and applies a time-off or payout request.
func (h *Handler) RequestLeave(w http.ResponseWriter, r *http.Request) {
	wk, err := h.Workers.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Worker not found", err)
		return
	}

	var req LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Leave.Request(r.Context(), wk, req.Days, req.Payout)
	if err != nil && !errors.Is(err, workforce.ErrPersistenceFailed) {
		writeDomainError(w, "Leave request rejected", err)
		return
	}

	resp := LeaveResponse{
		Days:             result.Days,
		Payout:           result.Payout,
		ResultingBalance: result.ResultingBalance,
		Transaction:      toTransactionDTO(result.Transaction),
		Persisted:        err == nil,
	}
	if err != nil {
		resp.Warning = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// GetWorkerTransactions returns a worker's history in recording order.
func (h *Handler) GetWorkerTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Workers.Get(id); err != nil {
		writeError(w, http.StatusNotFound, "Worker not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(h.Ledger.HistoryFor(id)))
}

// ListTransactions returns all transactions, optionally filtered by kind.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	if kind := r.URL.Query().Get("kind"); kind != "" {
		switch ledger.Kind(kind) {
		case ledger.KindLeave, ledger.KindPayment:
			writeJSON(w, http.StatusOK, toTransactionDTOs(h.Ledger.ByKind(ledger.Kind(kind))))
		default:
			writeError(w, http.StatusBadRequest, "Unknown transaction kind", nil)
		}
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(h.Ledger.All()))
}

// RecentTransactions returns the n most recent transactions, newest first.
func (h *Handler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "n must be a non-negative integer", err)
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(h.Ledger.Recent(n)))
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

// ListPayPolicies returns the full pay policy set.
func (h *Handler) ListPayPolicies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Policies.PayPolicies())
}

// GetPayPolicy returns one pay policy by worker type.
func (h *Handler) GetPayPolicy(w http.ResponseWriter, r *http.Request) {
	t := workforce.WorkerType(chi.URLParam(r, "type"))
	p, err := h.Policies.PayPolicy(t)
	if err != nil {
		writeError(w, http.StatusNotFound, "Pay policy not found", err)
		return
	}
	writeJSON(w, http.StatusOK, *p)
}

// UpdatePayPolicy patches the named fields of one pay policy and persists
// the full set.
func (h *Handler) UpdatePayPolicy(w http.ResponseWriter, r *http.Request) {
	t := workforce.WorkerType(chi.URLParam(r, "type"))

	var changes UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Policies.Update(t, changes); err != nil {
		switch {
		case errors.Is(err, workforce.ErrPolicyNotFound):
			writeError(w, http.StatusNotFound, "Pay policy not found", err)
		case errors.Is(err, workforce.ErrInvalidField):
			writeError(w, http.StatusBadRequest, "Unknown policy field", err)
		case errors.Is(err, workforce.ErrPersistenceFailed):
			writeError(w, http.StatusInternalServerError, "Failed to persist policy set", err)
		default:
			writeError(w, http.StatusBadRequest, "Invalid policy value", err)
		}
		return
	}

	p, err := h.Policies.PayPolicy(t)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read back policy", err)
		return
	}
	writeJSON(w, http.StatusOK, *p)
}

// ReloadPolicies re-reads the policy document, discarding unpersisted edits.
func (h *Handler) ReloadPolicies(w http.ResponseWriter, r *http.Request) {
	if err := h.Policies.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload policies", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Policies.PayPolicies())
}

// GetLeavePolicy returns one leave policy by role.
func (h *Handler) GetLeavePolicy(w http.ResponseWriter, r *http.Request) {
	role := workforce.Role(chi.URLParam(r, "role"))
	p, err := h.Policies.LeavePolicy(role)
	if err != nil {
		writeError(w, http.StatusNotFound, "Leave policy not found", err)
		return
	}
	writeJSON(w, http.StatusOK, *p)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps a domain error to its HTTP status: business
// rejections are 422, missing configuration is 404, anything else is 500.
func writeDomainError(w http.ResponseWriter, msg string, err error) {
	switch {
	case workforce.IsEligibilityError(err):
		writeError(w, http.StatusUnprocessableEntity, msg, err)
	case workforce.IsConfigurationError(err), workforce.IsNotFound(err):
		writeError(w, http.StatusNotFound, msg, err)
	default:
		writeError(w, http.StatusInternalServerError, msg, err)
	}
}
