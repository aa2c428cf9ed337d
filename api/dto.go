/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/policy"
	"github.com/warp/payroll-engine/workforce"
)

// =============================================================================
// WORKER TYPES
// =============================================================================

// WorkerDTO represents a worker in API responses.
type WorkerDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Type      string  `json:"type"`
	LeaveDays int     `json:"leave_days"`
	Rating    float64 `json:"rating"`
}

// CreateWorkerRequest is the request to create a worker. Exactly one
// activity payload must match the declared type.
type CreateWorkerRequest struct {
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Type   string  `json:"type"`
	Rating float64 `json:"rating"`

	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`

	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	HoursWorked  int              `json:"hours_worked,omitempty"`
	NightHours   int              `json:"night_hours,omitempty"`
	WeekendHours int              `json:"weekend_hours,omitempty"`
	HolidayHours int              `json:"holiday_hours,omitempty"`

	Projects map[string]decimal.Decimal `json:"projects,omitempty"`
}

// =============================================================================
// PAY
// =============================================================================

// PayResponse returns the breakdown and its recorded transaction.
type PayResponse struct {
	Breakdown   payroll.Breakdown `json:"breakdown"`
	Transaction TransactionDTO    `json:"transaction"`
	Persisted   bool              `json:"persisted"`
	Warning     string            `json:"warning,omitempty"`
}

// =============================================================================
// LEAVE
// =============================================================================

// LeaveRequest is the request body for leave and payouts.
type LeaveRequest struct {
	Days   int  `json:"days"`
	Payout bool `json:"payout"`
}

// LeaveResponse reports a granted request.
type LeaveResponse struct {
	Days             int            `json:"days"`
	Payout           bool           `json:"payout"`
	ResultingBalance int            `json:"resulting_balance"`
	Transaction      TransactionDTO `json:"transaction"`
	Persisted        bool           `json:"persisted"`
	Warning          string         `json:"warning,omitempty"`
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// TransactionDTO represents a ledger entry in API responses.
type TransactionDTO struct {
	ID         string `json:"id"`
	RecordedAt string `json:"recorded_at"`
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	Role       string `json:"role"`
	Kind       string `json:"kind"`

	Days             int  `json:"days,omitempty"`
	Payout           bool `json:"payout,omitempty"`
	ResultingBalance int  `json:"resulting_balance,omitempty"`

	Total        *decimal.Decimal `json:"total,omitempty"`
	Base         *decimal.Decimal `json:"base,omitempty"`
	Bonus        *decimal.Decimal `json:"bonus,omitempty"`
	Overtime     *decimal.Decimal `json:"overtime,omitempty"`
	SpecialHours *decimal.Decimal `json:"special_hours,omitempty"`
}

// =============================================================================
// POLICIES
// =============================================================================

// PayPolicyDTO wraps policy.PayPolicy; the domain type already carries the
// JSON contract.
type PayPolicyDTO = policy.PayPolicy

// LeavePolicyDTO wraps policy.LeavePolicy.
type LeavePolicyDTO = policy.LeavePolicy

// UpdatePolicyRequest is a field patch for a pay policy. Keys are the JSON
// field names from the policy document.
type UpdatePolicyRequest map[string]float64

// =============================================================================
// MAPPERS
// =============================================================================

func toWorkerDTO(w *workforce.Worker) WorkerDTO {
	return WorkerDTO{
		ID:        w.ID,
		Name:      w.Name,
		Role:      string(w.Role),
		Type:      string(w.Type),
		LeaveDays: w.LeaveDays,
		Rating:    w.Rating,
	}
}

func toTransactionDTO(tx ledger.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:         tx.ID,
		RecordedAt: tx.RecordedAt.Format(timestampLayout),
		WorkerID:   tx.WorkerID,
		WorkerName: tx.WorkerName,
		Role:       string(tx.Role),
		Kind:       string(tx.Kind),
	}
	switch tx.Kind {
	case ledger.KindLeave:
		dto.Days = tx.Days
		dto.Payout = tx.Payout
		dto.ResultingBalance = tx.ResultingBalance
	case ledger.KindPayment:
		total, base, bonus, overtime, special := tx.Total, tx.Base, tx.Bonus, tx.Overtime, tx.SpecialHours
		dto.Total = &total
		dto.Base = &base
		dto.Bonus = &bonus
		dto.Overtime = &overtime
		dto.SpecialHours = &special
	}
	return dto
}

func toTransactionDTOs(txs []ledger.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	return dtos
}
