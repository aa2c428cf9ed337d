/*
Package workforce provides the core domain types for the payroll engine.

PURPOSE:
  This package contains the worker model shared by every other component:
  roles, worker types, per-type activity data, and the central error
  taxonomy. Whether computing pay, granting leave, or recording a ledger
  entry, the same Worker value flows through.

KEY CONCEPTS IN THIS FILE (types.go):
  - Role: organizational level governing leave policy
  - WorkerType: classification governing which pay formula applies
  - Worker: a tagged variant over {Salaried, Hourly, Freelance} payloads

DESIGN PRINCIPLES:
  1. Tagged variants: Worker.Type selects exactly one activity payload,
     so dispatch is a map lookup, never a type switch on concrete types
  2. Precision: money uses decimal.Decimal to avoid floating-point errors
  3. Mutability is narrow: LeaveDays is the only field components mutate,
     and only the leave manager does so

SEE ALSO:
  - errors.go: Centralized error types
  - repository.go: In-memory worker directory
*/
package workforce

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// ROLE - Organizational level, governs leave policy
// =============================================================================

type Role string

const (
	RoleIntern        Role = "intern"
	RoleManager       Role = "manager"
	RoleVicePresident Role = "vice_president"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleIntern, RoleManager, RoleVicePresident:
		return true
	}
	return false
}

// =============================================================================
// WORKER TYPE - Pay classification, governs which calculator applies
// =============================================================================

type WorkerType string

const (
	TypeSalaried   WorkerType = "salaried"
	TypeHourly     WorkerType = "hourly"
	TypeFreelancer WorkerType = "freelancer"
)

// Valid reports whether t is one of the known worker types.
func (t WorkerType) Valid() bool {
	switch t {
	case TypeSalaried, TypeHourly, TypeFreelancer:
		return true
	}
	return false
}

// =============================================================================
// ACTIVITY DATA - Per-type raw pay inputs
// =============================================================================

// SalariedData holds the activity data for a salaried worker.
type SalariedData struct {
	MonthlySalary decimal.Decimal
}

// HourlyData holds the activity data for an hourly worker. Night, weekend
// and holiday hours are tracked separately from the regular count because
// they attract their own differentials.
type HourlyData struct {
	Rate         decimal.Decimal
	HoursWorked  int
	NightHours   int
	WeekendHours int
	HolidayHours int
}

// FreelanceData holds the activity data for a freelancer: itemized project
// payments keyed by project name. Names are unique within a worker;
// insertion order is irrelevant.
type FreelanceData struct {
	Projects map[string]decimal.Decimal
}

// TotalProjectValue returns the sum of all project amounts.
func (f FreelanceData) TotalProjectValue() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range f.Projects {
		total = total.Add(amount)
	}
	return total
}

// =============================================================================
// WORKER - Tagged variant over the activity payloads
// =============================================================================

// DefaultLeaveDays is the leave balance granted to every new worker.
const DefaultLeaveDays = 25

// Worker is the central domain entity. Exactly one of the activity payloads
// is populated, matching Type. LeaveDays never goes negative; deductions
// are check-then-apply via DeductLeave.
type Worker struct {
	ID        string
	Name      string
	Role      Role
	Type      WorkerType
	LeaveDays int
	Rating    float64 // performance rating in [0.0, 1.0]

	Salaried  *SalariedData
	Hourly    *HourlyData
	Freelance *FreelanceData
}

// NewWorker creates a worker with a generated ID and the default leave
// balance. The caller attaches the activity payload for the worker's type.
func NewWorker(name string, role Role, workerType WorkerType) *Worker {
	return &Worker{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      role,
		Type:      workerType,
		LeaveDays: DefaultLeaveDays,
	}
}

// DeductLeave atomically removes days from the balance. The balance is
// left untouched and an InsufficientBalanceError is returned when the
// deduction would make it negative.
func (w *Worker) DeductLeave(days int) error {
	if days > w.LeaveDays {
		return &InsufficientBalanceError{
			WorkerID:  w.ID,
			Available: w.LeaveDays,
			Requested: days,
		}
	}
	w.LeaveDays -= days
	return nil
}
