/*
Package leave grants time off and leave payouts.

PURPOSE:
  The Manager is the single writer of leave balances. Every request walks
  the same gauntlet - worker-type gate, role gate, policy caps, balance
  check - and only a fully validated request mutates the balance and lands
  in the ledger. A rejected request leaves no trace: no deduction, no entry.

RULE ORDER (fixed):
  1. Freelancers have no leave benefit at all
  2. Interns are never eligible
  3. Payout requests: policy permission, payout day cap, balance
  4. Time-off requests: per-request cap, balance
  5. Deduct, then record

SEE ALSO:
  - policy package: the per-role LeavePolicy consulted here
  - ledger package: where granted requests are recorded
*/
package leave

import (
	"context"
	"fmt"

	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/policy"
	"github.com/warp/payroll-engine/workforce"
)

// PolicySource provides the leave policy for a role. Satisfied by
// *policy.Store.
type PolicySource interface {
	LeavePolicy(r workforce.Role) (*policy.LeavePolicy, error)
}

// Manager validates and applies leave requests.
type Manager struct {
	policies PolicySource
	ledger   *ledger.Ledger
}

// NewManager creates the leave manager.
func NewManager(policies PolicySource, led *ledger.Ledger) *Manager {
	return &Manager{policies: policies, ledger: led}
}

// Result reports a granted request.
type Result struct {
	Days             int
	Payout           bool
	ResultingBalance int
	Transaction      ledger.Transaction
}

// Request validates a leave request, deducts the balance, and records the
// grant. On any rejection the balance is untouched and nothing is recorded.
// A ledger persistence failure is returned with the Result still populated:
// the deduction and the in-memory entry stand.
func (m *Manager) Request(ctx context.Context, w *workforce.Worker, days int, payout bool) (Result, error) {
	// Worker-type gate before the role gate: a freelancer intern is a
	// freelancer first.
	if w.Type == workforce.TypeFreelancer {
		return Result{}, fmt.Errorf("worker %s: %w", w.ID, workforce.ErrNoLeaveBenefit)
	}
	if w.Role == workforce.RoleIntern {
		return Result{}, fmt.Errorf("worker %s: %w", w.ID, workforce.ErrNotEligible)
	}

	pol, err := m.policies.LeavePolicy(w.Role)
	if err != nil {
		return Result{}, err
	}

	if days <= 0 {
		return Result{}, &workforce.LimitExceededError{
			WorkerID:  w.ID,
			Limit:     1,
			Requested: days,
			Kind:      "minimum_days",
		}
	}

	if payout {
		if !pol.PayoutAllowed {
			return Result{}, fmt.Errorf("role %q: %w", w.Role, workforce.ErrPayoutNotAllowed)
		}
		if days > pol.PayoutDayCap {
			return Result{}, &workforce.LimitExceededError{
				WorkerID:  w.ID,
				Limit:     pol.PayoutDayCap,
				Requested: days,
				Kind:      "payout_cap",
			}
		}
	} else {
		if days > pol.MaxDaysPerRequest {
			return Result{}, &workforce.LimitExceededError{
				WorkerID:  w.ID,
				Limit:     pol.MaxDaysPerRequest,
				Requested: days,
				Kind:      "per_request_max",
			}
		}
	}

	if err := w.DeductLeave(days); err != nil {
		return Result{}, err
	}

	tx, err := m.ledger.RecordLeave(ctx, w, days, payout, w.LeaveDays)
	return Result{
		Days:             days,
		Payout:           payout,
		ResultingBalance: w.LeaveDays,
		Transaction:      tx,
	}, err
}
