/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All domain error types in one place for consistency and discoverability.
  Components wrap these sentinels with structured context where callers
  need the numbers (available vs requested, the offending field name).

ERROR CATEGORIES:
  1. Configuration errors - missing policy keys, invalid field names,
     unregistered worker types. Surfaced to the caller, never defaulted.
  2. Eligibility errors - expected business rejections (intern leave,
     payout not permitted, request over the cap). Non-fatal, per-request.
  3. State errors - insufficient balance. Treated like eligibility.
  4. Persistence errors - resource unreadable/unwritable. Recovered
     locally by the policy store, reported-but-non-fatal by the ledger.

USAGE:
  if errors.Is(err, workforce.ErrInsufficientBalance) {
      // balance untouched, report and continue
  }

No error in this package terminates the hosting process; the calling
layer decides per operation.
*/
package workforce

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrPolicyNotFound is returned when no policy is registered for a
	// worker type or role. A configuration error, not a transient condition.
	ErrPolicyNotFound = errors.New("policy not found")

	// ErrInvalidField is returned when a policy update names a field that
	// does not exist on the policy.
	ErrInvalidField = errors.New("invalid policy field")

	// ErrUnregisteredType is returned when pay is requested for a worker
	// type no calculator was registered for.
	ErrUnregisteredType = errors.New("no calculator registered for worker type")

	// ErrWorkerNotFound is returned when a referenced worker doesn't exist.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrNotEligible is returned when a role can never take the requested
	// action (interns requesting any leave).
	ErrNotEligible = errors.New("role not eligible for leave")

	// ErrNoLeaveBenefit is returned for freelancer leave requests:
	// freelancers have no leave benefit at all.
	ErrNoLeaveBenefit = errors.New("worker type has no leave benefit")

	// ErrPayoutNotAllowed is returned when the role's leave policy does not
	// permit cashing out leave days.
	ErrPayoutNotAllowed = errors.New("payout not permitted for role")

	// ErrLimitExceeded is returned when a request exceeds a policy cap.
	ErrLimitExceeded = errors.New("request exceeds policy limit")

	// ErrInsufficientBalance is returned when a deduction would push the
	// leave balance negative. The balance is left unchanged.
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	// ErrPersistenceFailed is returned when a durable resource could not be
	// read or written. The in-memory state remains authoritative.
	ErrPersistenceFailed = errors.New("persistence failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError provides details about a balance shortage.
type InsufficientBalanceError struct {
	WorkerID  string
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: available %d, requested %d",
		e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// LimitExceededError provides details about a request over a policy cap.
type LimitExceededError struct {
	WorkerID  string
	Limit     int
	Requested int
	Kind      string // "payout_cap" or "per_request_max"
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s exceeded: limit %d, requested %d",
		e.Kind, e.Limit, e.Requested)
}

func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}

// InvalidFieldError names the field a policy update tried to change.
type InvalidFieldError struct {
	Key   string
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("policy %q has no field %q", e.Key, e.Field)
}

func (e *InvalidFieldError) Unwrap() error {
	return ErrInvalidField
}

// PersistenceError wraps the underlying I/O failure with the resource it
// concerned.
type PersistenceError struct {
	Resource string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting %s: %v", e.Resource, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistenceFailed
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsEligibilityError returns true for the expected, user-facing business
// rejections (including the insufficient-balance state error, which gets
// the same per-request treatment).
func IsEligibilityError(err error) bool {
	return errors.Is(err, ErrNotEligible) ||
		errors.Is(err, ErrNoLeaveBenefit) ||
		errors.Is(err, ErrPayoutNotAllowed) ||
		errors.Is(err, ErrLimitExceeded) ||
		errors.Is(err, ErrInsufficientBalance)
}

// IsConfigurationError returns true if the error indicates a missing or
// invalid configuration key rather than a business condition.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrPolicyNotFound) ||
		errors.Is(err, ErrInvalidField) ||
		errors.Is(err, ErrUnregisteredType)
}

// IsNotFound returns true if the error indicates a missing entity or key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPolicyNotFound) ||
		errors.Is(err, ErrWorkerNotFound)
}
