/*
store.go - Policy persistence: load, update, reload

PURPOSE:
  The Store reads the pay policy document at load time, falls back to the
  compiled-in defaults when the document is absent or malformed (and writes
  the defaults out so subsequent loads succeed), and persists the entire
  policy set on every mutation.

FALLBACK CONTRACT:
  A missing, unreadable, or malformed document is never fatal. Once a key
  *should* exist, however, a miss is a configuration error surfaced to the
  caller - never silently defaulted.

RELOAD CONTRACT:
  Reload re-reads the document, discarding in-memory edits that were not
  persisted. Update persists, so the usual sequence update-then-reload
  round-trips the full set.
*/
package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/workforce"
)

// document is the on-disk shape of the pay policy set. Leave policies are
// compiled-in and not part of the document.
type document struct {
	PayPolicies []PayPolicy `json:"pay_policies"`
}

// Store owns the policy set.
type Store struct {
	mu    sync.RWMutex
	path  string
	pay   map[workforce.WorkerType]*PayPolicy
	leave map[workforce.Role]*LeavePolicy
}

// NewStore creates a store backed by the document at path. Call Load before
// first use.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		pay:   make(map[workforce.WorkerType]*PayPolicy),
		leave: DefaultLeavePolicies(),
	}
}

// Load reads the policy document. Absent or corrupt documents trigger the
// default fallback: the compiled-in set is installed and written out so
// the next Load succeeds. The returned error is only ever a persistence
// failure from writing the fallback; the in-memory set is valid either way.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s.installDefaultsLocked()
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return s.installDefaultsLocked()
	}

	pay := make(map[workforce.WorkerType]*PayPolicy, len(doc.PayPolicies))
	for i := range doc.PayPolicies {
		p := doc.PayPolicies[i]
		if !p.WorkerType.Valid() || p.Validate() != nil {
			return s.installDefaultsLocked()
		}
		pay[p.WorkerType] = &p
	}
	if len(pay) == 0 {
		return s.installDefaultsLocked()
	}

	s.pay = pay
	return nil
}

// Reload re-invokes Load, discarding in-memory edits not yet persisted.
func (s *Store) Reload() error {
	return s.Load()
}

func (s *Store) installDefaultsLocked() error {
	s.pay = DefaultPayPolicies()
	return s.saveLocked()
}

// Save persists the full policy set (not a diff).
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	doc := document{}
	// Stable order keeps the document diffable for the humans editing it.
	for _, t := range []workforce.WorkerType{
		workforce.TypeSalaried, workforce.TypeHourly, workforce.TypeFreelancer,
	} {
		if p, ok := s.pay[t]; ok {
			doc.PayPolicies = append(doc.PayPolicies, *p)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &workforce.PersistenceError{Resource: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &workforce.PersistenceError{Resource: s.path, Err: err}
	}
	return nil
}

// =============================================================================
// LOOKUPS
// =============================================================================

// PayPolicy returns the pay policy for a worker type. Callers must treat a
// miss as a configuration error, not a transient condition.
func (s *Store) PayPolicy(t workforce.WorkerType) (*PayPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pay[t]
	if !ok {
		return nil, fmt.Errorf("pay policy for worker type %q: %w", t, workforce.ErrPolicyNotFound)
	}
	return p, nil
}

// LeavePolicy returns the leave policy for a role.
func (s *Store) LeavePolicy(r workforce.Role) (*LeavePolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.leave[r]
	if !ok {
		return nil, fmt.Errorf("leave policy for role %q: %w", r, workforce.ErrPolicyNotFound)
	}
	return p, nil
}

// =============================================================================
// UPDATE - Named-field patch, full-snapshot persist
// =============================================================================

// Update applies only the named fields to the existing pay policy for the
// worker type, leaving unspecified fields untouched, then persists the full
// policy set. Field names are the JSON names from the policy document.
// Numeric values arrive as float64 (the natural decoding of a JSON patch).
func (s *Store) Update(t workforce.WorkerType, changes map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.pay[t]
	if !ok {
		return fmt.Errorf("pay policy for worker type %q: %w", t, workforce.ErrPolicyNotFound)
	}

	// Patch a copy so a bad field name or a failed validation leaves the
	// live policy untouched.
	patched := *current
	for field, value := range changes {
		if err := applyField(&patched, field, value); err != nil {
			return err
		}
	}
	if err := patched.Validate(); err != nil {
		return err
	}

	s.pay[t] = &patched
	return s.saveLocked()
}

func applyField(p *PayPolicy, field string, value float64) error {
	switch field {
	case "base_rate":
		p.BaseRate = decimal.NewFromFloat(value)
	case "overtime_multiplier":
		p.OvertimeMultiplier = decimal.NewFromFloat(value)
	case "bonus_percentage":
		p.BonusPercentage = decimal.NewFromFloat(value)
	case "weekly_hours_cap":
		p.WeeklyHoursCap = int(value)
	case "holiday_multiplier":
		p.HolidayMultiplier = decimal.NewFromFloat(value)
	case "weekend_multiplier":
		p.WeekendMultiplier = decimal.NewFromFloat(value)
	case "night_shift_bonus":
		p.NightShiftBonus = decimal.NewFromFloat(value)
	case "performance_threshold":
		p.PerformanceThreshold = value
	case "performance_percentage":
		p.PerformancePercentage = decimal.NewFromFloat(value)
	default:
		return &workforce.InvalidFieldError{Key: string(p.WorkerType), Field: field}
	}
	return nil
}

// PayPolicies returns the full pay policy set in a stable order.
func (s *Store) PayPolicies() []PayPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []PayPolicy
	for _, t := range []workforce.WorkerType{
		workforce.TypeSalaried, workforce.TypeHourly, workforce.TypeFreelancer,
	} {
		if p, ok := s.pay[t]; ok {
			out = append(out, *p)
		}
	}
	return out
}
