/*
Package policy owns the versioned pay and leave rule set.

PURPOSE:
  One PayPolicy per worker type, one LeavePolicy per role. Pay policies are
  externally editable: they live in a JSON document that is read fully at
  load time and rewritten fully on each mutation, so the on-disk resource
  is always a complete, self-consistent snapshot. Leave policies are
  compiled-in (a documented extension point).

OWNERSHIP:
  The Store exclusively owns the policy instances. Calculators and the
  leave manager borrow references for the duration of one operation and
  never retain or mutate them.

JSON SCHEMA:
  {
    "pay_policies": [
      {
        "worker_type": "hourly",
        "base_rate": "50",
        "overtime_multiplier": "1.5",
        "bonus_percentage": "0",
        "weekly_hours_cap": 40,
        "holiday_multiplier": "2",
        "weekend_multiplier": "1.5",
        "night_shift_bonus": "10",
        "performance_threshold": 0.9,
        "performance_percentage": "5"
      }
    ]
  }

SEE ALSO:
  - store.go: Load/Update/Reload and persistence
  - payroll package: consumers of PayPolicy
  - leave package: consumer of LeavePolicy
*/
package policy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/workforce"
)

// =============================================================================
// PAY POLICY - One per worker type
// =============================================================================

// PayPolicy holds the pay rules for one worker type. Percentages use
// percent units (15 means +15%). All multipliers and percentages are
// non-negative; WeeklyHoursCap is a positive integer for hourly policies.
type PayPolicy struct {
	WorkerType            workforce.WorkerType `json:"worker_type"`
	BaseRate              decimal.Decimal      `json:"base_rate"`
	OvertimeMultiplier    decimal.Decimal      `json:"overtime_multiplier"`
	BonusPercentage       decimal.Decimal      `json:"bonus_percentage"`
	WeeklyHoursCap        int                  `json:"weekly_hours_cap"`
	HolidayMultiplier     decimal.Decimal      `json:"holiday_multiplier"`
	WeekendMultiplier     decimal.Decimal      `json:"weekend_multiplier"`
	NightShiftBonus       decimal.Decimal      `json:"night_shift_bonus"`
	PerformanceThreshold  float64              `json:"performance_threshold"`
	PerformancePercentage decimal.Decimal      `json:"performance_percentage"`
}

// Validate checks the policy invariants.
func (p *PayPolicy) Validate() error {
	for name, d := range map[string]decimal.Decimal{
		"base_rate":              p.BaseRate,
		"overtime_multiplier":    p.OvertimeMultiplier,
		"bonus_percentage":       p.BonusPercentage,
		"holiday_multiplier":     p.HolidayMultiplier,
		"weekend_multiplier":     p.WeekendMultiplier,
		"night_shift_bonus":      p.NightShiftBonus,
		"performance_percentage": p.PerformancePercentage,
	} {
		if d.IsNegative() {
			return fmt.Errorf("pay policy %q: %s must be non-negative", p.WorkerType, name)
		}
	}
	if p.WorkerType == workforce.TypeHourly && p.WeeklyHoursCap <= 0 {
		return fmt.Errorf("pay policy %q: weekly_hours_cap must be positive", p.WorkerType)
	}
	return nil
}

// =============================================================================
// LEAVE POLICY - One per role, compiled-in
// =============================================================================

// LeavePolicy holds the leave rules for one role. Per-request cap and
// annual allotment are independent fields.
type LeavePolicy struct {
	Role               workforce.Role `json:"role"`
	BaseDays           int            `json:"base_days"`
	MaxDaysPerRequest  int            `json:"max_days_per_request"`
	PayoutAllowed      bool           `json:"payout_allowed"`
	PayoutDayCap       int            `json:"payout_day_cap"`
	CarryOverCap       int            `json:"carry_over_cap"`
	SeniorityBonusDays int            `json:"seniority_bonus_days"`
}

// =============================================================================
// COMPILED-IN DEFAULTS
// =============================================================================

// DefaultPayPolicies returns the compiled-in pay policy set, used when the
// policy document is absent or unreadable.
func DefaultPayPolicies() map[workforce.WorkerType]*PayPolicy {
	return map[workforce.WorkerType]*PayPolicy{
		workforce.TypeSalaried: {
			WorkerType:            workforce.TypeSalaried,
			BaseRate:              decimal.NewFromInt(5000),
			OvertimeMultiplier:    decimal.NewFromFloat(1.5),
			BonusPercentage:       decimal.Zero,
			WeeklyHoursCap:        40,
			HolidayMultiplier:     decimal.NewFromInt(2),
			WeekendMultiplier:     decimal.NewFromFloat(1.5),
			NightShiftBonus:       decimal.NewFromInt(10),
			PerformanceThreshold:  0.9,
			PerformancePercentage: decimal.NewFromInt(5),
		},
		workforce.TypeHourly: {
			WorkerType:            workforce.TypeHourly,
			BaseRate:              decimal.NewFromInt(50),
			OvertimeMultiplier:    decimal.NewFromFloat(1.5),
			BonusPercentage:       decimal.Zero,
			WeeklyHoursCap:        40,
			HolidayMultiplier:     decimal.NewFromInt(2),
			WeekendMultiplier:     decimal.NewFromFloat(1.5),
			NightShiftBonus:       decimal.NewFromInt(10),
			PerformanceThreshold:  0.9,
			PerformancePercentage: decimal.NewFromInt(5),
		},
		workforce.TypeFreelancer: {
			WorkerType:            workforce.TypeFreelancer,
			BaseRate:              decimal.Zero,
			OvertimeMultiplier:    decimal.Zero,
			BonusPercentage:       decimal.NewFromInt(15),
			WeeklyHoursCap:        40,
			HolidayMultiplier:     decimal.Zero,
			WeekendMultiplier:     decimal.Zero,
			NightShiftBonus:       decimal.Zero,
			PerformanceThreshold:  0.9,
			PerformancePercentage: decimal.NewFromInt(10),
		},
	}
}

// DefaultLeavePolicies returns the compiled-in leave policy set.
//
// Interns can never accrue or cash out leave: base/max are zero and payout
// is disallowed. The vice-president per-request cap is set above the
// manager cap; the annual allotment is a separate field.
func DefaultLeavePolicies() map[workforce.Role]*LeavePolicy {
	return map[workforce.Role]*LeavePolicy{
		workforce.RoleIntern: {
			Role: workforce.RoleIntern,
		},
		workforce.RoleManager: {
			Role:               workforce.RoleManager,
			BaseDays:           25,
			MaxDaysPerRequest:  10,
			PayoutAllowed:      true,
			PayoutDayCap:       10,
			CarryOverCap:       5,
			SeniorityBonusDays: 2,
		},
		workforce.RoleVicePresident: {
			Role:               workforce.RoleVicePresident,
			BaseDays:           30,
			MaxDaysPerRequest:  15,
			PayoutAllowed:      true,
			PayoutDayCap:       10,
			CarryOverCap:       10,
			SeniorityBonusDays: 5,
		},
	}
}
