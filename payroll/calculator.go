/*
Package payroll computes worker pay.

PURPOSE:
  One Calculator per worker type, dispatched by the Registry on the
  worker-type tag. Calculators are pure: worker + policy in, itemized
  Breakdown out, no side effects. The Service wraps the registry and the
  ledger so every computed payment leaves an audit entry.

CALCULATION MODEL:
  - Salaried: monthly salary, role bonus, performance bonus, policy bonus
  - Hourly: capped regular hours, overtime at a multiplier, shift
    differentials (night/weekend/holiday), volume bonus
  - Freelancer: sum of project payments, performance bonus, policy bonus

PRECISION:
  All amounts are decimal.Decimal. Percentages use percent units
  (15 means +15% of base).

SEE ALSO:
  - registry.go: type → calculator dispatch
  - service.go: compute-and-record entry point
  - policy package: the PayPolicy each calculator consumes
*/
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/policy"
	"github.com/warp/payroll-engine/workforce"
)

// =============================================================================
// BREAKDOWN - Itemized pay result
// =============================================================================

// Breakdown is the itemized result of one pay calculation. Total is always
// the sum of the component fields.
type Breakdown struct {
	Total        decimal.Decimal `json:"total"`
	Base         decimal.Decimal `json:"base"`
	Bonus        decimal.Decimal `json:"bonus"`
	Overtime     decimal.Decimal `json:"overtime"`
	SpecialHours decimal.Decimal `json:"special_hours"`
}

func (b Breakdown) sum() Breakdown {
	b.Total = b.Base.Add(b.Bonus).Add(b.Overtime).Add(b.SpecialHours)
	return b
}

// =============================================================================
// CALCULATOR - The single pay capability
// =============================================================================

// Calculator computes pay for one worker type. Implementations are
// stateless and must not mutate the worker or the policy.
type Calculator interface {
	Calculate(w *workforce.Worker, p *policy.PayPolicy) (Breakdown, error)
}

// percentOf returns pct percent of base (pct in percent units).
func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(decimal.NewFromInt(100))
}

// =============================================================================
// SALARIED
// =============================================================================

// salariedRoleBonusPct is the fixed role bonus applied to every salaried
// worker except interns, in percent units.
var salariedRoleBonusPct = decimal.NewFromInt(10)

// SalariedCalculator pays a fixed monthly salary plus bonuses.
type SalariedCalculator struct{}

var _ Calculator = (*SalariedCalculator)(nil)

func (c *SalariedCalculator) Calculate(w *workforce.Worker, p *policy.PayPolicy) (Breakdown, error) {
	if w.Salaried == nil {
		return Breakdown{}, fmt.Errorf("worker %s: missing salaried activity data", w.ID)
	}
	base := w.Salaried.MonthlySalary

	bonus := decimal.Zero
	if w.Role != workforce.RoleIntern {
		bonus = bonus.Add(percentOf(base, salariedRoleBonusPct))
	}
	if w.Rating >= p.PerformanceThreshold {
		bonus = bonus.Add(percentOf(base, p.PerformancePercentage))
	}
	bonus = bonus.Add(percentOf(base, p.BonusPercentage))

	return Breakdown{Base: base, Bonus: bonus}.sum(), nil
}

// =============================================================================
// HOURLY
// =============================================================================

// Volume bonus constants for hourly workers: a flat amount once the total
// hours cross the threshold, interns excluded.
var (
	hourlyVolumeBonusThreshold = 160
	hourlyVolumeBonusAmount    = decimal.NewFromInt(100)
)

// HourlyCalculator pays by the hour with an overtime split at the weekly
// cap and separate differentials for night, weekend, and holiday hours.
type HourlyCalculator struct{}

var _ Calculator = (*HourlyCalculator)(nil)

func (c *HourlyCalculator) Calculate(w *workforce.Worker, p *policy.PayPolicy) (Breakdown, error) {
	if w.Hourly == nil {
		return Breakdown{}, fmt.Errorf("worker %s: missing hourly activity data", w.ID)
	}
	data := w.Hourly

	regular := data.HoursWorked
	overtime := 0
	if regular > p.WeeklyHoursCap {
		overtime = regular - p.WeeklyHoursCap
		regular = p.WeeklyHoursCap
	}

	base := data.Rate.Mul(decimal.NewFromInt(int64(regular)))
	overtimePay := data.Rate.
		Mul(decimal.NewFromInt(int64(overtime))).
		Mul(p.OvertimeMultiplier)

	bonus := decimal.Zero
	if data.HoursWorked > hourlyVolumeBonusThreshold && w.Role != workforce.RoleIntern {
		bonus = bonus.Add(hourlyVolumeBonusAmount)
	}

	special := data.Rate.
		Mul(decimal.NewFromInt(int64(data.WeekendHours))).
		Mul(p.WeekendMultiplier)
	special = special.Add(data.Rate.
		Mul(decimal.NewFromInt(int64(data.HolidayHours))).
		Mul(p.HolidayMultiplier))
	special = special.Add(p.NightShiftBonus.
		Mul(decimal.NewFromInt(int64(data.NightHours))))

	return Breakdown{
		Base:         base,
		Bonus:        bonus,
		Overtime:     overtimePay,
		SpecialHours: special,
	}.sum(), nil
}

// =============================================================================
// FREELANCER
// =============================================================================

// FreelancerCalculator pays the sum of itemized project payments plus
// bonuses. Freelancers with no projects earn a valid zero.
type FreelancerCalculator struct{}

var _ Calculator = (*FreelancerCalculator)(nil)

func (c *FreelancerCalculator) Calculate(w *workforce.Worker, p *policy.PayPolicy) (Breakdown, error) {
	if w.Freelance == nil {
		return Breakdown{}, fmt.Errorf("worker %s: missing freelance activity data", w.ID)
	}
	base := w.Freelance.TotalProjectValue()

	bonus := decimal.Zero
	if w.Rating >= p.PerformanceThreshold {
		bonus = bonus.Add(percentOf(base, p.PerformancePercentage))
	}
	bonus = bonus.Add(percentOf(base, p.BonusPercentage))

	return Breakdown{Base: base, Bonus: bonus}.sum(), nil
}
