// registry.go - Worker-type → calculator dispatch.
//
// Dispatch is a map lookup keyed on the worker-type tag. An unknown tag is
// a configuration error (ErrUnregisteredType), never a silent zero. The
// registry pulls the matching pay policy for each calculation so policy
// edits take effect on the next calculation without re-registration.
package payroll

import (
	"fmt"

	"github.com/warp/payroll-engine/policy"
	"github.com/warp/payroll-engine/workforce"
)

// PolicySource provides the pay policy for a worker type. Satisfied by
// *policy.Store.
type PolicySource interface {
	PayPolicy(t workforce.WorkerType) (*policy.PayPolicy, error)
}

// Registry dispatches pay calculations to the calculator registered for
// the worker's type.
type Registry struct {
	policies    PolicySource
	calculators map[workforce.WorkerType]Calculator
}

// NewRegistry creates a registry with the three standard calculators
// pre-registered.
func NewRegistry(policies PolicySource) *Registry {
	r := &Registry{
		policies:    policies,
		calculators: make(map[workforce.WorkerType]Calculator),
	}
	r.Register(workforce.TypeSalaried, &SalariedCalculator{})
	r.Register(workforce.TypeHourly, &HourlyCalculator{})
	r.Register(workforce.TypeFreelancer, &FreelancerCalculator{})
	return r
}

// Register binds a calculator to a worker type, replacing any previous
// binding. Registration happens at startup; the map is read-only afterward.
func (r *Registry) Register(t workforce.WorkerType, c Calculator) {
	r.calculators[t] = c
}

// CalculatePay computes the itemized pay for a worker: policy lookup,
// calculator dispatch, calculation. Errors propagate unwrapped so callers
// can distinguish ErrUnregisteredType from ErrPolicyNotFound.
func (r *Registry) CalculatePay(w *workforce.Worker) (Breakdown, error) {
	calc, ok := r.calculators[w.Type]
	if !ok {
		return Breakdown{}, fmt.Errorf("worker type %q: %w", w.Type, workforce.ErrUnregisteredType)
	}
	pol, err := r.policies.PayPolicy(w.Type)
	if err != nil {
		return Breakdown{}, err
	}
	return calc.Calculate(w, pol)
}
