// service.go - Compute-and-record entry point.
//
// The Service is what the API layer calls: it computes the breakdown, then
// appends the payment to the ledger. Calculation failures return early with
// no ledger entry; a ledger persistence failure is returned alongside the
// completed breakdown and transaction.
package payroll

import (
	"context"

	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/workforce"
)

// Service couples the pay registry to the transaction ledger.
type Service struct {
	registry *Registry
	ledger   *ledger.Ledger
}

// NewService creates the payroll service.
func NewService(registry *Registry, led *ledger.Ledger) *Service {
	return &Service{registry: registry, ledger: led}
}

// Pay computes the worker's pay and records it. The breakdown and the
// transaction are valid whenever err is nil or a persistence error; a
// calculation error yields zero values and no ledger entry.
func (s *Service) Pay(ctx context.Context, w *workforce.Worker) (Breakdown, ledger.Transaction, error) {
	b, err := s.registry.CalculatePay(w)
	if err != nil {
		return Breakdown{}, ledger.Transaction{}, err
	}
	tx, err := s.ledger.RecordPayment(ctx, w, ledger.Breakdown{
		Total:        b.Total,
		Base:         b.Base,
		Bonus:        b.Bonus,
		Overtime:     b.Overtime,
		SpecialHours: b.SpecialHours,
	})
	return b, tx, err
}
