package validate

import (
	"fmt"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
	"github.com/edupanel/enrollcore/internal/payment"
	"github.com/edupanel/enrollcore/internal/progress"
)

// Enrollment checks the single-entity invariants. It runs before every
// enrollment write; a failure means the mutation itself is buggy and the
// write must not happen.
func Enrollment(e *model.Enrollment) error {
	for _, m := range e.CompletedModules {
		if !e.HasModule(m) {
			return fmt.Errorf("%w: completed module %q outside snapshot", errs.ErrConsistency, m)
		}
	}

	want := progress.Percent(len(e.CompletedModules), len(e.ModuleSnapshot))
	if diff := e.OverallProgress - want; diff < -1 || diff > 1 {
		return fmt.Errorf("%w: progress %d does not match %d/%d modules",
			errs.ErrConsistency, e.OverallProgress, len(e.CompletedModules), len(e.ModuleSnapshot))
	}

	// status is derived from progress, except that dropped is sticky
	if e.Status != model.Dropped {
		if wantStatus := progress.DeriveStatus(e.OverallProgress, false); e.Status != wantStatus {
			return fmt.Errorf("%w: status %s does not match progress %d",
				errs.ErrConsistency, e.Status, e.OverallProgress)
		}
	}

	needsRef := e.PaymentStatus == model.EnrollPaymentPending || e.PaymentStatus == model.EnrollPaymentPaid
	if needsRef && e.PaymentRef == nil {
		return fmt.Errorf("%w: payment status %s without payment ref", errs.ErrConsistency, e.PaymentStatus)
	}
	if !needsRef && e.PaymentRef != nil {
		return fmt.Errorf("%w: payment ref set with payment status %q", errs.ErrConsistency, e.PaymentStatus)
	}

	return nil
}

// Pair checks that an enrollment with an attached payment agrees with the
// payment record it references. Called before committing any write that
// touches either side; p may be nil when the enrollment references none.
func Pair(e *model.Enrollment, p *model.Payment) error {
	needsPayment := e.PaymentStatus == model.EnrollPaymentPending || e.PaymentStatus == model.EnrollPaymentPaid
	if !needsPayment {
		return nil
	}

	if p == nil {
		return fmt.Errorf("%w: enrollment %s references a missing payment", errs.ErrConsistency, e.ID)
	}
	if e.PaymentRef == nil || *e.PaymentRef != p.ID {
		return fmt.Errorf("%w: enrollment %s does not reference payment %s", errs.ErrConsistency, e.ID, p.ID)
	}

	switch e.PaymentStatus {
	case model.EnrollPaymentPending:
		if p.Status != model.PaymentPending {
			return fmt.Errorf("%w: enrollment says PENDING, payment is %s", errs.ErrConsistency, p.Status)
		}
	case model.EnrollPaymentPaid:
		if !payment.DerivedFromPaid(p.Status) {
			return fmt.Errorf("%w: enrollment says PAID, payment is %s", errs.ErrConsistency, p.Status)
		}
	}

	return nil
}
