package payment

import (
	"fmt"
	"time"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
)

// ApplyGatewayOutcome applies a gateway webhook result to the payment.
// Webhooks are delivered at least once, so a duplicate delivery of an
// already-applied outcome returns applied=false with no error and no
// state change.
func ApplyGatewayOutcome(p *model.Payment, outcome model.GatewayOutcome) (bool, error) {
	switch outcome {
	case model.OutcomeConfirmed:
		switch p.Status {
		case model.PaymentPending:
			p.Status = model.PaymentPaid
			p.UpdatedAt = time.Now()
			return true, nil
		case model.PaymentPaid, model.PaymentPartiallyPaid, model.PaymentRefunded, model.PaymentDisputed:
			// confirmation already applied, possibly before later admin actions
			return false, nil
		case model.PaymentFailed:
			return false, fmt.Errorf("%w: confirm on %s payment", errs.ErrIllegalTransition, p.Status)
		}
	case model.OutcomeFailed:
		switch p.Status {
		case model.PaymentPending:
			p.Status = model.PaymentFailed
			p.UpdatedAt = time.Now()
			return true, nil
		case model.PaymentFailed:
			return false, nil
		case model.PaymentPaid, model.PaymentPartiallyPaid, model.PaymentRefunded, model.PaymentDisputed:
			return false, fmt.Errorf("%w: fail on %s payment", errs.ErrIllegalTransition, p.Status)
		}
	}
	return false, fmt.Errorf("%w: unknown gateway outcome %q", errs.ErrValidation, outcome)
}

// Verify marks a paid payment as verified by an admin. Verification is a
// prerequisite for any refund.
func Verify(p *model.Payment) error {
	if p.Status != model.PaymentPaid {
		return fmt.Errorf("%w: verify on %s payment", errs.ErrIllegalTransition, p.Status)
	}
	if p.IsVerifiedByAdmin {
		return errs.ErrAlreadyVerified
	}

	now := time.Now()
	p.IsVerifiedByAdmin = true
	p.VerifiedAt = &now
	p.UpdatedAt = now
	return nil
}

// Refund returns part or all of a verified paid amount. A full refund moves
// the payment to REFUNDED, a partial one to PARTIALLY_PAID. Only one refund
// per payment is possible.
func Refund(p *model.Payment, amount int64, refundTxID string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: refund amount must be positive", errs.ErrValidation)
	}
	if p.Status != model.PaymentPaid {
		return fmt.Errorf("%w: refund on %s payment", errs.ErrIllegalTransition, p.Status)
	}
	if !p.IsVerifiedByAdmin {
		return errs.ErrNotVerified
	}
	if amount > p.Amount {
		return errs.ErrRefundExceedsAmount
	}

	now := time.Now()
	p.RefundAmount = amount
	p.RefundedAt = &now
	p.RefundTransactionID = refundTxID
	if amount == p.Amount {
		p.Status = model.PaymentRefunded
	} else {
		p.Status = model.PaymentPartiallyPaid
	}
	p.UpdatedAt = now
	return nil
}

// Dispute marks the payment as disputed. No transition leads out of
// DISPUTED; resolution is handled outside this service.
func Dispute(p *model.Payment) error {
	switch p.Status {
	case model.PaymentPaid, model.PaymentPartiallyPaid:
		p.Status = model.PaymentDisputed
		p.UpdatedAt = time.Now()
		return nil
	default:
		return fmt.Errorf("%w: dispute on %s payment", errs.ErrIllegalTransition, p.Status)
	}
}

// DerivedFromPaid reports whether the status is PAID or a state a payment
// can only reach after having been paid.
func DerivedFromPaid(s model.PaymentStatus) bool {
	switch s {
	case model.PaymentPaid, model.PaymentPartiallyPaid, model.PaymentRefunded, model.PaymentDisputed:
		return true
	default:
		return false
	}
}
