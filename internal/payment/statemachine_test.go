package payment

import (
	"testing"
	"time"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
	"github.com/stretchr/testify/require"
)

func paidVerified(amount int64) model.Payment {
	now := time.Now()
	return model.Payment{
		ID:                "pay-1",
		Amount:            amount,
		Currency:          "USD",
		Status:            model.PaymentPaid,
		IsVerifiedByAdmin: true,
		VerifiedAt:        &now,
	}
}

func TestApplyGatewayOutcome(t *testing.T) {
	tests := []struct {
		name        string
		status      model.PaymentStatus
		outcome     model.GatewayOutcome
		wantApplied bool
		wantStatus  model.PaymentStatus
		wantErr     error
	}{
		{"confirm pending", model.PaymentPending, model.OutcomeConfirmed, true, model.PaymentPaid, nil},
		{"fail pending", model.PaymentPending, model.OutcomeFailed, true, model.PaymentFailed, nil},
		{"duplicate confirm on paid", model.PaymentPaid, model.OutcomeConfirmed, false, model.PaymentPaid, nil},
		{"confirm after refund", model.PaymentRefunded, model.OutcomeConfirmed, false, model.PaymentRefunded, nil},
		{"confirm after partial refund", model.PaymentPartiallyPaid, model.OutcomeConfirmed, false, model.PaymentPartiallyPaid, nil},
		{"confirm after dispute", model.PaymentDisputed, model.OutcomeConfirmed, false, model.PaymentDisputed, nil},
		{"duplicate fail on failed", model.PaymentFailed, model.OutcomeFailed, false, model.PaymentFailed, nil},
		{"confirm on failed", model.PaymentFailed, model.OutcomeConfirmed, false, model.PaymentFailed, errs.ErrIllegalTransition},
		{"fail on paid", model.PaymentPaid, model.OutcomeFailed, false, model.PaymentPaid, errs.ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.Payment{Status: tt.status}
			applied, err := ApplyGatewayOutcome(&p, tt.outcome)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantApplied, applied)
			require.Equal(t, tt.wantStatus, p.Status)
		})
	}
}

func TestApplyGatewayOutcome_Unknown(t *testing.T) {
	p := model.Payment{Status: model.PaymentPending}
	_, err := ApplyGatewayOutcome(&p, "SOMETHING")
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Equal(t, model.PaymentPending, p.Status)
}

func TestVerify(t *testing.T) {
	p := model.Payment{Status: model.PaymentPaid}
	require.NoError(t, Verify(&p))
	require.True(t, p.IsVerifiedByAdmin)
	require.NotNil(t, p.VerifiedAt)
	require.Equal(t, model.PaymentPaid, p.Status)
}

func TestVerify_AlreadyVerified(t *testing.T) {
	p := paidVerified(1000)
	require.ErrorIs(t, Verify(&p), errs.ErrAlreadyVerified)
}

func TestVerify_Pending(t *testing.T) {
	p := model.Payment{Status: model.PaymentPending}
	require.ErrorIs(t, Verify(&p), errs.ErrIllegalTransition)
	require.False(t, p.IsVerifiedByAdmin)
	require.Equal(t, model.PaymentPending, p.Status)
}

func TestRefund_Full(t *testing.T) {
	p := paidVerified(1000)
	require.NoError(t, Refund(&p, 1000, "rtx-1"))
	require.Equal(t, model.PaymentRefunded, p.Status)
	require.Equal(t, int64(0), p.TotalPaid())
	require.NotNil(t, p.RefundedAt)
	require.Equal(t, "rtx-1", p.RefundTransactionID)
}

func TestRefund_Partial(t *testing.T) {
	p := paidVerified(1000)
	require.NoError(t, Refund(&p, 400, "rtx-2"))
	require.Equal(t, model.PaymentPartiallyPaid, p.Status)
	require.Equal(t, int64(600), p.TotalPaid())
}

func TestRefund_Guards(t *testing.T) {
	tests := []struct {
		name    string
		payment model.Payment
		amount  int64
		wantErr error
	}{
		{"not verified", model.Payment{Status: model.PaymentPaid, Amount: 1000}, 500, errs.ErrNotVerified},
		{"pending", model.Payment{Status: model.PaymentPending, Amount: 1000}, 500, errs.ErrIllegalTransition},
		{"already partially refunded", func() model.Payment {
			p := paidVerified(1000)
			_ = Refund(&p, 400, "")
			return p
		}(), 100, errs.ErrIllegalTransition},
		{"over amount", paidVerified(1000), 1001, errs.ErrRefundExceedsAmount},
		{"zero amount", paidVerified(1000), 0, errs.ErrValidation},
		{"negative amount", paidVerified(1000), -5, errs.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.payment
			before := p.Status
			require.ErrorIs(t, Refund(&p, tt.amount, ""), tt.wantErr)
			require.Equal(t, before, p.Status)
		})
	}
}

func TestDispute(t *testing.T) {
	p := paidVerified(1000)
	require.NoError(t, Dispute(&p))
	require.Equal(t, model.PaymentDisputed, p.Status)

	partial := paidVerified(1000)
	require.NoError(t, Refund(&partial, 300, ""))
	require.NoError(t, Dispute(&partial))
	require.Equal(t, model.PaymentDisputed, partial.Status)
}

func TestDispute_Illegal(t *testing.T) {
	for _, status := range []model.PaymentStatus{model.PaymentPending, model.PaymentFailed, model.PaymentRefunded, model.PaymentDisputed} {
		p := model.Payment{Status: status}
		if err := Dispute(&p); err == nil {
			t.Errorf("Dispute on %s: expected error", status)
		}
	}
}

func TestDerivedFromPaid(t *testing.T) {
	tests := []struct {
		status model.PaymentStatus
		want   bool
	}{
		{model.PaymentPaid, true},
		{model.PaymentPartiallyPaid, true},
		{model.PaymentRefunded, true},
		{model.PaymentDisputed, true},
		{model.PaymentPending, false},
		{model.PaymentFailed, false},
	}

	for _, tt := range tests {
		if got := DerivedFromPaid(tt.status); got != tt.want {
			t.Errorf("DerivedFromPaid(%s) = %v; want %v", tt.status, got, tt.want)
		}
	}
}
