package validate

import (
	"testing"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
	"github.com/stretchr/testify/require"
)

func validEnrollment() model.Enrollment {
	return model.Enrollment{
		ID:               "enr-1",
		StudentID:        "stu-1",
		CourseID:         "crs-1",
		ModuleSnapshot:   []string{"m1", "m2", "m3", "m4"},
		CompletedModules: []string{"m1"},
		OverallProgress:  25,
		Status:           model.InProgress,
	}
}

func TestEnrollment_OK(t *testing.T) {
	e := validEnrollment()
	require.NoError(t, Enrollment(&e))
}

func TestEnrollment_ModuleOutsideSnapshot(t *testing.T) {
	e := validEnrollment()
	e.CompletedModules = append(e.CompletedModules, "m9")
	e.OverallProgress = 50
	require.ErrorIs(t, Enrollment(&e), errs.ErrConsistency)
}

func TestEnrollment_ProgressMismatch(t *testing.T) {
	e := validEnrollment()
	e.OverallProgress = 80
	require.ErrorIs(t, Enrollment(&e), errs.ErrConsistency)
}

func TestEnrollment_ProgressWithinTolerance(t *testing.T) {
	e := validEnrollment()
	e.OverallProgress = 26 // off by one from rounding is fine
	require.NoError(t, Enrollment(&e))
}

func TestEnrollment_StatusMatchesProgress(t *testing.T) {
	tests := []struct {
		name      string
		progress  int
		completed []string
		status    model.EnrollmentStatus
		wantErr   bool
	}{
		{"enrolled at zero", 0, []string{}, model.Enrolled, false},
		{"in progress at 25", 25, []string{"m1"}, model.InProgress, false},
		{"completed at 100", 100, []string{"m1", "m2", "m3", "m4"}, model.Completed, false},
		{"dropped at any progress", 25, []string{"m1"}, model.Dropped, false},
		{"completed at 25", 25, []string{"m1"}, model.Completed, true},
		{"enrolled at 25", 25, []string{"m1"}, model.Enrolled, true},
		{"in progress at 100", 100, []string{"m1", "m2", "m3", "m4"}, model.InProgress, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEnrollment()
			e.CompletedModules = tt.completed
			e.OverallProgress = tt.progress
			e.Status = tt.status

			err := Enrollment(&e)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrConsistency)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEnrollment_PaymentRefRules(t *testing.T) {
	ref := "pay-1"

	tests := []struct {
		name    string
		status  model.EnrollmentPaymentStatus
		ref     *string
		wantErr bool
	}{
		{"pending with ref", model.EnrollPaymentPending, &ref, false},
		{"paid with ref", model.EnrollPaymentPaid, &ref, false},
		{"pending without ref", model.EnrollPaymentPending, nil, true},
		{"paid without ref", model.EnrollPaymentPaid, nil, true},
		{"waived with ref", model.EnrollPaymentWaived, &ref, true},
		{"unset with ref", model.EnrollPaymentUnset, &ref, true},
		{"waived without ref", model.EnrollPaymentWaived, nil, false},
		{"unset without ref", model.EnrollPaymentUnset, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEnrollment()
			e.PaymentStatus = tt.status
			e.PaymentRef = tt.ref

			err := Enrollment(&e)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrConsistency)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPair_NoPaymentAttached(t *testing.T) {
	e := validEnrollment()
	require.NoError(t, Pair(&e, nil))
}

func TestPair_MissingPayment(t *testing.T) {
	e := validEnrollment()
	ref := "pay-1"
	e.PaymentStatus = model.EnrollPaymentPending
	e.PaymentRef = &ref
	require.ErrorIs(t, Pair(&e, nil), errs.ErrConsistency)
}

func TestPair_WrongRef(t *testing.T) {
	e := validEnrollment()
	ref := "pay-other"
	e.PaymentStatus = model.EnrollPaymentPending
	e.PaymentRef = &ref

	p := model.Payment{ID: "pay-1", Status: model.PaymentPending}
	require.ErrorIs(t, Pair(&e, &p), errs.ErrConsistency)
}

func TestPair_StatusAgreement(t *testing.T) {
	tests := []struct {
		name          string
		enrollStatus  model.EnrollmentPaymentStatus
		paymentStatus model.PaymentStatus
		wantErr       bool
	}{
		{"pending matches pending", model.EnrollPaymentPending, model.PaymentPending, false},
		{"pending vs paid", model.EnrollPaymentPending, model.PaymentPaid, true},
		{"pending vs failed", model.EnrollPaymentPending, model.PaymentFailed, true},
		{"paid matches paid", model.EnrollPaymentPaid, model.PaymentPaid, false},
		{"paid matches refunded", model.EnrollPaymentPaid, model.PaymentRefunded, false},
		{"paid matches partially paid", model.EnrollPaymentPaid, model.PaymentPartiallyPaid, false},
		{"paid matches disputed", model.EnrollPaymentPaid, model.PaymentDisputed, false},
		{"paid vs pending", model.EnrollPaymentPaid, model.PaymentPending, true},
		{"paid vs failed", model.EnrollPaymentPaid, model.PaymentFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEnrollment()
			ref := "pay-1"
			e.PaymentStatus = tt.enrollStatus
			e.PaymentRef = &ref

			p := model.Payment{ID: "pay-1", Status: tt.paymentStatus}

			err := Pair(&e, &p)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrConsistency)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
