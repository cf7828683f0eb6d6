package storage

import (
	"context"
	"testing"
	"time"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
	"github.com/stretchr/testify/require"
)

func seedEnrollment(t *testing.T, store *MemoryStorage) model.Enrollment {
	t.Helper()

	e := model.Enrollment{
		ID:               "enr-1",
		StudentID:        "stu-1",
		CourseID:         "crs-1",
		ModuleSnapshot:   []string{"m1", "m2"},
		CompletedModules: []string{},
		Status:           model.Enrolled,
		EnrolledAt:       time.Now(),
		LastAccessedAt:   time.Now(),
		Version:          1,
	}
	require.NoError(t, store.CreateEnrollment(context.Background(), e))
	return e
}

func TestMemoryStorage_StaleEnrollmentWrite(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	seedEnrollment(t, store)

	// two readers pick up the same version
	first, err := store.GetEnrollment(ctx, "enr-1")
	require.NoError(t, err)
	second, err := store.GetEnrollment(ctx, "enr-1")
	require.NoError(t, err)

	first.CompletedModules = []string{"m1"}
	require.NoError(t, store.UpdateEnrollment(ctx, first))

	second.CompletedModules = []string{"m2"}
	require.ErrorIs(t, store.UpdateEnrollment(ctx, second), errs.ErrConflict)

	stored, err := store.GetEnrollment(ctx, "enr-1")
	require.NoError(t, err)
	require.Equal(t, []string{"m1"}, stored.CompletedModules)
	require.Equal(t, 2, stored.Version)
}

func TestMemoryStorage_UpdateMissing(t *testing.T) {
	store := NewMemoryStorage()

	err := store.UpdateEnrollment(context.Background(), model.Enrollment{ID: "ghost", Version: 1})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMemoryStorage_DuplicateTransactionID(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	p := model.Payment{ID: "pay-1", TransactionID: "tx-1", Status: model.PaymentPending, Version: 1}
	require.NoError(t, store.CreatePayment(ctx, p))

	dup := model.Payment{ID: "pay-2", TransactionID: "tx-1", Status: model.PaymentPending, Version: 1}
	require.ErrorIs(t, store.CreatePayment(ctx, dup), errs.ErrConflict)
}

func TestMemoryStorage_UpdatePaymentAndEnrollment_AllOrNothing(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	e := seedEnrollment(t, store)

	p := model.Payment{ID: "pay-1", EnrollmentID: e.ID, TransactionID: "tx-1", Status: model.PaymentPending, Version: 1}
	require.NoError(t, store.CreatePayment(ctx, p))

	// stale enrollment version must abort the payment write too
	p.Status = model.PaymentPaid
	stale := e
	stale.Version = 99
	require.ErrorIs(t, store.UpdatePaymentAndEnrollment(ctx, p, stale), errs.ErrConflict)

	stored, err := store.GetPayment(ctx, "pay-1")
	require.NoError(t, err)
	require.Equal(t, model.PaymentPending, stored.Status)
	require.Equal(t, 1, stored.Version)
}

func TestMemoryStorage_GetPaymentByTransactionID(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	p := model.Payment{ID: "pay-1", TransactionID: "tx-1", Status: model.PaymentPending, Version: 1}
	require.NoError(t, store.CreatePayment(ctx, p))

	found, err := store.GetPaymentByTransactionID(ctx, "tx-1")
	require.NoError(t, err)
	require.Equal(t, "pay-1", found.ID)

	_, err = store.GetPaymentByTransactionID(ctx, "tx-unknown")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
