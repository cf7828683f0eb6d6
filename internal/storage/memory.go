package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
)

// MemoryStorage implements the same optimistic-versioning contract as the
// Postgres storage, guarded by a single mutex. It backs the service and
// concurrency tests.
type MemoryStorage struct {
	mu          sync.Mutex
	enrollments map[string]model.Enrollment
	payments    map[string]model.Payment
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		enrollments: make(map[string]model.Enrollment),
		payments:    make(map[string]model.Payment),
	}
}

func (s *MemoryStorage) CreateEnrollment(_ context.Context, e model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.enrollments[e.ID]; ok {
		return fmt.Errorf("%w: enrollment %s already exists", errs.ErrConflict, e.ID)
	}
	s.enrollments[e.ID] = cloneEnrollment(e)
	return nil
}

func (s *MemoryStorage) GetEnrollment(_ context.Context, id string) (model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.enrollments[id]
	if !ok {
		return model.Enrollment{}, errs.ErrNotFound
	}
	return cloneEnrollment(e), nil
}

func (s *MemoryStorage) UpdateEnrollment(_ context.Context, e model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateEnrollmentLocked(e)
}

func (s *MemoryStorage) CreatePayment(_ context.Context, p model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[p.ID]; ok {
		return fmt.Errorf("%w: payment %s already exists", errs.ErrConflict, p.ID)
	}
	for _, existing := range s.payments {
		if p.TransactionID != "" && existing.TransactionID == p.TransactionID {
			return fmt.Errorf("%w: duplicate transaction id %s", errs.ErrConflict, p.TransactionID)
		}
	}
	s.payments[p.ID] = p
	return nil
}

func (s *MemoryStorage) GetPayment(_ context.Context, id string) (model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return model.Payment{}, errs.ErrNotFound
	}
	return p, nil
}

func (s *MemoryStorage) GetPaymentByTransactionID(_ context.Context, txID string) (model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments {
		if p.TransactionID == txID {
			return p, nil
		}
	}
	return model.Payment{}, errs.ErrNotFound
}

func (s *MemoryStorage) UpdatePayment(_ context.Context, p model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatePaymentLocked(p)
}

func (s *MemoryStorage) CreatePaymentAndEnrollment(_ context.Context, p model.Payment, e model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[p.ID]; ok {
		return fmt.Errorf("%w: payment %s already exists", errs.ErrConflict, p.ID)
	}
	for _, existing := range s.payments {
		if p.TransactionID != "" && existing.TransactionID == p.TransactionID {
			return fmt.Errorf("%w: duplicate transaction id %s", errs.ErrConflict, p.TransactionID)
		}
	}
	if err := s.checkEnrollmentVersion(e); err != nil {
		return err
	}

	s.payments[p.ID] = p
	return s.updateEnrollmentLocked(e)
}

func (s *MemoryStorage) UpdatePaymentAndEnrollment(_ context.Context, p model.Payment, e model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// check both version guards before touching anything
	if err := s.checkPaymentVersion(p); err != nil {
		return err
	}
	if err := s.checkEnrollmentVersion(e); err != nil {
		return err
	}

	if err := s.updatePaymentLocked(p); err != nil {
		return err
	}
	return s.updateEnrollmentLocked(e)
}

func (s *MemoryStorage) updateEnrollmentLocked(e model.Enrollment) error {
	if err := s.checkEnrollmentVersion(e); err != nil {
		return err
	}
	e.Version++
	s.enrollments[e.ID] = cloneEnrollment(e)
	return nil
}

func (s *MemoryStorage) updatePaymentLocked(p model.Payment) error {
	if err := s.checkPaymentVersion(p); err != nil {
		return err
	}
	p.Version++
	s.payments[p.ID] = p
	return nil
}

func (s *MemoryStorage) checkEnrollmentVersion(e model.Enrollment) error {
	current, ok := s.enrollments[e.ID]
	if !ok {
		return errs.ErrNotFound
	}
	if current.Version != e.Version {
		return errs.ErrConflict
	}
	return nil
}

func (s *MemoryStorage) checkPaymentVersion(p model.Payment) error {
	current, ok := s.payments[p.ID]
	if !ok {
		return errs.ErrNotFound
	}
	if current.Version != p.Version {
		return errs.ErrConflict
	}
	return nil
}

func cloneEnrollment(e model.Enrollment) model.Enrollment {
	e.ModuleSnapshot = append([]string(nil), e.ModuleSnapshot...)
	e.CompletedModules = append([]string(nil), e.CompletedModules...)
	return e
}
