package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
	"github.com/edupanel/enrollcore/internal/payment"
	"github.com/edupanel/enrollcore/internal/progress"
	"github.com/edupanel/enrollcore/internal/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Storage interface {
	CreateEnrollment(ctx context.Context, e model.Enrollment) error
	GetEnrollment(ctx context.Context, id string) (model.Enrollment, error)
	UpdateEnrollment(ctx context.Context, e model.Enrollment) error

	CreatePayment(ctx context.Context, p model.Payment) error
	GetPayment(ctx context.Context, id string) (model.Payment, error)
	GetPaymentByTransactionID(ctx context.Context, txID string) (model.Payment, error)
	UpdatePayment(ctx context.Context, p model.Payment) error

	CreatePaymentAndEnrollment(ctx context.Context, p model.Payment, e model.Enrollment) error
	UpdatePaymentAndEnrollment(ctx context.Context, p model.Payment, e model.Enrollment) error
}

type Catalog interface {
	GetCourseModules(ctx context.Context, courseID string) ([]string, error)
}

type Offers interface {
	GetOffer(ctx context.Context, offerID string) (model.Offer, error)
	DecrementSeat(ctx context.Context, offerID string) error
}

// Service owns the enrollment and payment lifecycles. All mutations go
// through the pure transition functions, pass the consistency validator and
// are written under optimistic version checks; a lost race surfaces as
// errs.ErrConflict for the caller to retry.
type Service struct {
	storage Storage
	catalog Catalog
	offers  Offers
	logger  *zap.SugaredLogger
}

func NewService(storage Storage, catalog Catalog, offers Offers, logger *zap.SugaredLogger) *Service {
	return &Service{
		storage: storage,
		catalog: catalog,
		offers:  offers,
		logger:  logger,
	}
}

func (s *Service) CreateEnrollment(ctx context.Context, req model.CreateEnrollmentRequest) (model.Enrollment, error) {
	if req.StudentID == "" || req.CourseID == "" {
		return model.Enrollment{}, fmt.Errorf("%w: student and course required", errs.ErrValidation)
	}

	modules, err := s.catalog.GetCourseModules(ctx, req.CourseID)
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("fetch module snapshot: %w", err)
	}
	if len(modules) == 0 {
		return model.Enrollment{}, fmt.Errorf("%w: course %s has no modules", errs.ErrValidation, req.CourseID)
	}

	var offerRef *string
	if req.OfferID != nil {
		offer, err := s.offers.GetOffer(ctx, *req.OfferID)
		if err != nil {
			return model.Enrollment{}, err
		}
		if time.Now().After(offer.ValidUntil) {
			return model.Enrollment{}, fmt.Errorf("%w: offer %s expired", errs.ErrOfferInvalid, offer.ID)
		}
		if offer.SeatsAvailable <= 0 {
			return model.Enrollment{}, fmt.Errorf("%w: offer %s exhausted", errs.ErrOfferInvalid, offer.ID)
		}
		if err := s.offers.DecrementSeat(ctx, *req.OfferID); err != nil {
			return model.Enrollment{}, err
		}
		offerRef = req.OfferID
	}

	now := time.Now()
	e := model.Enrollment{
		ID:               uuid.NewString(),
		StudentID:        req.StudentID,
		CourseID:         req.CourseID,
		ModuleSnapshot:   modules,
		CompletedModules: []string{},
		OverallProgress:  0,
		Status:           model.Enrolled,
		OfferRef:         offerRef,
		EnrolledAt:       now,
		LastAccessedAt:   now,
		Version:          1,
	}

	if err := validate.Enrollment(&e); err != nil {
		return model.Enrollment{}, err
	}
	if err := s.storage.CreateEnrollment(ctx, e); err != nil {
		return model.Enrollment{}, err
	}

	s.logger.Infow("enrollment created", "enrollment", e.ID, "course", e.CourseID, "modules", len(modules))
	return e, nil
}

// RecordModuleCompletion adds the module to the completed set and recomputes
// progress and status. Completing an already-completed module changes
// nothing beyond the access timestamp.
func (s *Service) RecordModuleCompletion(ctx context.Context, enrollmentID, moduleID string) (model.Enrollment, error) {
	e, err := s.storage.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return model.Enrollment{}, err
	}

	if !e.HasModule(moduleID) {
		return model.Enrollment{}, fmt.Errorf("%w: %q", errs.ErrInvalidModule, moduleID)
	}
	if e.Status == model.Dropped {
		return model.Enrollment{}, fmt.Errorf("%w: enrollment %s is dropped", errs.ErrTerminalState, e.ID)
	}

	if !e.HasCompleted(moduleID) {
		e.CompletedModules = append(e.CompletedModules, moduleID)
		e.OverallProgress = progress.Percent(len(e.CompletedModules), len(e.ModuleSnapshot))
		e.Status = progress.DeriveStatus(e.OverallProgress, false)
	}
	e.LastAccessedAt = time.Now()

	if err := s.checkConsistency(ctx, &e); err != nil {
		return model.Enrollment{}, err
	}
	if err := s.storage.UpdateEnrollment(ctx, e); err != nil {
		return model.Enrollment{}, err
	}

	return e, nil
}

// DropEnrollment is terminal: no operation leads back out of DROPPED.
func (s *Service) DropEnrollment(ctx context.Context, enrollmentID string) (model.Enrollment, error) {
	e, err := s.storage.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return model.Enrollment{}, err
	}

	e.Status = model.Dropped
	e.LastAccessedAt = time.Now()

	if err := s.checkConsistency(ctx, &e); err != nil {
		return model.Enrollment{}, err
	}
	if err := s.storage.UpdateEnrollment(ctx, e); err != nil {
		return model.Enrollment{}, err
	}

	s.logger.Infow("enrollment dropped", "enrollment", e.ID)
	return e, nil
}

func (s *Service) CreatePayment(ctx context.Context, req model.CreatePaymentRequest) (model.Payment, error) {
	if req.Amount <= 0 || req.Currency == "" || req.TransactionID == "" {
		return model.Payment{}, fmt.Errorf("%w: amount, currency and transaction id required", errs.ErrValidation)
	}

	e, err := s.storage.GetEnrollment(ctx, req.EnrollmentID)
	if err != nil {
		return model.Payment{}, err
	}
	if e.PaymentStatus == model.EnrollPaymentPending || e.PaymentStatus == model.EnrollPaymentPaid {
		return model.Payment{}, fmt.Errorf("%w: enrollment %s already has a payment", errs.ErrValidation, e.ID)
	}
	if e.PaymentStatus == model.EnrollPaymentWaived {
		return model.Payment{}, fmt.Errorf("%w: enrollment %s is waived", errs.ErrValidation, e.ID)
	}

	now := time.Now()
	p := model.Payment{
		ID:             uuid.NewString(),
		EnrollmentID:   e.ID,
		StudentID:      e.StudentID,
		CourseID:       e.CourseID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Status:         model.PaymentPending,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  req.TransactionID,
		PaymentGateway: req.PaymentGateway,
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}

	e.PaymentRef = &p.ID
	e.PaymentStatus = model.EnrollPaymentPending
	e.LastAccessedAt = now

	if err := validate.Enrollment(&e); err != nil {
		return model.Payment{}, err
	}
	if err := validate.Pair(&e, &p); err != nil {
		return model.Payment{}, err
	}
	if err := s.storage.CreatePaymentAndEnrollment(ctx, p, e); err != nil {
		return model.Payment{}, err
	}

	s.logger.Infow("payment created", "payment", p.ID, "enrollment", e.ID, "amount", p.Amount)
	return p, nil
}

// ApplyGatewayResult reacts to a gateway webhook. Deliveries are
// at-least-once and may arrive after admin actions; a duplicate outcome for
// an already-applied transaction is a silent no-op.
func (s *Service) ApplyGatewayResult(ctx context.Context, transactionID string, outcome model.GatewayOutcome) (model.Payment, error) {
	p, err := s.storage.GetPaymentByTransactionID(ctx, transactionID)
	if err != nil {
		return model.Payment{}, err
	}

	applied, err := payment.ApplyGatewayOutcome(&p, outcome)
	if err != nil {
		return model.Payment{}, err
	}
	if !applied {
		s.logger.Infow("duplicate gateway delivery ignored", "transaction", transactionID, "outcome", outcome)
		return p, nil
	}

	e, err := s.storage.GetEnrollment(ctx, p.EnrollmentID)
	if err != nil {
		return model.Payment{}, err
	}

	switch p.Status {
	case model.PaymentPaid:
		e.PaymentStatus = model.EnrollPaymentPaid
	case model.PaymentFailed:
		// failed checkout detaches, a new payment may follow
		e.PaymentStatus = model.EnrollPaymentUnset
		e.PaymentRef = nil
	}
	e.LastAccessedAt = time.Now()

	if err := validate.Enrollment(&e); err != nil {
		return model.Payment{}, err
	}
	if p.Status == model.PaymentFailed {
		err = validate.Pair(&e, nil)
	} else {
		err = validate.Pair(&e, &p)
	}
	if err != nil {
		return model.Payment{}, err
	}

	if err := s.storage.UpdatePaymentAndEnrollment(ctx, p, e); err != nil {
		return model.Payment{}, err
	}

	s.logger.Infow("gateway result applied", "payment", p.ID, "outcome", outcome, "status", p.Status)
	return p, nil
}

func (s *Service) VerifyPayment(ctx context.Context, paymentID string) (model.Payment, error) {
	p, err := s.storage.GetPayment(ctx, paymentID)
	if err != nil {
		return model.Payment{}, err
	}

	if err := payment.Verify(&p); err != nil {
		return model.Payment{}, err
	}

	if err := s.pairWithEnrollment(ctx, &p); err != nil {
		return model.Payment{}, err
	}
	if err := s.storage.UpdatePayment(ctx, p); err != nil {
		return model.Payment{}, err
	}

	s.logger.Infow("payment verified", "payment", p.ID)
	return p, nil
}

func (s *Service) RefundPayment(ctx context.Context, paymentID string, amount int64, refundTxID string) (model.Payment, error) {
	p, err := s.storage.GetPayment(ctx, paymentID)
	if err != nil {
		return model.Payment{}, err
	}

	if err := payment.Refund(&p, amount, refundTxID); err != nil {
		return model.Payment{}, err
	}

	if err := s.pairWithEnrollment(ctx, &p); err != nil {
		return model.Payment{}, err
	}
	if err := s.storage.UpdatePayment(ctx, p); err != nil {
		return model.Payment{}, err
	}

	s.logger.Infow("payment refunded", "payment", p.ID, "amount", amount, "status", p.Status)
	return p, nil
}

func (s *Service) DisputePayment(ctx context.Context, paymentID string) (model.Payment, error) {
	p, err := s.storage.GetPayment(ctx, paymentID)
	if err != nil {
		return model.Payment{}, err
	}

	if err := payment.Dispute(&p); err != nil {
		return model.Payment{}, err
	}

	if err := s.pairWithEnrollment(ctx, &p); err != nil {
		return model.Payment{}, err
	}
	if err := s.storage.UpdatePayment(ctx, p); err != nil {
		return model.Payment{}, err
	}

	s.logger.Infow("payment disputed", "payment", p.ID)
	return p, nil
}

func (s *Service) GetEnrollmentProgress(ctx context.Context, enrollmentID string) (model.EnrollmentProgress, error) {
	e, err := s.storage.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return model.EnrollmentProgress{}, err
	}

	return model.EnrollmentProgress{
		EnrollmentID:     e.ID,
		CourseID:         e.CourseID,
		CompletedModules: len(e.CompletedModules),
		TotalModules:     len(e.ModuleSnapshot),
		OverallProgress:  e.OverallProgress,
		Status:           e.Status,
	}, nil
}

func (s *Service) GetPaymentSummary(ctx context.Context, paymentID string) (model.PaymentSummary, error) {
	p, err := s.storage.GetPayment(ctx, paymentID)
	if err != nil {
		return model.PaymentSummary{}, err
	}

	return model.PaymentSummary{
		PaymentID:         p.ID,
		EnrollmentID:      p.EnrollmentID,
		Amount:            p.Amount,
		RefundAmount:      p.RefundAmount,
		TotalPaid:         p.TotalPaid(),
		Currency:          p.Currency,
		Status:            p.Status,
		IsVerifiedByAdmin: p.IsVerifiedByAdmin,
	}, nil
}

// checkConsistency runs the full validator for an enrollment about to be
// written, loading the referenced payment if there is one.
func (s *Service) checkConsistency(ctx context.Context, e *model.Enrollment) error {
	if err := validate.Enrollment(e); err != nil {
		return err
	}

	if e.PaymentRef == nil {
		return validate.Pair(e, nil)
	}

	p, err := s.storage.GetPayment(ctx, *e.PaymentRef)
	if errors.Is(err, errs.ErrNotFound) {
		return validate.Pair(e, nil)
	}
	if err != nil {
		return err
	}
	return validate.Pair(e, &p)
}

// pairWithEnrollment validates a payment about to be written against the
// enrollment that references it.
func (s *Service) pairWithEnrollment(ctx context.Context, p *model.Payment) error {
	e, err := s.storage.GetEnrollment(ctx, p.EnrollmentID)
	if err != nil {
		return err
	}
	return validate.Pair(&e, p)
}
