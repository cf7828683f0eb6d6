package model

import "time"

type EnrollmentStatus string

const (
	Enrolled   EnrollmentStatus = "ENROLLED"
	InProgress EnrollmentStatus = "IN_PROGRESS"
	Completed  EnrollmentStatus = "COMPLETED"
	Dropped    EnrollmentStatus = "DROPPED"
)

// EnrollmentPaymentStatus mirrors the payment side on the enrollment.
// Empty means no payment is attached yet.
type EnrollmentPaymentStatus string

const (
	EnrollPaymentUnset   EnrollmentPaymentStatus = ""
	EnrollPaymentPending EnrollmentPaymentStatus = "PENDING"
	EnrollPaymentPaid    EnrollmentPaymentStatus = "PAID"
	EnrollPaymentWaived  EnrollmentPaymentStatus = "WAIVED"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentFailed        PaymentStatus = "FAILED"
	PaymentDisputed      PaymentStatus = "DISPUTED"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

type Enrollment struct {
	ID               string                  `json:"id"`
	StudentID        string                  `json:"student_id"`
	CourseID         string                  `json:"course_id"`
	ModuleSnapshot   []string                `json:"module_snapshot"`
	CompletedModules []string                `json:"completed_modules"`
	OverallProgress  int                     `json:"overall_progress"`
	Status           EnrollmentStatus        `json:"status"`
	PaymentStatus    EnrollmentPaymentStatus `json:"payment_status,omitempty"`
	PaymentRef       *string                 `json:"payment_ref,omitempty"`
	OfferRef         *string                 `json:"offer_ref,omitempty"`
	EnrolledAt       time.Time               `json:"enrolled_at"`
	LastAccessedAt   time.Time               `json:"last_accessed_at"`
	Version          int                     `json:"-"`
}

// HasModule reports whether the module belongs to the snapshot taken at
// enrollment time.
func (e *Enrollment) HasModule(moduleID string) bool {
	for _, m := range e.ModuleSnapshot {
		if m == moduleID {
			return true
		}
	}
	return false
}

// HasCompleted reports whether the module was already recorded as completed.
func (e *Enrollment) HasCompleted(moduleID string) bool {
	for _, m := range e.CompletedModules {
		if m == moduleID {
			return true
		}
	}
	return false
}

// Amounts are in minor currency units.
type Payment struct {
	ID                  string        `json:"id"`
	EnrollmentID        string        `json:"enrollment_id"`
	StudentID           string        `json:"student_id"`
	CourseID            string        `json:"course_id"`
	Amount              int64         `json:"amount"`
	Currency            string        `json:"currency"`
	Status              PaymentStatus `json:"status"`
	PaymentMethod       string        `json:"payment_method,omitempty"`
	TransactionID       string        `json:"transaction_id,omitempty"`
	PaymentGateway      string        `json:"payment_gateway,omitempty"`
	IsVerifiedByAdmin   bool          `json:"is_verified_by_admin"`
	VerifiedAt          *time.Time    `json:"verified_at,omitempty"`
	RefundAmount        int64         `json:"refund_amount"`
	RefundedAt          *time.Time    `json:"refunded_at,omitempty"`
	RefundTransactionID string        `json:"refund_transaction_id,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	Version             int           `json:"-"`
}

// TotalPaid is the amount still held after refunds.
func (p *Payment) TotalPaid() int64 {
	return p.Amount - p.RefundAmount
}

// Offer is the collaborator's view of a discount offer, fetched at
// validation time, never cached.
type Offer struct {
	ID             string    `json:"id"`
	ValidUntil     time.Time `json:"valid_until"`
	SeatsAvailable int       `json:"seats_available"`
}

// GatewayOutcome is what a gateway webhook reports for a transaction.
type GatewayOutcome string

const (
	OutcomeConfirmed GatewayOutcome = "CONFIRMED"
	OutcomeFailed    GatewayOutcome = "FAILED"
)
