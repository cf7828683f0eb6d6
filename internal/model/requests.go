package model

type CreateEnrollmentRequest struct {
	StudentID string  `json:"student_id"`
	CourseID  string  `json:"course_id"`
	OfferID   *string `json:"offer_id,omitempty"`
}

type CreatePaymentRequest struct {
	EnrollmentID   string `json:"enrollment_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentMethod  string `json:"payment_method"`
	TransactionID  string `json:"transaction_id"`
	PaymentGateway string `json:"payment_gateway"`
}

type GatewayWebhookRequest struct {
	TransactionID string         `json:"transaction_id"`
	Outcome       GatewayOutcome `json:"outcome"`
}

type RefundRequest struct {
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type EnrollmentProgress struct {
	EnrollmentID     string           `json:"enrollment_id"`
	CourseID         string           `json:"course_id"`
	CompletedModules int              `json:"completed_modules"`
	TotalModules     int              `json:"total_modules"`
	OverallProgress  int              `json:"overall_progress"`
	Status           EnrollmentStatus `json:"status"`
}

type PaymentSummary struct {
	PaymentID         string        `json:"payment_id"`
	EnrollmentID      string        `json:"enrollment_id"`
	Amount            int64         `json:"amount"`
	RefundAmount      int64         `json:"refund_amount"`
	TotalPaid         int64         `json:"total_paid"`
	Currency          string        `json:"currency"`
	Status            PaymentStatus `json:"status"`
	IsVerifiedByAdmin bool          `json:"is_verified_by_admin"`
}
