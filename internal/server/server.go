package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/edupanel/enrollcore/internal/config"
	"github.com/edupanel/enrollcore/internal/deps"
	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/idempotency"
	"github.com/edupanel/enrollcore/internal/middleware"
	"github.com/edupanel/enrollcore/internal/model"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	CreateEnrollment(ctx context.Context, req model.CreateEnrollmentRequest) (model.Enrollment, error)
	RecordModuleCompletion(ctx context.Context, enrollmentID, moduleID string) (model.Enrollment, error)
	DropEnrollment(ctx context.Context, enrollmentID string) (model.Enrollment, error)
	GetEnrollmentProgress(ctx context.Context, enrollmentID string) (model.EnrollmentProgress, error)

	CreatePayment(ctx context.Context, req model.CreatePaymentRequest) (model.Payment, error)
	ApplyGatewayResult(ctx context.Context, transactionID string, outcome model.GatewayOutcome) (model.Payment, error)
	VerifyPayment(ctx context.Context, paymentID string) (model.Payment, error)
	RefundPayment(ctx context.Context, paymentID string, amount int64, refundTxID string) (model.Payment, error)
	DisputePayment(ctx context.Context, paymentID string) (model.Payment, error)
	GetPaymentSummary(ctx context.Context, paymentID string) (model.PaymentSummary, error)
}

type Server struct {
	service Service
	idem    idempotency.Store
	config  *config.Config
	deps    *deps.Deps
}

func NewServer(service Service, idem idempotency.Store, config *config.Config, deps *deps.Deps) *Server {
	return &Server{
		service: service,
		idem:    idem,
		config:  config,
		deps:    deps,
	}
}

func (srv *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.deps.Logger))

	router.Post("/api/enrollments", srv.CreateEnrollmentHandler)
	router.Post("/api/enrollments/{id}/modules/{moduleId}", srv.CompleteModuleHandler)
	router.Post("/api/enrollments/{id}/drop", srv.DropEnrollmentHandler)
	router.Get("/api/enrollments/{id}/progress", srv.GetProgressHandler)

	router.Post("/api/payments", srv.CreatePaymentHandler)
	router.Get("/api/payments/{id}", srv.GetPaymentSummaryHandler)
	router.Post("/api/gateway/webhook", srv.GatewayWebhookHandler)

	router.Post("/api/admin/login", srv.AdminLoginHandler)

	// админские ручки
	router.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuthMiddleware(srv.deps.TokenManager))

		r.Post("/api/admin/payments/{id}/verify", srv.VerifyPaymentHandler)
		r.Post("/api/admin/payments/{id}/refund", srv.RefundPaymentHandler)
		r.Post("/api/admin/payments/{id}/dispute", srv.DisputePaymentHandler)
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.deps.Logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *Server) CreateEnrollmentHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	enrollment, err := s.service.CreateEnrollment(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, enrollment)
}

func (s *Server) CompleteModuleHandler(w http.ResponseWriter, r *http.Request) {
	enrollmentID := chi.URLParam(r, "id")
	moduleID := chi.URLParam(r, "moduleId")

	enrollment, err := s.service.RecordModuleCompletion(r.Context(), enrollmentID, moduleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, enrollment)
}

func (s *Server) DropEnrollmentHandler(w http.ResponseWriter, r *http.Request) {
	enrollment, err := s.service.DropEnrollment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, enrollment)
}

func (s *Server) GetProgressHandler(w http.ResponseWriter, r *http.Request) {
	progress, err := s.service.GetEnrollmentProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) CreatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	payment, err := s.service.CreatePayment(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) GetPaymentSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.GetPaymentSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// GatewayWebhookHandler accepts at-least-once gateway deliveries. A
// transaction already seen answers 200 without touching the service; the
// payment row itself is still checked for idempotency on the slow path.
func (s *Server) GatewayWebhookHandler(w http.ResponseWriter, r *http.Request) {
	var req model.GatewayWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.TransactionID == "" {
		http.Error(w, "transaction_id required", http.StatusUnprocessableEntity)
		return
	}

	dedupKey := req.TransactionID + ":" + string(req.Outcome)
	fresh, err := s.idem.Reserve(r.Context(), dedupKey, 24*time.Hour)
	if err != nil {
		s.deps.Logger.Errorf("idempotency reserve: %v", err)
		fresh = true // dedup store is best effort only
	}
	if !fresh {
		w.WriteHeader(http.StatusOK)
		return
	}

	payment, err := s.service.ApplyGatewayResult(r.Context(), req.TransactionID, req.Outcome)
	if err != nil {
		if releaseErr := s.idem.Release(r.Context(), dedupKey); releaseErr != nil {
			s.deps.Logger.Errorf("idempotency release: %v", releaseErr)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if creds.Login == "" || creds.Password == "" {
		http.Error(w, "login and password required", http.StatusBadRequest)
		return
	}

	if creds.Login != s.config.AdminLogin {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(creds.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.deps.TokenManager.GenerateToken(creds.Login)
	if err != nil {
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) VerifyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	payment, err := s.service.VerifyPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) RefundPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req model.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	payment, err := s.service.RefundPayment(r.Context(), chi.URLParam(r, "id"), req.Amount, req.TransactionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

func (s *Server) DisputePaymentHandler(w http.ResponseWriter, r *http.Request) {
	payment, err := s.service.DisputePayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrInvalidModule),
		errors.Is(err, errs.ErrRefundExceedsAmount):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrTerminalState),
		errors.Is(err, errs.ErrNotVerified),
		errors.Is(err, errs.ErrAlreadyVerified),
		errors.Is(err, errs.ErrConsistency),
		errors.Is(err, errs.ErrOfferInvalid):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, errs.ErrConflict):
		w.Header().Set("Retry-After", "0")
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
