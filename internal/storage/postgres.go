package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/edupanel/enrollcore/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS enrollments (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		module_snapshot TEXT[] NOT NULL,
		completed_modules TEXT[] NOT NULL DEFAULT '{}',
		overall_progress INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		payment_status TEXT NOT NULL DEFAULT '',
		payment_ref TEXT,
		offer_ref TEXT,
		enrolled_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_accessed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INT NOT NULL DEFAULT 1
	);
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		enrollment_id TEXT NOT NULL REFERENCES enrollments(id),
		student_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		amount BIGINT NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		payment_method TEXT NOT NULL DEFAULT '',
		transaction_id TEXT UNIQUE,
		payment_gateway TEXT NOT NULL DEFAULT '',
		is_verified_by_admin BOOLEAN NOT NULL DEFAULT FALSE,
		verified_at TIMESTAMPTZ,
		refund_amount BIGINT NOT NULL DEFAULT 0,
		refunded_at TIMESTAMPTZ,
		refund_transaction_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INT NOT NULL DEFAULT 1
	);`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgresStorage(ctx context.Context, databaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

func (s *PostgresStorage) CreateEnrollment(ctx context.Context, e model.Enrollment) error {
	const query = `
		INSERT INTO enrollments
			(id, student_id, course_id, module_snapshot, completed_modules, overall_progress,
			 status, payment_status, payment_ref, offer_ref, enrolled_at, last_accessed_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := s.db.Exec(ctx, query,
		e.ID, e.StudentID, e.CourseID, e.ModuleSnapshot, e.CompletedModules, e.OverallProgress,
		e.Status, e.PaymentStatus, e.PaymentRef, e.OfferRef, e.EnrolledAt, e.LastAccessedAt, e.Version)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return fmt.Errorf("%w: enrollment %s already exists", errs.ErrConflict, e.ID)
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetEnrollment(ctx context.Context, id string) (model.Enrollment, error) {
	const query = `
		SELECT id, student_id, course_id, module_snapshot, completed_modules, overall_progress,
		       status, payment_status, payment_ref, offer_ref, enrolled_at, last_accessed_at, version
		FROM enrollments
		WHERE id = $1`

	var e model.Enrollment
	err := s.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.StudentID, &e.CourseID, &e.ModuleSnapshot, &e.CompletedModules, &e.OverallProgress,
		&e.Status, &e.PaymentStatus, &e.PaymentRef, &e.OfferRef, &e.EnrolledAt, &e.LastAccessedAt, &e.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Enrollment{}, errs.ErrNotFound
		}
		return model.Enrollment{}, fmt.Errorf("get enrollment: %w", err)
	}

	return e, nil
}

// UpdateEnrollment writes the enrollment back only if nobody else updated
// it since it was read. A lost race comes back as ErrConflict.
func (s *PostgresStorage) UpdateEnrollment(ctx context.Context, e model.Enrollment) error {
	const query = `
		UPDATE enrollments
		SET completed_modules = $1, overall_progress = $2, status = $3,
		    payment_status = $4, payment_ref = $5, last_accessed_at = $6,
		    version = version + 1
		WHERE id = $7 AND version = $8`

	cmdTag, err := s.db.Exec(ctx, query,
		e.CompletedModules, e.OverallProgress, e.Status,
		e.PaymentStatus, e.PaymentRef, e.LastAccessedAt,
		e.ID, e.Version)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return s.staleOrMissing(ctx, "enrollments", e.ID)
	}

	return nil
}

func (s *PostgresStorage) CreatePayment(ctx context.Context, p model.Payment) error {
	const query = `
		INSERT INTO payments
			(id, enrollment_id, student_id, course_id, amount, currency, status,
			 payment_method, transaction_id, payment_gateway, is_verified_by_admin, verified_at,
			 refund_amount, refunded_at, refund_transaction_id, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := s.db.Exec(ctx, query,
		p.ID, p.EnrollmentID, p.StudentID, p.CourseID, p.Amount, p.Currency, p.Status,
		p.PaymentMethod, p.TransactionID, p.PaymentGateway, p.IsVerifiedByAdmin, p.VerifiedAt,
		p.RefundAmount, p.RefundedAt, p.RefundTransactionID, p.CreatedAt, p.UpdatedAt, p.Version)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return fmt.Errorf("%w: duplicate payment or transaction id", errs.ErrConflict)
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetPayment(ctx context.Context, id string) (model.Payment, error) {
	return s.getPayment(ctx, "id", id)
}

func (s *PostgresStorage) GetPaymentByTransactionID(ctx context.Context, txID string) (model.Payment, error) {
	return s.getPayment(ctx, "transaction_id", txID)
}

func (s *PostgresStorage) getPayment(ctx context.Context, column, value string) (model.Payment, error) {
	query := fmt.Sprintf(`
		SELECT id, enrollment_id, student_id, course_id, amount, currency, status,
		       payment_method, transaction_id, payment_gateway, is_verified_by_admin, verified_at,
		       refund_amount, refunded_at, refund_transaction_id, created_at, updated_at, version
		FROM payments
		WHERE %s = $1`, column)

	var p model.Payment
	err := s.db.QueryRow(ctx, query, value).Scan(
		&p.ID, &p.EnrollmentID, &p.StudentID, &p.CourseID, &p.Amount, &p.Currency, &p.Status,
		&p.PaymentMethod, &p.TransactionID, &p.PaymentGateway, &p.IsVerifiedByAdmin, &p.VerifiedAt,
		&p.RefundAmount, &p.RefundedAt, &p.RefundTransactionID, &p.CreatedAt, &p.UpdatedAt, &p.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, errs.ErrNotFound
		}
		return model.Payment{}, fmt.Errorf("get payment: %w", err)
	}

	return p, nil
}

func (s *PostgresStorage) UpdatePayment(ctx context.Context, p model.Payment) error {
	cmdTag, err := s.db.Exec(ctx, updatePaymentQuery, paymentUpdateArgs(p)...)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return s.staleOrMissing(ctx, "payments", p.ID)
	}

	return nil
}

// CreatePaymentAndEnrollment inserts a new payment and attaches it to its
// enrollment in one transaction.
func (s *PostgresStorage) CreatePaymentAndEnrollment(ctx context.Context, p model.Payment, e model.Enrollment) error {
	const insertPaymentQuery = `
		INSERT INTO payments
			(id, enrollment_id, student_id, course_id, amount, currency, status,
			 payment_method, transaction_id, payment_gateway, is_verified_by_admin, verified_at,
			 refund_amount, refunded_at, refund_transaction_id, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	const updateEnrollmentQuery = `
		UPDATE enrollments
		SET payment_status = $1, payment_ref = $2, last_accessed_at = $3, version = version + 1
		WHERE id = $4 AND version = $5`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertPaymentQuery,
		p.ID, p.EnrollmentID, p.StudentID, p.CourseID, p.Amount, p.Currency, p.Status,
		p.PaymentMethod, p.TransactionID, p.PaymentGateway, p.IsVerifiedByAdmin, p.VerifiedAt,
		p.RefundAmount, p.RefundedAt, p.RefundTransactionID, p.CreatedAt, p.UpdatedAt, p.Version)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return fmt.Errorf("%w: duplicate payment or transaction id", errs.ErrConflict)
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, updateEnrollmentQuery,
		e.PaymentStatus, e.PaymentRef, e.LastAccessedAt, e.ID, e.Version)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return s.staleOrMissing(ctx, "enrollments", e.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// UpdatePaymentAndEnrollment applies a payment update together with the
// mirrored enrollment fields in one transaction. Either both rows move or
// neither does.
func (s *PostgresStorage) UpdatePaymentAndEnrollment(ctx context.Context, p model.Payment, e model.Enrollment) error {
	const updateEnrollmentQuery = `
		UPDATE enrollments
		SET completed_modules = $1, overall_progress = $2, status = $3,
		    payment_status = $4, payment_ref = $5, last_accessed_at = $6,
		    version = version + 1
		WHERE id = $7 AND version = $8`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, updatePaymentQuery, paymentUpdateArgs(p)...)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return s.staleOrMissing(ctx, "payments", p.ID)
	}

	cmdTag, err = tx.Exec(ctx, updateEnrollmentQuery,
		e.CompletedModules, e.OverallProgress, e.Status,
		e.PaymentStatus, e.PaymentRef, e.LastAccessedAt,
		e.ID, e.Version)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return s.staleOrMissing(ctx, "enrollments", e.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

const updatePaymentQuery = `
	UPDATE payments
	SET status = $1, is_verified_by_admin = $2, verified_at = $3,
	    refund_amount = $4, refunded_at = $5, refund_transaction_id = $6,
	    updated_at = $7, version = version + 1
	WHERE id = $8 AND version = $9`

func paymentUpdateArgs(p model.Payment) []any {
	return []any{
		p.Status, p.IsVerifiedByAdmin, p.VerifiedAt,
		p.RefundAmount, p.RefundedAt, p.RefundTransactionID,
		p.UpdatedAt, p.ID, p.Version,
	}
}

// staleOrMissing tells a lost version race apart from a row that does not
// exist at all.
func (s *PostgresStorage) staleOrMissing(ctx context.Context, table, id string) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE id = $1`, table)

	var one int
	err := s.db.QueryRow(ctx, query, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check %s row: %w", table, err)
	}

	return errs.ErrConflict
}
