package emaillogs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ipca-wpd/backend/internal/models"
)

// Repository handles email_logs persistence.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository creates an email logs repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

// Record writes one delivery attempt to the audit log. Logging failures are
// swallowed: the audit trail must never fail the email operation itself.
func (r *Repository) Record(ctx context.Context, registrantID *uuid.UUID, emailType, recipient, subject string, sendErr error) {
	status := models.EmailLogStatusSent
	errMsg := ""
	var sentAt *time.Time
	if sendErr != nil {
		status = models.EmailLogStatusFailed
		errMsg = sendErr.Error()
	} else {
		now := time.Now()
		sentAt = &now
	}
	const q = `INSERT INTO email_logs (registrant_id, email_type, recipient_email, subject, status, sent_at, error_message)
		VALUES ($1, $2, $3, NULLIF($4,''), $5, $6, NULLIF($7,''))`
	if _, err := r.pool.Exec(ctx, q, registrantID, emailType, recipient, subject, status, sentAt, errMsg); err != nil {
		r.logger.Warn("email log write failed", zap.String("recipient", recipient), zap.Error(err))
	}
}

// List returns email logs, newest first.
func (r *Repository) List(ctx context.Context) ([]*models.EmailLog, error) {
	const q = `SELECT id, registrant_id, email_type, recipient_email, COALESCE(subject,''), status, sent_at, COALESCE(error_message,''), created_at
		FROM email_logs
		ORDER BY created_at DESC
		LIMIT 500`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.EmailLog
	for rows.Next() {
		var el models.EmailLog
		if err := rows.Scan(&el.ID, &el.RegistrantID, &el.EmailType, &el.RecipientEmail, &el.Subject, &el.Status, &el.SentAt, &el.ErrorMessage, &el.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &el)
	}
	return list, rows.Err()
}
