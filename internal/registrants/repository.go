package registrants

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipca-wpd/backend/internal/models"
)

const registrantColumns = `id, annotation, name, COALESCE(company_name,''), email, mobile,
	is_verified, verification_sent_at, last_reminder_sent_at, COALESCE(passcode,''),
	video_url, storage_key, video_uploaded_at, status, is_approved, approved_by, approved_at,
	certificate_url, created_at, updated_at`

// Repository handles registrant persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrants repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistrant(row rowScanner) (*models.Registrant, error) {
	var r models.Registrant
	err := row.Scan(&r.ID, &r.Annotation, &r.Name, &r.CompanyName, &r.Email, &r.Mobile,
		&r.IsVerified, &r.VerificationSentAt, &r.LastReminderSentAt, &r.Passcode,
		&r.VideoURL, &r.StorageKey, &r.VideoUploadedAt, &r.Status, &r.IsApproved,
		&r.ApprovedBy, &r.ApprovedAt, &r.CertificateURL, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertParams are the fields written on registration.
type UpsertParams struct {
	Annotation  string
	Name        string
	CompanyName string
	Email       string
	Mobile      string
	Passcode    string
}

// Upsert creates a registrant or, when the email already exists, overwrites
// profile fields, the passcode, and the verification timestamps. It never
// touches video or approval state, so a re-registration cannot revoke an
// approval or orphan an uploaded video.
func (r *Repository) Upsert(ctx context.Context, p UpsertParams) (*models.Registrant, error) {
	const q = `INSERT INTO registrants (annotation, name, company_name, email, mobile,
			is_verified, verification_sent_at, last_reminder_sent_at, passcode, status)
		VALUES ($1, $2, NULLIF($3,''), $4, $5, FALSE, NOW(), NOW(), $6, 'pending')
		ON CONFLICT (email) DO UPDATE SET
			annotation            = EXCLUDED.annotation,
			name                  = EXCLUDED.name,
			company_name          = EXCLUDED.company_name,
			mobile                = EXCLUDED.mobile,
			is_verified           = FALSE,
			verification_sent_at  = NOW(),
			last_reminder_sent_at = NOW(),
			passcode              = EXCLUDED.passcode,
			updated_at            = NOW()
		RETURNING ` + registrantColumns
	return scanRegistrant(r.pool.QueryRow(ctx, q, p.Annotation, p.Name, p.CompanyName, p.Email, p.Mobile, p.Passcode))
}

// GetByEmail returns a registrant by email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Registrant, error) {
	reg, err := scanRegistrant(r.pool.QueryRow(ctx,
		`SELECT `+registrantColumns+` FROM registrants WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// GetByID returns a registrant by ID, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registrant, error) {
	reg, err := scanRegistrant(r.pool.QueryRow(ctx,
		`SELECT `+registrantColumns+` FROM registrants WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// MarkVerified sets is_verified for a registrant.
func (r *Repository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE registrants SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

// ReplaceVideo stores the new video URL and storage key, stamps the upload
// time, and resets approval state. Any prior approval is revoked so a stale
// certificate never stays attached to a replaced video.
func (r *Repository) ReplaceVideo(ctx context.Context, id uuid.UUID, videoURL, storageKey string) (*models.Registrant, error) {
	const q = `UPDATE registrants SET
			video_url         = $2,
			storage_key       = $3,
			video_uploaded_at = NOW(),
			is_approved       = FALSE,
			approved_by       = NULL,
			approved_at       = NULL,
			certificate_url   = NULL,
			status            = 'pending',
			updated_at        = NOW()
		WHERE id = $1
		RETURNING ` + registrantColumns
	reg, err := scanRegistrant(r.pool.QueryRow(ctx, q, id, videoURL, storageKey))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// ListSubmissions returns registrants with a video, most recent upload first.
func (r *Repository) ListSubmissions(ctx context.Context) ([]models.SubmissionSummary, error) {
	const q = `SELECT id, name, email, COALESCE(company_name,''), mobile, video_url,
			is_verified, is_approved, certificate_url
		FROM registrants
		WHERE video_url IS NOT NULL
		ORDER BY video_uploaded_at DESC NULLS LAST`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.SubmissionSummary
	for rows.Next() {
		var s models.SubmissionSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.CompanyName, &s.Mobile, &s.VideoURL,
			&s.IsVerified, &s.IsApproved, &s.CertificateURL); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Approve records the approval decision. A no-op when already approved, so a
// re-approval keeps the original approver and timestamp.
func (r *Repository) Approve(ctx context.Context, id, adminID uuid.UUID) error {
	const q = `UPDATE registrants SET
			is_approved = TRUE,
			status      = 'approved',
			approved_by = $2,
			approved_at = NOW(),
			updated_at  = NOW()
		WHERE id = $1 AND is_approved = FALSE`
	_, err := r.pool.Exec(ctx, q, id, adminID)
	return err
}

// SetCertificateURL stores the latest generated certificate URL.
func (r *Repository) SetCertificateURL(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE registrants SET certificate_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	return err
}

// ListWithoutVideo returns registrants that have not uploaded a video yet,
// for the deadline reminder campaign.
func (r *Repository) ListWithoutVideo(ctx context.Context) ([]models.Registrant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+registrantColumns+` FROM registrants WHERE video_url IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Registrant
	for rows.Next() {
		reg, err := scanRegistrant(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *reg)
	}
	return list, rows.Err()
}

// MarkReminderSent stamps last_reminder_sent_at.
func (r *Repository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE registrants SET last_reminder_sent_at = $2, updated_at = NOW() WHERE id = $1`, id, at)
	return err
}
