package models

import (
	"time"

	"github.com/google/uuid"
)

// Annotation is the honorific shown on certificates.
type Annotation string

const (
	AnnotationMr   Annotation = "Mr"
	AnnotationMrs  Annotation = "Mrs"
	AnnotationMs   Annotation = "Ms"
	AnnotationDr   Annotation = "Dr"
	AnnotationDrHC Annotation = "Dr.HC"
)

// ValidAnnotation reports whether s is one of the accepted honorifics.
func ValidAnnotation(s string) bool {
	switch Annotation(s) {
	case AnnotationMr, AnnotationMrs, AnnotationMs, AnnotationDr, AnnotationDrHC:
		return true
	}
	return false
}

// SubmissionStatus is the review state of a registrant's video.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// Registrant is a campaign participant, identified by email.
// Video fields stay null until a video is uploaded; approval fields stay
// null/false until an admin approves.
type Registrant struct {
	ID                 uuid.UUID        `json:"id"`
	Annotation         Annotation       `json:"annotation"`
	Name               string           `json:"name"`
	CompanyName        string           `json:"companyName,omitempty"`
	Email              string           `json:"email"`
	Mobile             string           `json:"mobile"`
	IsVerified         bool             `json:"isVerified"`
	VerificationSentAt *time.Time       `json:"verificationSentAt,omitempty"`
	LastReminderSentAt *time.Time       `json:"lastReminderSentAt,omitempty"`
	Passcode           string           `json:"-"`
	VideoURL           *string          `json:"videoUrl"`
	StorageKey         *string          `json:"-"`
	VideoUploadedAt    *time.Time       `json:"videoUploadedAt,omitempty"`
	Status             SubmissionStatus `json:"status"`
	IsApproved         bool             `json:"isApproved"`
	ApprovedBy         *uuid.UUID       `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time       `json:"approvedAt,omitempty"`
	CertificateURL     *string          `json:"certificateUrl"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// HasVideo reports whether a video has been uploaded.
func (r *Registrant) HasVideo() bool {
	return r.VideoURL != nil && *r.VideoURL != ""
}

// SubmissionSummary is the admin listing projection for registrants with a video.
type SubmissionSummary struct {
	ID             uuid.UUID `json:"_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CompanyName    string    `json:"companyName,omitempty"`
	Mobile         string    `json:"mobile"`
	VideoURL       string    `json:"videoUrl"`
	IsVerified     bool      `json:"isVerified"`
	IsApproved     bool      `json:"isApproved"`
	CertificateURL *string   `json:"certificateUrl"`
}

// StatusView is the self-service status-check projection. The passcode is
// deliberately excluded.
type StatusView struct {
	Annotation      Annotation       `json:"annotation"`
	Name            string           `json:"name"`
	CompanyName     string           `json:"companyName,omitempty"`
	Email           string           `json:"email"`
	Mobile          string           `json:"mobile"`
	IsVerified      bool             `json:"isVerified"`
	VideoURL        *string          `json:"videoUrl"`
	VideoUploadedAt *time.Time       `json:"videoUploadedAt,omitempty"`
	Status          SubmissionStatus `json:"status"`
	IsApproved      bool             `json:"isApproved"`
	ApprovedBy      *uuid.UUID       `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time       `json:"approvedAt,omitempty"`
	CertificateURL  *string          `json:"certificateUrl"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ToStatusView projects a registrant for the status-check response.
func (r *Registrant) ToStatusView() StatusView {
	return StatusView{
		Annotation:      r.Annotation,
		Name:            r.Name,
		CompanyName:     r.CompanyName,
		Email:           r.Email,
		Mobile:          r.Mobile,
		IsVerified:      r.IsVerified,
		VideoURL:        r.VideoURL,
		VideoUploadedAt: r.VideoUploadedAt,
		Status:          r.Status,
		IsApproved:      r.IsApproved,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		CertificateURL:  r.CertificateURL,
		CreatedAt:       r.CreatedAt,
	}
}
