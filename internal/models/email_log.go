package models

import (
	"time"

	"github.com/google/uuid"
)

// Email types recorded in the delivery log.
const (
	EmailTypeVerification = "verification"
	EmailTypeCertificate  = "certificate"
	EmailTypeReminder     = "reminder"
)

// Email delivery outcomes.
const (
	EmailLogStatusSent   = "sent"
	EmailLogStatusFailed = "failed"
)

// EmailLog records one outbound email attempt.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	RegistrantID   *uuid.UUID `json:"registrantId,omitempty"`
	EmailType      string     `json:"emailType"`
	RecipientEmail string     `json:"recipientEmail"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
