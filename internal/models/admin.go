package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a reviewer account. Created out-of-band by cmd/createadmin;
// read-only in normal operation.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
