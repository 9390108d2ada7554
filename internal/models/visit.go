package models

import (
	"time"

	"github.com/google/uuid"
)

// VisitDateLayout is the calendar-day format used for visit bucketing.
const VisitDateLayout = "2006-01-02"

// Visit records one distinct client visit per calendar day. Uniqueness of
// (visitor_id, visit_date) is enforced by the database.
type Visit struct {
	ID        uuid.UUID `json:"id"`
	VisitorID string    `json:"visitorId"`
	VisitDate string    `json:"dateVisited"` // YYYY-MM-DD
	VisitedAt time.Time `json:"timestamp"`
}
