package models

import (
	"time"

	"github.com/google/uuid"
)

// FocusSession is one timed deep-work block, duration in minutes
type FocusSession struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	DurationMinutes int       `json:"duration"`
	StartedAt       time.Time `json:"started_at"`
}
