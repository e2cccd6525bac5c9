package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a dated note with an optional mood label
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Mood      *string   `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
