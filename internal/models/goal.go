package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a long-running objective with a progress percentage
type Goal struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Title      string     `json:"title"`
	Progress   int        `json:"progress"`
	Completed  bool       `json:"completed"`
	Category   string     `json:"category"`
	TargetDate *time.Time `json:"target_date,omitempty"`
}
