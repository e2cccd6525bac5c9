package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCrossAnalysis is the service name recorded for cross-analysis calls
const ServiceCrossAnalysis = "ai-cross-analysis"

// AIRequestRecord is one append-only audit row logging that a user consumed
// one AI request of a given service. There is no update or delete path.
type AIRequestRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Service   string    `json:"service"`
	CreatedAt time.Time `json:"created_at"`
}

// DailyUsage is a per-user, per-service, per-day request count maintained
// by the usage worker from queue events.
type DailyUsage struct {
	UserID  uuid.UUID `json:"user_id"`
	Service string    `json:"service"`
	Day     string    `json:"day"` // YYYY-MM-DD
	Count   int       `json:"count"`
}
