package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account resolved from a verified bearer token. Rows are
// created lazily the first time a provider subject is seen.
type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	ProviderID *string   `json:"provider_id,omitempty"`
	Name       *string   `json:"name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
