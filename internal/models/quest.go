package models

import "github.com/google/uuid"

// Quest is a gamified challenge with a numeric completion target
type Quest struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	CurrentProgress int       `json:"current_progress"`
	TargetValue     int       `json:"target_value"`
	Completed       bool      `json:"completed"`
}

// PlayerProfile holds the user's gamification state. At most one row per
// user; callers receive nil when the profile has not been created yet.
type PlayerProfile struct {
	UserID           uuid.UUID `json:"user_id"`
	Level            int       `json:"level"`
	ExperiencePoints int       `json:"experience_points"`
}
