package models

import (
	"time"

	"github.com/google/uuid"
)

// Habit is a recurring practice the user tracks
type Habit struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Streak    int       `json:"streak"`
	Frequency string    `json:"frequency"`
}

// HabitCompletion records one day's completion of a habit
type HabitCompletion struct {
	HabitID       uuid.UUID `json:"habit_id"`
	CompletedDate time.Time `json:"completed_date"`
}
