package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority represents the urgency assigned to a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task is a single actionable item owned by one user
type Task struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Title     string       `json:"title"`
	Completed bool         `json:"completed"`
	Priority  TaskPriority `json:"priority"`
	DueDate   *time.Time   `json:"due_date,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}
