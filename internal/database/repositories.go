package database

import (
	"context"

	"github.com/flowloop/momentum-api/internal/models"
	"github.com/google/uuid"
)

// Repository interfaces for the per-entity read paths. The analysis
// snapshot fetcher depends on these rather than the concrete types so
// tests can substitute in-memory implementations.

// TaskRepositoryInterface defines the task read operations
type TaskRepositoryInterface interface {
	GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Task, error)
}

// HabitRepositoryInterface defines the habit read operations
type HabitRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error)
	GetRecentCompletions(ctx context.Context, userID uuid.UUID, limit int) ([]*models.HabitCompletion, error)
}

// GoalRepositoryInterface defines the goal read operations
type GoalRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error)
}

// JournalRepositoryInterface defines the journal read operations
type JournalRepositoryInterface interface {
	GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.JournalEntry, error)
}

// FocusRepositoryInterface defines the focus session read operations
type FocusRepositoryInterface interface {
	GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.FocusSession, error)
}

// QuestRepositoryInterface defines the quest and player profile read operations
type QuestRepositoryInterface interface {
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Quest, error)
	GetPlayerProfile(ctx context.Context, userID uuid.UUID) (*models.PlayerProfile, error)
}

// UsageRepositoryInterface defines the audit log operations
type UsageRepositoryInterface interface {
	Record(ctx context.Context, userID uuid.UUID, service string) error
	IncrementDaily(ctx context.Context, userID uuid.UUID, service string, day string) error
	RebuildDaily(ctx context.Context, userID uuid.UUID) error
	GetDailyByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.DailyUsage, error)
}

// Ensure concrete types implement the interfaces
var (
	_ TaskRepositoryInterface    = (*TaskRepository)(nil)
	_ HabitRepositoryInterface   = (*HabitRepository)(nil)
	_ GoalRepositoryInterface    = (*GoalRepository)(nil)
	_ JournalRepositoryInterface = (*JournalRepository)(nil)
	_ FocusRepositoryInterface   = (*FocusRepository)(nil)
	_ QuestRepositoryInterface   = (*QuestRepository)(nil)
	_ UsageRepositoryInterface   = (*UsageRepository)(nil)
)
