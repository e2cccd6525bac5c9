package database

import (
	"context"
	"fmt"

	"github.com/flowloop/momentum-api/internal/models"
	"github.com/google/uuid"
)

// HabitRepository handles habit and habit-completion database operations
type HabitRepository struct {
	db *DB
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// GetByUserID retrieves all habits for a user
func (r *HabitRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error) {
	query := `
		SELECT id, user_id, title, category, streak, frequency
		FROM habits
		WHERE user_id = $1
		ORDER BY streak DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		habit := &models.Habit{}
		err := rows.Scan(
			&habit.ID,
			&habit.UserID,
			&habit.Title,
			&habit.Category,
			&habit.Streak,
			&habit.Frequency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habits: %w", err)
	}

	return habits, nil
}

// GetRecentCompletions retrieves the most recent habit completions for a
// user across all of their habits
func (r *HabitRepository) GetRecentCompletions(ctx context.Context, userID uuid.UUID, limit int) ([]*models.HabitCompletion, error) {
	query := `
		SELECT hc.habit_id, hc.completed_date
		FROM habit_completions hc
		JOIN habits h ON h.id = hc.habit_id
		WHERE h.user_id = $1
		ORDER BY hc.completed_date DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit completions: %w", err)
	}
	defer rows.Close()

	var completions []*models.HabitCompletion
	for rows.Next() {
		completion := &models.HabitCompletion{}
		if err := rows.Scan(&completion.HabitID, &completion.CompletedDate); err != nil {
			return nil, fmt.Errorf("failed to scan habit completion: %w", err)
		}
		completions = append(completions, completion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habit completions: %w", err)
	}

	return completions, nil
}
