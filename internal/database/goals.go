package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flowloop/momentum-api/internal/models"
	"github.com/google/uuid"
)

// GoalRepository handles goal database operations
type GoalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// GetByUserID retrieves all goals for a user
func (r *GoalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error) {
	query := `
		SELECT id, user_id, title, progress, completed, category, target_date
		FROM goals
		WHERE user_id = $1
		ORDER BY target_date ASC NULLS LAST
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		goal := &models.Goal{}
		var targetDate sql.NullTime

		err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Title,
			&goal.Progress,
			&goal.Completed,
			&goal.Category,
			&targetDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}

		if targetDate.Valid {
			goal.TargetDate = &targetDate.Time
		}

		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}
