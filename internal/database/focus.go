package database

import (
	"context"
	"fmt"

	"github.com/flowloop/momentum-api/internal/models"
	"github.com/google/uuid"
)

// FocusRepository handles focus session database operations
type FocusRepository struct {
	db *DB
}

// NewFocusRepository creates a new focus session repository
func NewFocusRepository(db *DB) *FocusRepository {
	return &FocusRepository{db: db}
}

// GetRecentByUserID retrieves the most recently started focus sessions for a user
func (r *FocusRepository) GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.FocusSession, error) {
	query := `
		SELECT id, user_id, duration, started_at
		FROM focus_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.FocusSession
	for rows.Next() {
		session := &models.FocusSession{}
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.DurationMinutes,
			&session.StartedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan focus session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating focus sessions: %w", err)
	}

	return sessions, nil
}
