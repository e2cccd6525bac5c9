package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flowloop/momentum-api/internal/models"
	"github.com/google/uuid"
)

// QuestRepository handles quest and player profile database operations
type QuestRepository struct {
	db *DB
}

// NewQuestRepository creates a new quest repository
func NewQuestRepository(db *DB) *QuestRepository {
	return &QuestRepository{db: db}
}

// GetActiveByUserID retrieves the user's incomplete quests
func (r *QuestRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Quest, error) {
	query := `
		SELECT id, user_id, title, current_progress, target_value, completed
		FROM quests
		WHERE user_id = $1 AND completed = false
		ORDER BY current_progress DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quests: %w", err)
	}
	defer rows.Close()

	var quests []*models.Quest
	for rows.Next() {
		quest := &models.Quest{}
		err := rows.Scan(
			&quest.ID,
			&quest.UserID,
			&quest.Title,
			&quest.CurrentProgress,
			&quest.TargetValue,
			&quest.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quest: %w", err)
		}
		quests = append(quests, quest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quests: %w", err)
	}

	return quests, nil
}

// GetPlayerProfile retrieves the user's player profile, or nil when the
// user has not created one yet
func (r *QuestRepository) GetPlayerProfile(ctx context.Context, userID uuid.UUID) (*models.PlayerProfile, error) {
	profile := &models.PlayerProfile{}
	query := `
		SELECT user_id, level, experience_points
		FROM player_profiles
		WHERE user_id = $1
	`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Level,
		&profile.ExperiencePoints,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player profile: %w", err)
	}

	return profile, nil
}
