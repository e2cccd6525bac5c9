package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flowloop/momentum-api/internal/models"
	"github.com/google/uuid"
)

// JournalRepository handles journal entry database operations
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// GetRecentByUserID retrieves the most recent journal entries for a user
func (r *JournalRepository) GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, mood, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		entry := &models.JournalEntry{}
		var mood sql.NullString

		if err := rows.Scan(&entry.ID, &entry.UserID, &mood, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		if mood.Valid {
			entry.Mood = &mood.String
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}

	return entries, nil
}
