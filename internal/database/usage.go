package database

import (
	"context"
	"fmt"
	"time"

	"github.com/flowloop/momentum-api/internal/models"
	"github.com/google/uuid"
)

// UsageRepository handles the append-only AI request audit log and the
// daily usage rollups maintained by the worker
type UsageRepository struct {
	db *DB
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// Record inserts one audit row. The table is insert-only; there is no
// update or delete path anywhere in the codebase.
func (r *UsageRepository) Record(ctx context.Context, userID uuid.UUID, service string) error {
	query := `
		INSERT INTO ai_requests (id, user_id, service, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, service, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record ai request: %w", err)
	}

	return nil
}

// IncrementDaily upserts the per-day counter for one (user, service, day)
func (r *UsageRepository) IncrementDaily(ctx context.Context, userID uuid.UUID, service string, day string) error {
	query := `
		INSERT INTO ai_usage_daily (user_id, service, day, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (user_id, service, day)
		DO UPDATE SET count = ai_usage_daily.count + 1
	`

	_, err := r.db.ExecContext(ctx, query, userID, service, day)
	if err != nil {
		return fmt.Errorf("failed to increment daily usage: %w", err)
	}

	return nil
}

// RebuildDaily recomputes a user's daily counters from the audit log.
// Used by the rollup worker to repair drift after missed events.
func (r *UsageRepository) RebuildDaily(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO ai_usage_daily (user_id, service, day, count)
		SELECT user_id, service, to_char(created_at, 'YYYY-MM-DD'), COUNT(*)
		FROM ai_requests
		WHERE user_id = $1
		GROUP BY user_id, service, to_char(created_at, 'YYYY-MM-DD')
		ON CONFLICT (user_id, service, day)
		DO UPDATE SET count = EXCLUDED.count
	`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to rebuild daily usage: %w", err)
	}

	return nil
}

// GetDailyByUserID retrieves a user's daily usage counts, most recent first
func (r *UsageRepository) GetDailyByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.DailyUsage, error) {
	query := `
		SELECT user_id, service, day, count
		FROM ai_usage_daily
		WHERE user_id = $1
		ORDER BY day DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var usage []*models.DailyUsage
	for rows.Next() {
		u := &models.DailyUsage{}
		if err := rows.Scan(&u.UserID, &u.Service, &u.Day, &u.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		usage = append(usage, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily usage: %w", err)
	}

	return usage, nil
}
