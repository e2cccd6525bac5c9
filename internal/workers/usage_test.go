package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flowloop/momentum-api/internal/models"
	"github.com/flowloop/momentum-api/internal/queue"
)

type mockUsageRepo struct {
	recordFunc    func(ctx context.Context, userID uuid.UUID, service string) error
	incrementFunc func(ctx context.Context, userID uuid.UUID, service string, day string) error
	rebuildFunc   func(ctx context.Context, userID uuid.UUID) error

	increments []incrementCall
	rebuilds   []uuid.UUID
}

type incrementCall struct {
	userID  uuid.UUID
	service string
	day     string
}

func (m *mockUsageRepo) Record(ctx context.Context, userID uuid.UUID, service string) error {
	if m.recordFunc != nil {
		return m.recordFunc(ctx, userID, service)
	}
	return nil
}

func (m *mockUsageRepo) IncrementDaily(ctx context.Context, userID uuid.UUID, service string, day string) error {
	m.increments = append(m.increments, incrementCall{userID, service, day})
	if m.incrementFunc != nil {
		return m.incrementFunc(ctx, userID, service, day)
	}
	return nil
}

func (m *mockUsageRepo) RebuildDaily(ctx context.Context, userID uuid.UUID) error {
	m.rebuilds = append(m.rebuilds, userID)
	if m.rebuildFunc != nil {
		return m.rebuildFunc(ctx, userID)
	}
	return nil
}

func (m *mockUsageRepo) GetDailyByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.DailyUsage, error) {
	return nil, nil
}

func TestUsageRollup_ProcessJob_UsageEvent(t *testing.T) {
	t.Parallel()

	repo := &mockUsageRepo{}
	worker := NewUsageRollup(repo, zap.NewNop())

	userID := uuid.New()
	occurredAt := time.Date(2026, 3, 14, 23, 45, 0, 0, time.UTC)
	job := queue.NewUsageEvent(userID, models.ServiceCrossAnalysis, occurredAt)

	if err := worker.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessJob: %v", err)
	}

	if len(repo.increments) != 1 {
		t.Fatalf("Expected 1 IncrementDaily call, got %d", len(repo.increments))
	}
	call := repo.increments[0]
	if call.userID != userID {
		t.Errorf("Expected user %s, got %s", userID, call.userID)
	}
	if call.service != models.ServiceCrossAnalysis {
		t.Errorf("Expected service %s, got %s", models.ServiceCrossAnalysis, call.service)
	}
	if call.day != "2026-03-14" {
		t.Errorf("Expected day 2026-03-14, got %s", call.day)
	}
}

func TestUsageRollup_ProcessJob_UsageEventMissingService(t *testing.T) {
	t.Parallel()

	worker := NewUsageRollup(&mockUsageRepo{}, zap.NewNop())

	job := queue.NewJob(queue.JobTypeUsageEvent, uuid.New())

	if err := worker.ProcessJob(context.Background(), job); err == nil {
		t.Error("Expected error for usage event without service")
	}
}

func TestUsageRollup_ProcessJob_UsageEventFallsBackToCreatedAt(t *testing.T) {
	t.Parallel()

	repo := &mockUsageRepo{}
	worker := NewUsageRollup(repo, zap.NewNop())

	job := queue.NewJob(queue.JobTypeUsageEvent, uuid.New())
	job.Service = models.ServiceCrossAnalysis
	job.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := worker.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessJob: %v", err)
	}

	if len(repo.increments) != 1 || repo.increments[0].day != "2026-01-02" {
		t.Errorf("Expected day derived from CreatedAt, got %+v", repo.increments)
	}
}

func TestUsageRollup_ProcessJob_Rollup(t *testing.T) {
	t.Parallel()

	repo := &mockUsageRepo{}
	worker := NewUsageRollup(repo, zap.NewNop())

	userID := uuid.New()
	job := queue.NewJob(queue.JobTypeUsageRollup, userID)

	if err := worker.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessJob: %v", err)
	}

	if len(repo.rebuilds) != 1 || repo.rebuilds[0] != userID {
		t.Errorf("Expected RebuildDaily for %s, got %v", userID, repo.rebuilds)
	}
}

func TestUsageRollup_ProcessJob_RollupError(t *testing.T) {
	t.Parallel()

	repo := &mockUsageRepo{
		rebuildFunc: func(context.Context, uuid.UUID) error {
			return errors.New("db down")
		},
	}
	worker := NewUsageRollup(repo, zap.NewNop())

	job := queue.NewJob(queue.JobTypeUsageRollup, uuid.New())

	if err := worker.ProcessJob(context.Background(), job); err == nil {
		t.Error("Expected error when rebuild fails")
	}
}

func TestUsageRollup_ProcessJob_UnknownType(t *testing.T) {
	t.Parallel()

	worker := NewUsageRollup(&mockUsageRepo{}, zap.NewNop())

	job := queue.NewJob(queue.JobType("mystery"), uuid.New())

	if err := worker.ProcessJob(context.Background(), job); err == nil {
		t.Error("Expected error for unknown job type")
	}
}
