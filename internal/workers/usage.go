package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/flowloop/momentum-api/internal/database"
	"github.com/flowloop/momentum-api/internal/queue"
)

// UsageRollup consumes usage events and maintains per-day usage counters
type UsageRollup struct {
	usageRepo database.UsageRepositoryInterface
	logger    *zap.Logger
}

// NewUsageRollup creates a new usage rollup worker
func NewUsageRollup(usageRepo database.UsageRepositoryInterface, logger *zap.Logger) *UsageRollup {
	return &UsageRollup{
		usageRepo: usageRepo,
		logger:    logger,
	}
}

// ProcessJob dispatches a queue job to the matching rollup operation
func (w *UsageRollup) ProcessJob(ctx context.Context, job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeUsageEvent:
		return w.processUsageEvent(ctx, job)
	case queue.JobTypeUsageRollup:
		return w.processRollup(ctx, job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (w *UsageRollup) processUsageEvent(ctx context.Context, job *queue.Job) error {
	if job.Service == "" {
		return fmt.Errorf("service is required for usage event job")
	}

	occurredAt := job.CreatedAt
	if job.OccurredAt != nil {
		occurredAt = *job.OccurredAt
	}
	day := occurredAt.UTC().Format("2006-01-02")

	if err := w.usageRepo.IncrementDaily(ctx, job.UserID, job.Service, day); err != nil {
		return fmt.Errorf("failed to increment daily usage: %w", err)
	}

	w.logger.Debug("usage_event_processed",
		zap.String("user_id", job.UserID.String()),
		zap.String("service", job.Service),
		zap.String("day", day),
	)

	return nil
}

func (w *UsageRollup) processRollup(ctx context.Context, job *queue.Job) error {
	start := time.Now()

	if err := w.usageRepo.RebuildDaily(ctx, job.UserID); err != nil {
		return fmt.Errorf("failed to rebuild daily usage: %w", err)
	}

	w.logger.Info("usage_rollup_completed",
		zap.String("user_id", job.UserID.String()),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

// Run consumes jobs from the queue until the context is cancelled.
// Jobs that fail are retried up to their MaxRetries, then dead-lettered.
func (w *UsageRollup) Run(ctx context.Context, jobQueue queue.JobQueue, prefetch int) error {
	msgs, errs, err := jobQueue.Consume(ctx, prefetch)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case consumeErr, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Error("queue_consume_error", zap.Error(consumeErr))
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handleMessage(ctx, jobQueue, msg)
		}
	}
}

func (w *UsageRollup) handleMessage(ctx context.Context, jobQueue queue.JobQueue, msg *queue.Message) {
	job := msg.Job

	if job.IsExpired() {
		w.logger.Warn("job_expired",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
		)
		if err := msg.Nack(false); err != nil {
			w.logger.Error("nack_failed", zap.Error(err))
		}
		return
	}

	if err := w.ProcessJob(ctx, job); err != nil {
		w.logger.Error("job_failed",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
			zap.Int("retry_count", job.RetryCount),
			zap.Error(err),
		)

		if job.CanRetry() {
			job.IncrementRetry()
			// Re-enqueue a fresh copy, then drop the original
			if enqErr := jobQueue.Enqueue(ctx, job); enqErr != nil {
				w.logger.Error("requeue_failed", zap.Error(enqErr))
				if nackErr := msg.Nack(true); nackErr != nil {
					w.logger.Error("nack_failed", zap.Error(nackErr))
				}
				return
			}
		}

		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Error("nack_failed", zap.Error(nackErr))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		w.logger.Error("ack_failed", zap.Error(err))
	}
}
