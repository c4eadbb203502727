// Package worker implements background task handlers for queued relay batches.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"refdataservice/internal/refdata"
	"refdataservice/internal/service"
)

// NewRelayHandler returns a function to handle relay tasks.
func NewRelayHandler(svc service.RefDataServiceInterface, logger *zap.SugaredLogger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var batch service.RelayBatch
		if err := json.Unmarshal(t.Payload(), &batch); err != nil {
			logger.Errorw("Invalid task payload", "type", t.Type(), "error", err)
			return fmt.Errorf("decode relay payload: %w", asynq.SkipRetry)
		}

		taskID, _ := asynq.GetTaskID(ctx)
		if err := svc.Relay(ctx, batch); err != nil {
			logger.Errorw("Relay task failed", "task_id", taskID, "error", err)
			if errors.Is(err, refdata.ErrDifferentArrayLength) {
				return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
			}
			return err
		}
		logger.Infow("Relay task completed", "task_id", taskID, "records", batch.Len())
		return nil
	}
}

// TaskEnqueuer is the subset of *asynq.Client used for enqueuing.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

var _ service.Enqueuer = (*AsynqEnqueuer)(nil)

// AsynqEnqueuer is responsible for enqueuing relay tasks with configured retries and timeouts.
type AsynqEnqueuer struct {
	client   TaskEnqueuer
	maxRetry int
	timeout  time.Duration
}

// NewAsynqEnqueuer creates a new AsynqEnqueuer with the given client, retry limit, and task timeout duration.
func NewAsynqEnqueuer(client TaskEnqueuer, maxRetry int, timeout time.Duration) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client:   client,
		maxRetry: maxRetry,
		timeout:  timeout,
	}
}

// EnqueueRelay enqueues the batch and returns the task id.
func (e *AsynqEnqueuer) EnqueueRelay(ctx context.Context, batch service.RelayBatch) (string, error) {
	data, err := json.Marshal(batch)
	if err != nil {
		return "", err
	}
	task := asynq.NewTask(service.TaskTypeRelay, data,
		asynq.TaskID(uuid.New().String()),
		asynq.MaxRetry(e.maxRetry),
		asynq.Timeout(e.timeout),
	)
	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}
