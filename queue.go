/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/config"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	redis_db "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/redis-db"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// TaskPaymentStatusUpdate is the asynq task type carrying a model.StatusUpdate.
const TaskPaymentStatusUpdate = "payment:status_update"

// Queue hands status updates from settlement processes to the workers.
type Queue struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
	queueName string
	maxRetry  int
}

// RedisConnOpt builds the asynq connection options from the configured redis DSN.
func RedisConnOpt(conf *config.Configuration) (asynq.RedisClientOpt, error) {
	addresses := redis_db.SplitAddresses(conf.Redis.Dns)
	if len(addresses) == 0 {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis DNS is required for the queue")
	}
	redisOption, err := redis_db.ParseRedisURL(addresses[0], conf.Redis.SkipTLSVerify)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}
	return asynq.RedisClientOpt{Addr: redisOption.Addr, Password: redisOption.Password, DB: redisOption.DB, TLSConfig: redisOption.TLSConfig}, nil
}

func NewQueue(conf *config.Configuration) (*Queue, error) {
	opt, err := RedisConnOpt(conf)
	if err != nil {
		return nil, err
	}
	return &Queue{
		Client:    asynq.NewClient(opt),
		Inspector: asynq.NewInspector(opt),
		queueName: conf.Queue.StatusUpdateQueue,
		maxRetry:  conf.Queue.MaxRetry,
	}, nil
}

func statusUpdateTaskID(update model.StatusUpdate) string {
	return fmt.Sprintf("%s:%s", update.PaymentID, update.Status)
}

// EnqueueStatusUpdate queues update. While an identical update is still pending, scheduled,
// active or retrying it returns that task with asynq.ErrTaskIDConflict. An identical update that
// was archived or kept as completed is replaced by a fresh task.
func (q *Queue) EnqueueStatusUpdate(ctx context.Context, update model.StatusUpdate) (*asynq.TaskInfo, error) {
	payload, err := update.Marshal()
	if err != nil {
		return nil, err
	}
	taskID := statusUpdateTaskID(update)
	task := asynq.NewTask(TaskPaymentStatusUpdate, payload,
		asynq.TaskID(taskID),
		asynq.Queue(q.queueName),
		asynq.MaxRetry(q.maxRetry),
	)
	info, err := q.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		info, err = q.replaceFinishedTask(ctx, task, taskID)
	}
	if err != nil {
		return info, err
	}
	logrus.WithFields(logrus.Fields{"payment_id": update.PaymentID, "status": update.Status, "task_id": info.ID}).Info("status update enqueued")
	return info, nil
}

func (q *Queue) replaceFinishedTask(ctx context.Context, task *asynq.Task, taskID string) (*asynq.TaskInfo, error) {
	existing, err := q.Inspector.GetTaskInfo(q.queueName, taskID)
	switch {
	case errors.Is(err, asynq.ErrTaskNotFound):
		// finished and removed between the two calls
	case err != nil:
		return nil, err
	case existing.State == asynq.TaskStateArchived || existing.State == asynq.TaskStateCompleted:
		if err := q.Inspector.DeleteTask(q.queueName, taskID); err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"task_id":  taskID,
			"state":    existing.State.String(),
			"last_err": existing.LastErr,
		}).Warn("replacing finished status update task")
	default:
		return existing, asynq.ErrTaskIDConflict
	}
	return q.Client.EnqueueContext(ctx, task)
}

func (q *Queue) Close() error {
	if err := q.Inspector.Close(); err != nil {
		return err
	}
	return q.Client.Close()
}

// EnqueueStatusUpdate checks that the payment exists and the status is known, then queues the update
// for the workers. The transition itself is validated when the task runs.
func (s *ResourceServer) EnqueueStatusUpdate(ctx context.Context, update model.StatusUpdate) error {
	if s.queue == nil {
		return apierror.NewAPIError(apierror.ErrStorageUnavailable, "Status update queue is not configured", nil)
	}
	if _, ok := model.ParsePaymentStatus(string(update.Status)); !ok {
		return apierror.NewAPIError(apierror.ErrBadRequest, fmt.Sprintf("Unknown payment status '%s'", update.Status), nil)
	}
	if _, err := s.datasource.GetPayment(ctx, update.PaymentID); err != nil {
		return err
	}
	_, err := s.queue.EnqueueStatusUpdate(ctx, update)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return apierror.NewAPIError(apierror.ErrStorageUnavailable, "Failed to enqueue status update", err)
	}
	return nil
}

// HandleStatusUpdateTask is the worker handler for TaskPaymentStatusUpdate. Invalid transitions
// are not retried.
func (s *ResourceServer) HandleStatusUpdateTask(ctx context.Context, t *asynq.Task) error {
	var update model.StatusUpdate
	if err := json.Unmarshal(t.Payload(), &update); err != nil {
		logrus.WithError(err).Error("malformed status update task")
		return fmt.Errorf("decoding status update: %v: %w", err, asynq.SkipRetry)
	}

	_, err := s.UpdatePaymentStatus(ctx, update.PaymentID, update.Status)
	if err == nil {
		return nil
	}
	if apierror.HasCode(err, apierror.ErrInvalidStatusTransition) || apierror.HasCode(err, apierror.ErrNotFound) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}
