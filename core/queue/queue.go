package queue

import (
	"campusflow/core/config"
	"campusflow/core/logger"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeTaskReminder  = "reminder:task"
	TypeEventReminder = "reminder:event"
	TypePush          = "push:send"
	TypeDailyDigest   = "digest:daily"

	QueueDefault  = "default"
	QueueCritical = "critical"
)

// Scheduler enqueues jobs under stable ids so they can be replaced or cancelled.
type Scheduler interface {
	Enqueue(ctx context.Context, kind string, payload any) error
	Schedule(ctx context.Context, kind, id string, payload any, at time.Time) error
	Cancel(ctx context.Context, id string) error
}

type TaskReminderPayload struct {
	TaskID string `json:"task_id"`
}

type EventReminderPayload struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// PushPayload references an in-app notification row; the worker delivers it.
type PushPayload struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
}

func TaskReminderID(taskID string) string {
	return "task:" + taskID
}

func EventReminderID(eventID, userID string) string {
	return "event:" + eventID + ":" + userID
}

type AsynqScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

func NewAsynqScheduler(cfg config.RedisConfig) *AsynqScheduler {
	opt := RedisOpt(cfg)
	return &AsynqScheduler{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
	}
}

func (s *AsynqScheduler) Close() error {
	_ = s.inspector.Close()
	return s.client.Close()
}

func (s *AsynqScheduler) Enqueue(ctx context.Context, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, asynq.NewTask(kind, body), asynq.Queue(QueueCritical), asynq.MaxRetry(3))
	if err != nil {
		logger.Error("AsynqScheduler:Enqueue", "kind", kind, "error", err)
	}
	return err
}

// Schedule replaces any job already queued under id.
func (s *AsynqScheduler) Schedule(ctx context.Context, kind, id string, payload any, at time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := s.Cancel(ctx, id); err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, asynq.NewTask(kind, body),
		asynq.TaskID(id),
		asynq.ProcessAt(at),
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Retention(time.Hour),
	)
	if err != nil {
		logger.Error("AsynqScheduler:Schedule", "kind", kind, "id", id, "error", err)
		return err
	}
	logger.Debug("AsynqScheduler:Schedule", "kind", kind, "id", id, "at", at)
	return nil
}

func (s *AsynqScheduler) Cancel(_ context.Context, id string) error {
	err := s.inspector.DeleteTask(QueueDefault, id)
	if err == nil || stdErrors.Is(err, asynq.ErrTaskNotFound) || stdErrors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	logger.Error("AsynqScheduler:Cancel", "id", id, "error", err)
	return fmt.Errorf("cancel job %s: %w", id, err)
}

// Decode unmarshals a job payload.
func Decode[T any](t *asynq.Task) (T, error) {
	var v T
	if err := json.Unmarshal(t.Payload(), &v); err != nil {
		return v, fmt.Errorf("decode %s payload: %w: %w", t.Type(), err, asynq.SkipRetry)
	}
	return v, nil
}
