package service

import (
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/push"
	"campusflow/core/queue"
	"campusflow/modules/notification/dto"
	"campusflow/modules/notification/entity"
	taskEntity "campusflow/modules/task/entity"
	userEntity "campusflow/modules/user/entity"
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError)
	ClearPushToken(ctx context.Context, id uuid.UUID) *errors.AppError
}

type TaskLookup interface {
	Lookup(ctx context.Context, id uuid.UUID) (*taskEntity.Task, error)
	DueToday(ctx context.Context) (map[uuid.UUID][]taskEntity.Task, error)
}

// EventLookup returns nil when the reminder no longer applies (event gone, not approved, RSVP changed).
type EventLookup interface {
	ReminderTarget(ctx context.Context, eventID, userID uuid.UUID) (*dto.EventReminder, error)
}

type Registrar interface {
	Handle(kind string, fn func(ctx context.Context, t *asynq.Task) error)
}

// Jobs holds the background handlers run by the worker process.
type Jobs struct {
	notifications *NotificationService
	users         UserLookup
	tasks         TaskLookup
	events        EventLookup
	sender        push.Sender
	loc           *time.Location
	now           func() time.Time
}

func NewJobs(notifications *NotificationService, users UserLookup, tasks TaskLookup, events EventLookup, sender push.Sender, loc *time.Location) *Jobs {
	if loc == nil {
		loc = time.UTC
	}
	return &Jobs{
		notifications: notifications,
		users:         users,
		tasks:         tasks,
		events:        events,
		sender:        sender,
		loc:           loc,
		now:           time.Now,
	}
}

func (j *Jobs) Register(r Registrar) {
	r.Handle(queue.TypePush, func(ctx context.Context, t *asynq.Task) error {
		p, err := queue.Decode[queue.PushPayload](t)
		if err != nil {
			return err
		}
		return j.DeliverPush(ctx, p)
	})
	r.Handle(queue.TypeTaskReminder, func(ctx context.Context, t *asynq.Task) error {
		p, err := queue.Decode[queue.TaskReminderPayload](t)
		if err != nil {
			return err
		}
		return j.TaskReminder(ctx, p)
	})
	r.Handle(queue.TypeEventReminder, func(ctx context.Context, t *asynq.Task) error {
		p, err := queue.Decode[queue.EventReminderPayload](t)
		if err != nil {
			return err
		}
		return j.EventReminder(ctx, p)
	})
	r.Handle(queue.TypeDailyDigest, func(ctx context.Context, _ *asynq.Task) error {
		return j.DailyDigest(ctx)
	})
}

func parseIDs(raw ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", s, asynq.SkipRetry)
		}
		out = append(out, id)
	}
	return out, nil
}

// DeliverPush sends the stored notification unless the user has no token or is in quiet hours.
func (j *Jobs) DeliverPush(ctx context.Context, p queue.PushPayload) error {
	ids, err := parseIDs(p.NotificationID, p.UserID)
	if err != nil {
		return err
	}
	n, err := j.notifications.get(ctx, ids[0])
	if err != nil {
		return err
	}
	if n == nil {
		return nil
	}

	user, appErr := j.users.GetUser(ctx, ids[1])
	if appErr != nil {
		if appErr.Code == errors.ErrNotFound {
			return nil
		}
		return appErr
	}
	if user.PushToken == nil || *user.PushToken == "" {
		logger.Debug("Jobs:DeliverPush:NoToken", "user_id", user.ID)
		return nil
	}
	if InQuietHours(user.QuietStart, user.QuietEnd, user.QuietEnabled, j.now(), j.loc) {
		logger.Info("Jobs:DeliverPush:QuietHours", "user_id", user.ID, "notification_id", n.ID)
		return nil
	}

	err = j.sender.Send(ctx, pushMessage(*user.PushToken, n))
	if stdErrors.Is(err, push.ErrDeviceNotRegistered) {
		logger.Warn("Jobs:DeliverPush:DeviceNotRegistered", "user_id", user.ID)
		if appErr := j.users.ClearPushToken(ctx, user.ID); appErr != nil {
			logger.Error("Jobs:DeliverPush:ClearToken", "user_id", user.ID, "error", appErr)
		}
		return nil
	}
	return err
}

func pushMessage(token string, n *entity.Notification) push.Message {
	data := map[string]any{}
	for k, v := range n.Data {
		data[k] = v
	}
	data["type"] = n.Type
	data["notification_id"] = n.ID.String()
	return push.Message{
		To:       token,
		Title:    n.Title,
		Body:     n.Message,
		Data:     data,
		Sound:    "default",
		Priority: "high",
	}
}

func (j *Jobs) TaskReminder(ctx context.Context, p queue.TaskReminderPayload) error {
	ids, err := parseIDs(p.TaskID)
	if err != nil {
		return err
	}
	task, err := j.tasks.Lookup(ctx, ids[0])
	if err != nil {
		return err
	}
	if task == nil || task.Completed {
		return nil
	}
	return j.notifications.Notify(ctx, task.UserID, dto.Payload{
		Title:   "Task Due Soon",
		Message: fmt.Sprintf("%s is due in 1 hour", task.Title),
		Type:    entity.TypeTaskDue,
		Data:    map[string]any{"task_id": task.ID.String()},
	})
}

func (j *Jobs) EventReminder(ctx context.Context, p queue.EventReminderPayload) error {
	ids, err := parseIDs(p.EventID, p.UserID)
	if err != nil {
		return err
	}
	target, err := j.events.ReminderTarget(ctx, ids[0], ids[1])
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	return j.notifications.Notify(ctx, ids[1], dto.Payload{
		Title:   "Event Starting Soon",
		Message: fmt.Sprintf("%s starts at %s", target.Title, target.StartsAt.In(j.loc).Format("15:04")),
		Type:    entity.TypeEventSoon,
		Data:    map[string]any{"event_id": target.EventID.String()},
	})
}

func (j *Jobs) DailyDigest(ctx context.Context) error {
	byUser, err := j.tasks.DueToday(ctx)
	if err != nil {
		return err
	}
	sent := 0
	for userID, tasks := range byUser {
		if len(tasks) == 0 {
			continue
		}
		titles := make([]string, 0, len(tasks))
		for _, t := range tasks {
			titles = append(titles, t.Title)
		}
		noun := "tasks"
		if len(tasks) == 1 {
			noun = "task"
		}
		err := j.notifications.Notify(ctx, userID, dto.Payload{
			Title:   "Due Today",
			Message: fmt.Sprintf("You have %d %s due today: %s", len(tasks), noun, strings.Join(titles, ", ")),
			Type:    entity.TypeTaskDue,
			Data:    map[string]any{"count": len(tasks)},
		})
		if err != nil {
			logger.Error("Jobs:DailyDigest:Notify", "user_id", userID, "error", err)
			continue
		}
		sent++
	}
	logger.Info("Jobs:DailyDigest", "users", sent)
	return nil
}
