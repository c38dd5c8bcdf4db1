package service

import (
	coreEntity "campusflow/core/entity"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/params"
	"campusflow/core/queue"
	"campusflow/modules/notification/dto"
	"campusflow/modules/notification/entity"
	"campusflow/modules/notification/mapper"
	"campusflow/modules/notification/repository"
	"context"

	"github.com/google/uuid"
)

// Notifier is the entry point other modules use to reach a user.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, payload dto.Payload) error
}

type NotificationService struct {
	repo      repository.NotificationRepositoryInterface
	scheduler queue.Scheduler
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, scheduler queue.Scheduler) *NotificationService {
	return &NotificationService{repo: repo, scheduler: scheduler}
}

// Notify stores the in-app row and queues a push for it. A failed enqueue keeps the row.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, payload dto.Payload) error {
	n := &entity.Notification{
		UserID:  userID,
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
		Data:    coreEntity.JSONB(payload.Data),
	}
	if n.Data == nil {
		n.Data = coreEntity.JSONB{}
	}
	n.Touch()

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	push := queue.PushPayload{NotificationID: n.ID.String(), UserID: userID.String()}
	if err := s.scheduler.Enqueue(ctx, queue.TypePush, push); err != nil {
		logger.Error("NotificationService:Notify:Enqueue", "notification_id", n.ID, "error", err)
	}
	return nil
}

// NotifyMany fans one payload out; it keeps going past individual failures.
func (s *NotificationService) NotifyMany(ctx context.Context, userIDs []uuid.UUID, payload dto.Payload) int {
	sent := 0
	for _, id := range userIDs {
		if err := s.Notify(ctx, id, payload); err != nil {
			logger.Error("NotificationService:NotifyMany", "user_id", id, "error", err)
			continue
		}
		sent++
	}
	return sent
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*coreEntity.Pagination[dto.NotificationResponse], *errors.AppError) {
	page, err := s.repo.GetByUserID(ctx, userID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get notifications", err)
	}
	return mapper.ToPaginatedResponse(page), nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark all as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to count unread", err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *NotificationService) get(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	return s.repo.GetByID(ctx, id)
}
