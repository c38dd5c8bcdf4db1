package service

import (
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/utils"
	"campusflow/modules/announcement/dto"
	"campusflow/modules/announcement/entity"
	"campusflow/modules/announcement/mapper"
	"campusflow/modules/announcement/repository"
	notificationDto "campusflow/modules/notification/dto"
	notificationEntity "campusflow/modules/notification/entity"
	userEntity "campusflow/modules/user/entity"
	"context"
	"time"

	"github.com/google/uuid"
)

type UserDirectory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError)
	AudienceAll(ctx context.Context) ([]uuid.UUID, error)
	AudienceYear(ctx context.Context, year int) ([]uuid.UUID, error)
}

type Groups interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	MemberIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	GroupIDsFor(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type BulkNotifier interface {
	NotifyMany(ctx context.Context, userIDs []uuid.UUID, payload notificationDto.Payload) int
}

type AnnouncementService struct {
	repo     repository.AnnouncementRepositoryInterface
	users    UserDirectory
	groups   Groups
	notifier BulkNotifier
	now      func() time.Time
}

func NewAnnouncementService(repo repository.AnnouncementRepositoryInterface, users UserDirectory, groups Groups, notifier BulkNotifier) *AnnouncementService {
	return &AnnouncementService{
		repo:     repo,
		users:    users,
		groups:   groups,
		notifier: notifier,
		now:      time.Now,
	}
}

// Publish stores the announcement and notifies its audience.
func (s *AnnouncementService) Publish(ctx context.Context, adminID uuid.UUID, req *dto.CreateAnnouncementRequest) (*dto.PublishResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	a := &entity.Announcement{
		Title:     utils.Sanitize(req.Title),
		Body:      req.Body,
		Audience:  req.Audience,
		Priority:  req.Priority,
		CreatedBy: adminID,
		ExpiresAt: req.ExpiresAt,
	}
	if a.Priority == "" {
		a.Priority = entity.PriorityMedium
	}
	if a.Expired(s.now()) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "expires_at must be in the future", nil)
	}

	switch a.Audience {
	case entity.AudienceGroup:
		groupID, err := uuid.Parse(req.TargetID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "target_id is required for group announcements", nil)
		}
		found, err := s.groups.Exists(ctx, groupID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get group", err)
		}
		if !found {
			return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
		}
		a.TargetID = &groupID
	case entity.AudienceYear:
		if req.TargetYear == nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "target_year is required for year announcements", nil)
		}
		a.TargetYear = req.TargetYear
	}

	a.Touch()
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create announcement", err)
	}

	recipients, err := s.audience(ctx, a)
	if err != nil {
		logger.Error("AnnouncementService:Publish:Audience", "announcement_id", a.ID, "error", err)
	}
	sent := 0
	if len(recipients) > 0 {
		sent = s.notifier.NotifyMany(ctx, recipients, notificationDto.Payload{
			Title:   a.Title,
			Message: utils.Truncate(utils.Sanitize(a.Body), 140),
			Type:    notificationEntity.TypeAdminAnnouncement,
			Data:    map[string]any{"announcement_id": a.ID.String(), "priority": a.Priority},
		})
	}
	return &dto.PublishResponse{Announcement: mapper.ToAnnouncementResponse(a), Recipients: sent}, nil
}

func (s *AnnouncementService) audience(ctx context.Context, a *entity.Announcement) ([]uuid.UUID, error) {
	switch a.Audience {
	case entity.AudienceGroup:
		return s.groups.MemberIDs(ctx, *a.TargetID)
	case entity.AudienceYear:
		return s.users.AudienceYear(ctx, *a.TargetYear)
	default:
		return s.users.AudienceAll(ctx)
	}
}

// List returns what the caller can currently see.
func (s *AnnouncementService) List(ctx context.Context, userID uuid.UUID) ([]dto.AnnouncementResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, appErr := s.users.GetUser(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	groupIDs, err := s.groups.GroupIDsFor(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load groups", err)
	}
	list, err := s.repo.ListVisible(ctx, user.Year, groupIDs, s.now().UTC())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list announcements", err)
	}
	return mapper.ToAnnouncementResponses(list), nil
}
