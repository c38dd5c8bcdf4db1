package service

import (
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/queue"
	"campusflow/core/storage"
	"campusflow/core/utils"
	"campusflow/modules/event/dto"
	"campusflow/modules/event/entity"
	"campusflow/modules/event/mapper"
	"campusflow/modules/event/repository"
	notificationDto "campusflow/modules/notification/dto"
	notificationEntity "campusflow/modules/notification/entity"
	notificationService "campusflow/modules/notification/service"
	userEntity "campusflow/modules/user/entity"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const ChatKindRoom = "room"

type UserDirectory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError)
}

// Rooms keeps the event chat room membership in step with "going" RSVPs.
type Rooms interface {
	JoinSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) error
	LeaveSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) error
}

type EventService struct {
	repo      repository.EventRepositoryInterface
	users     UserDirectory
	notifier  notificationService.Notifier
	scheduler queue.Scheduler
	uploader  storage.Uploader
	rooms     Rooms
	now       func() time.Time
}

func NewEventService(
	repo repository.EventRepositoryInterface,
	users UserDirectory,
	notifier notificationService.Notifier,
	scheduler queue.Scheduler,
	uploader storage.Uploader,
	rooms Rooms,
) *EventService {
	return &EventService{
		repo:      repo,
		users:     users,
		notifier:  notifier,
		scheduler: scheduler,
		uploader:  uploader,
		rooms:     rooms,
		now:       time.Now,
	}
}

func canManage(event *entity.Event, user *userEntity.User) bool {
	return event.HostID == user.ID || user.RoleAdmin
}

func (s *EventService) load(ctx context.Context, id uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	return event, nil
}

// loadManaged loads the event and checks the caller is its host or an admin.
func (s *EventService) loadManaged(ctx context.Context, id, userID uuid.UUID) (*entity.Event, *userEntity.User, *errors.AppError) {
	event, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, nil, appErr
	}
	user, appErr := s.users.GetUser(ctx, userID)
	if appErr != nil {
		return nil, nil, appErr
	}
	if !canManage(event, user) {
		return nil, nil, errors.NewAppError(errors.ErrForbidden, "only the host or an admin can change this event", nil)
	}
	return event, user, nil
}

func (s *EventService) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	host, appErr := s.users.GetUser(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	if req.EndsAt.Before(req.StartsAt) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "ends_at must not be before starts_at", nil)
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = entity.VisibilityPublic
	}
	status := entity.StatusPending
	if host.IsStaff() {
		status = entity.StatusApproved
	}

	event := &entity.Event{
		Title:         utils.Sanitize(req.Title),
		Description:   utils.Sanitize(req.Description),
		Category:      req.Category,
		StartsAt:      req.StartsAt.UTC(),
		EndsAt:        req.EndsAt.UTC(),
		LocationType:  req.Location.Type,
		LocationValue: utils.Sanitize(req.Location.Value),
		Visibility:    visibility,
		GroupID:       req.GroupID,
		HostID:        host.ID,
		HostName:      host.Name,
		Capacity:      req.Capacity,
		Status:        status,
	}
	event.Touch()

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create event", err)
	}
	s.joinRoom(ctx, event.ID, host.ID)
	logger.Info("EventService:CreateEvent", "event_id", event.ID, "status", status)
	return mapper.ToEventResponse(event), nil
}

func (s *EventService) ListEvents(ctx context.Context, userID uuid.UUID, f dto.EventFilter) ([]dto.EventResponse, *errors.AppError) {
	filter := repository.ListFilter{
		Category:     f.Category,
		LocationType: f.Location,
		From:         f.From,
		To:           f.To,
	}
	if f.Mine {
		filter.RSVPUserID = &userID
	}
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list events", err)
	}
	return mapper.ToEventResponses(events), nil
}

func (s *EventService) Upcoming(ctx context.Context) ([]dto.EventResponse, *errors.AppError) {
	now := s.now().UTC()
	until := now.AddDate(0, 0, constants.UpcomingWindowDays)
	events, err := s.repo.List(ctx, repository.ListFilter{From: &now, To: &until, Limit: constants.UpcomingLimit})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list events", err)
	}
	return mapper.ToEventResponses(events), nil
}

// GetEvent hides unapproved and private events from anyone but the host, admins and attendees.
func (s *EventService) GetEvent(ctx context.Context, userID, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	rsvp, err := s.repo.GetRSVP(ctx, id, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get rsvp", err)
	}

	if appErr := s.checkVisible(ctx, event, userID, rsvp); appErr != nil {
		return nil, appErr
	}

	resp := mapper.ToEventResponse(event)
	if rsvp != nil {
		resp.MyRSVP = rsvp.Status
	}
	return resp, nil
}

// checkVisible answers 404 for unapproved or private events unless the caller hosts them,
// is an admin, or already holds an RSVP to the approved event.
func (s *EventService) checkVisible(ctx context.Context, event *entity.Event, userID uuid.UUID, rsvp *entity.EventRSVP) *errors.AppError {
	listable := event.Status == entity.StatusApproved && event.Visibility != entity.VisibilityPrivate
	if listable || event.HostID == userID {
		return nil
	}
	user, appErr := s.users.GetUser(ctx, userID)
	if appErr != nil {
		return appErr
	}
	privateGuest := event.Status == entity.StatusApproved && rsvp != nil
	if !user.RoleAdmin && !privateGuest {
		return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	return nil
}

func (s *EventService) UpdateEvent(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, editor, appErr := s.loadManaged(ctx, id, userID)
	if appErr != nil {
		return nil, appErr
	}
	previousStart := event.StartsAt

	if req.Title != nil {
		event.Title = utils.Sanitize(*req.Title)
	}
	if req.Description != nil {
		event.Description = utils.Sanitize(*req.Description)
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.StartsAt != nil {
		event.StartsAt = req.StartsAt.UTC()
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt.UTC()
	}
	if req.Location != nil {
		event.LocationType = req.Location.Type
		event.LocationValue = utils.Sanitize(req.Location.Value)
	}
	if req.Visibility != nil {
		event.Visibility = *req.Visibility
	}
	if req.Capacity != nil {
		if *req.Capacity < event.AttendeeCount {
			return nil, errors.NewAppError(errors.ErrConflict, "capacity is below the current number of attendees", nil)
		}
		event.Capacity = req.Capacity
	}
	if event.EndsAt.Before(event.StartsAt) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "ends_at must not be before starts_at", nil)
	}

	if event.Status == entity.StatusApproved && !editor.IsStaff() {
		event.Status = entity.StatusPending
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update event", err)
	}
	if !event.StartsAt.Equal(previousStart) {
		s.rescheduleAll(ctx, event)
	}
	return mapper.ToEventResponse(event), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, userID, id uuid.UUID) *errors.AppError {
	event, _, appErr := s.loadManaged(ctx, id, userID)
	if appErr != nil {
		return appErr
	}
	going, err := s.repo.ListGoingUserIDs(ctx, event.ID)
	if err != nil {
		logger.Error("EventService:DeleteEvent:ListGoing", err)
	}
	if err := s.repo.Delete(ctx, event.ID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete event", err)
	}
	for _, uid := range going {
		s.cancelReminder(ctx, event.ID, uid)
	}
	return nil
}

func (s *EventService) UploadCover(ctx context.Context, userID, id uuid.UUID, raw []byte) (*dto.CoverResponse, *errors.AppError) {
	event, _, appErr := s.loadManaged(ctx, id, userID)
	if appErr != nil {
		return nil, appErr
	}
	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrUploadFailed, "storage is not configured", nil)
	}

	img, err := storage.ProcessImage(raw, storage.ImageCover)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "file is not a supported image", err)
	}

	key := fmt.Sprintf("events/%s/cover-%s.webp", event.ID, utils.GenerateID())
	progress := 0
	url, err := s.uploader.Upload(ctx, key, storage.WebPType, img, func(sent, total int64) {
		progress = storage.Percent(sent, total)
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUploadFailed, "failed to upload cover", err)
	}
	if err := s.repo.SetCover(ctx, event.ID, url); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to save cover", err)
	}
	return &dto.CoverResponse{CoverURL: url, Progress: progress}, nil
}

// RSVP upserts the caller's single RSVP. Sending the current status again changes nothing.
func (s *EventService) RSVP(ctx context.Context, userID, id uuid.UUID, status string) (*dto.RSVPResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	existing, err := s.repo.GetRSVP(ctx, id, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get rsvp", err)
	}
	if appErr := s.checkVisible(ctx, event, userID, existing); appErr != nil {
		return nil, appErr
	}
	if event.Status != entity.StatusApproved {
		return nil, errors.NewAppError(errors.ErrConflict, "event is not open for RSVPs", nil)
	}

	change, err := s.repo.ChangeRSVP(ctx, id, userID, status)
	if appErr := rsvpError(err); appErr != nil {
		return nil, appErr
	}

	if change.Next == entity.RSVPGoing && change.Prev != entity.RSVPGoing {
		s.scheduleReminder(ctx, event, userID)
		s.joinRoom(ctx, event.ID, userID)
	}
	if change.Prev == entity.RSVPGoing && change.Next != entity.RSVPGoing {
		s.cancelReminder(ctx, event.ID, userID)
		s.leaveRoom(ctx, event.ID, userID)
	}

	return &dto.RSVPResponse{
		EventID:         id,
		Status:          change.Next,
		AttendeeCount:   change.AttendeeCount,
		InterestedCount: change.InterestedCount,
	}, nil
}

// RemoveRSVP is a no-op when the caller has no RSVP.
func (s *EventService) RemoveRSVP(ctx context.Context, userID, id uuid.UUID) (*dto.RSVPResponse, *errors.AppError) {
	change, err := s.repo.ChangeRSVP(ctx, id, userID, "")
	if appErr := rsvpError(err); appErr != nil {
		return nil, appErr
	}
	if change.Prev == entity.RSVPGoing {
		s.cancelReminder(ctx, id, userID)
		s.leaveRoom(ctx, id, userID)
	}
	return &dto.RSVPResponse{
		EventID:         id,
		AttendeeCount:   change.AttendeeCount,
		InterestedCount: change.InterestedCount,
	}, nil
}

func rsvpError(err error) *errors.AppError {
	switch err {
	case nil:
		return nil
	case entity.ErrEventFull:
		return errors.NewAppError(errors.ErrCapacityReached, "event is at capacity", nil)
	case entity.ErrEventNotFound:
		return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	default:
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to update rsvp", err)
	}
}

func (s *EventService) MyRSVPs(ctx context.Context, userID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	rows, err := s.repo.ListRSVPsByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list rsvps", err)
	}
	return mapper.ToUserRSVPResponses(rows), nil
}

func (s *EventService) ListPending(ctx context.Context) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.ListByStatus(ctx, entity.StatusPending)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list pending events", err)
	}
	return mapper.ToEventResponses(events), nil
}

func (s *EventService) Approve(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	return s.decide(ctx, id, entity.StatusApproved)
}

func (s *EventService) Reject(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	return s.decide(ctx, id, entity.StatusRejected)
}

// decide moves a pending event to approved or rejected and tells the host.
func (s *EventService) decide(ctx context.Context, id uuid.UUID, to string) (*dto.EventResponse, *errors.AppError) {
	ok, err := s.repo.TransitionStatus(ctx, id, entity.StatusPending, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update event status", err)
	}
	event, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrConflict, fmt.Sprintf("event is %s, not pending", event.Status), nil)
	}

	err = s.notifier.Notify(ctx, event.HostID, notificationDto.Payload{
		Title:   "Event " + to,
		Message: fmt.Sprintf("Your event \"%s\" has been %s", event.Title, to),
		Type:    notificationEntity.TypeAdminAnnouncement,
		Data:    map[string]any{"event_id": event.ID.String(), "status": to},
	})
	if err != nil {
		logger.Error("EventService:Decide:Notify", err)
	}
	return mapper.ToEventResponse(event), nil
}

func (s *EventService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*dto.EventResponse, *errors.AppError) {
	if _, appErr := s.load(ctx, id); appErr != nil {
		return nil, appErr
	}
	if err := s.repo.SetFeatured(ctx, id, featured); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update featured flag", err)
	}
	event, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToEventResponse(event), nil
}

func (s *EventService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	event, err := s.repo.GetByID(ctx, id)
	return event != nil, err
}

func (s *EventService) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, entity.StatusPending)
}

// ReminderTarget reports what an RSVP reminder should say, or nil once it no longer applies.
func (s *EventService) ReminderTarget(ctx context.Context, eventID, userID uuid.UUID) (*notificationDto.EventReminder, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil || event == nil || event.Status != entity.StatusApproved {
		return nil, err
	}
	rsvp, err := s.repo.GetRSVP(ctx, eventID, userID)
	if err != nil || rsvp == nil || rsvp.Status != entity.RSVPGoing {
		return nil, err
	}
	return &notificationDto.EventReminder{EventID: event.ID, Title: event.Title, StartsAt: event.StartsAt}, nil
}

func (s *EventService) scheduleReminder(ctx context.Context, event *entity.Event, userID uuid.UUID) {
	at := event.StartsAt.Add(-constants.ReminderLeadTime)
	id := queue.EventReminderID(event.ID.String(), userID.String())
	if !at.After(s.now()) {
		return
	}
	payload := queue.EventReminderPayload{EventID: event.ID.String(), UserID: userID.String()}
	if err := s.scheduler.Schedule(ctx, queue.TypeEventReminder, id, payload, at); err != nil {
		logger.Error("EventService:ScheduleReminder", err)
	}
}

func (s *EventService) cancelReminder(ctx context.Context, eventID, userID uuid.UUID) {
	if err := s.scheduler.Cancel(ctx, queue.EventReminderID(eventID.String(), userID.String())); err != nil {
		logger.Error("EventService:CancelReminder", err)
	}
}

func (s *EventService) rescheduleAll(ctx context.Context, event *entity.Event) {
	going, err := s.repo.ListGoingUserIDs(ctx, event.ID)
	if err != nil {
		logger.Error("EventService:RescheduleAll", err)
		return
	}
	for _, uid := range going {
		s.cancelReminder(ctx, event.ID, uid)
		s.scheduleReminder(ctx, event, uid)
	}
}

func (s *EventService) joinRoom(ctx context.Context, eventID, userID uuid.UUID) {
	if s.rooms == nil {
		return
	}
	if err := s.rooms.JoinSubject(ctx, ChatKindRoom, eventID, userID); err != nil {
		logger.Error("EventService:JoinRoom", err)
	}
}

func (s *EventService) leaveRoom(ctx context.Context, eventID, userID uuid.UUID) {
	if s.rooms == nil {
		return
	}
	if err := s.rooms.LeaveSubject(ctx, ChatKindRoom, eventID, userID); err != nil {
		logger.Error("EventService:LeaveRoom", err)
	}
}
