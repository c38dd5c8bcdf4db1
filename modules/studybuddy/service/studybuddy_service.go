package service

import (
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/utils"
	chatDto "campusflow/modules/chat/dto"
	notificationDto "campusflow/modules/notification/dto"
	notificationEntity "campusflow/modules/notification/entity"
	notificationService "campusflow/modules/notification/service"
	"campusflow/modules/studybuddy/dto"
	"campusflow/modules/studybuddy/entity"
	"campusflow/modules/studybuddy/mapper"
	"campusflow/modules/studybuddy/repository"
	userDto "campusflow/modules/user/dto"
	userEntity "campusflow/modules/user/entity"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type UserDirectory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError)
	ListOthers(ctx context.Context, exclude uuid.UUID, course string) ([]userEntity.User, error)
	BlockedEither(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error)
	Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]userDto.PublicProfile, error)
}

type DMOpener interface {
	OpenDM(ctx context.Context, userID, targetID uuid.UUID) (*chatDto.ChatResponse, *errors.AppError)
}

type StudyBuddyService struct {
	repo     repository.StudyBuddyRepositoryInterface
	users    UserDirectory
	notifier notificationService.Notifier
	chats    DMOpener
}

func NewStudyBuddyService(repo repository.StudyBuddyRepositoryInterface, users UserDirectory, notifier notificationService.Notifier, chats DMOpener) *StudyBuddyService {
	return &StudyBuddyService{repo: repo, users: users, notifier: notifier, chats: chats}
}

func (s *StudyBuddyService) Suggestions(ctx context.Context, userID uuid.UUID, course string) ([]dto.Match, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	me, appErr := s.users.GetUser(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	candidates, err := s.users.ListOthers(ctx, userID, utils.Sanitize(course))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list students", err)
	}
	blocked, err := s.users.BlockedEither(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load blocks", err)
	}
	return Rank(me, candidates, blocked), nil
}

func (s *StudyBuddyService) SendRequest(ctx context.Context, userID uuid.UUID, req *dto.CreateRequest) (*dto.RequestResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid target_id", nil)
	}
	if targetID == userID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "cannot send a request to yourself", nil)
	}
	requester, appErr := s.users.GetUser(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	if _, appErr := s.users.GetUser(ctx, targetID); appErr != nil {
		return nil, appErr
	}
	blocked, err := s.users.IsBlockedEither(ctx, userID, targetID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check blocks", err)
	}
	if blocked {
		return nil, errors.NewAppError(errors.ErrForbidden, "you cannot contact this user", nil)
	}

	request := &entity.Request{
		RequesterID: userID,
		TargetID:    targetID,
		Course:      utils.Sanitize(req.Course),
		Message:     utils.Sanitize(req.Message),
		Status:      entity.StatusPending,
	}
	request.Touch()

	if err := s.repo.Create(ctx, request); err != nil {
		if err == entity.ErrDuplicatePending {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "you already have a pending request to this user", nil)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create request", err)
	}

	message := fmt.Sprintf("%s wants to study with you", requester.Name)
	if request.Course != "" {
		message = fmt.Sprintf("%s wants to study %s with you", requester.Name, request.Course)
	}
	err = s.notifier.Notify(ctx, targetID, notificationDto.Payload{
		Title:   "Study Buddy Request",
		Message: message,
		Type:    notificationEntity.TypeStudyBuddyRequest,
		Data:    map[string]any{"request_id": request.ID.String(), "requester_id": userID.String()},
	})
	if err != nil {
		logger.Error("StudyBuddyService:SendRequest:Notify", err)
	}

	resp := mapper.ToRequestResponse(request, nil)
	return &resp, nil
}

func (s *StudyBuddyService) Incoming(ctx context.Context, userID uuid.UUID) ([]dto.RequestResponse, *errors.AppError) {
	reqs, err := s.repo.ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list requests", err)
	}
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.RequesterID)
	}
	profiles, err := s.users.Profiles(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load profiles", err)
	}
	out := make([]dto.RequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, mapper.ToRequestResponse(&reqs[i], profiles))
	}
	return out, nil
}

// pending loads a request the caller may still answer.
func (s *StudyBuddyService) pending(ctx context.Context, userID, id uuid.UUID) (*entity.Request, *errors.AppError) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get request", err)
	}
	if request == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "request not found", nil)
	}
	if request.TargetID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the recipient can respond to this request", nil)
	}
	if request.Status != entity.StatusPending {
		return nil, errors.NewAppError(errors.ErrConflict, "request was already answered", nil)
	}
	return request, nil
}

// store moves a pending request to status; losing a race with another answer is a conflict.
func (s *StudyBuddyService) store(ctx context.Context, request *entity.Request, status string) *errors.AppError {
	ok, err := s.repo.Respond(ctx, request.ID, status)
	if err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to update request", err)
	}
	if !ok {
		return errors.NewAppError(errors.ErrConflict, "request was already answered", nil)
	}
	request.Status = status
	return nil
}

// Accept opens the DM between the pair and returns its id.
func (s *StudyBuddyService) Accept(ctx context.Context, userID, id uuid.UUID) (*dto.AcceptResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	request, appErr := s.pending(ctx, userID, id)
	if appErr != nil {
		return nil, appErr
	}
	// A refused DM leaves the request pending.
	chat, appErr := s.chats.OpenDM(ctx, userID, request.RequesterID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.store(ctx, request, entity.StatusAccepted); appErr != nil {
		return nil, appErr
	}

	if target, appErr := s.users.GetUser(ctx, userID); appErr == nil {
		err := s.notifier.Notify(ctx, request.RequesterID, notificationDto.Payload{
			Title:   "Study Buddy Request Accepted",
			Message: fmt.Sprintf("%s accepted your study buddy request", target.Name),
			Type:    notificationEntity.TypeStudyBuddyRequest,
			Data:    map[string]any{"request_id": request.ID.String(), "chat_id": chat.ID.String()},
		})
		if err != nil {
			logger.Error("StudyBuddyService:Accept:Notify", err)
		}
	}
	return &dto.AcceptResponse{RequestID: request.ID, ChatID: chat.ID}, nil
}

func (s *StudyBuddyService) Reject(ctx context.Context, userID, id uuid.UUID) *errors.AppError {
	request, appErr := s.pending(ctx, userID, id)
	if appErr != nil {
		return appErr
	}
	return s.store(ctx, request, entity.StatusRejected)
}
