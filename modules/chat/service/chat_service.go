package service

import (
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/realtime"
	"campusflow/core/utils"
	"campusflow/modules/chat/dto"
	"campusflow/modules/chat/entity"
	"campusflow/modules/chat/mapper"
	"campusflow/modules/chat/repository"
	notificationDto "campusflow/modules/notification/dto"
	notificationEntity "campusflow/modules/notification/entity"
	notificationService "campusflow/modules/notification/service"
	userDto "campusflow/modules/user/dto"
	userEntity "campusflow/modules/user/entity"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	EventMessageNew  = "message.new"
	EventChatUpdated = "chat.updated"

	defaultMessageLimit = 50
	previewLength       = 120
)

type UserDirectory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError)
	Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]userDto.PublicProfile, error)
	IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic, eventType string, data any)
}

type ChatService struct {
	repo      repository.ChatRepositoryInterface
	users     UserDirectory
	publisher Publisher
	notifier  notificationService.Notifier
	now       func() time.Time
}

func NewChatService(repo repository.ChatRepositoryInterface, users UserDirectory, publisher Publisher, notifier notificationService.Notifier) *ChatService {
	return &ChatService{
		repo:      repo,
		users:     users,
		publisher: publisher,
		notifier:  notifier,
		now:       time.Now,
	}
}

// loadJoined returns the chat when userID takes part in it. Non-participants get 404.
func (s *ChatService) loadJoined(ctx context.Context, chatID, userID uuid.UUID) (*entity.Chat, *errors.AppError) {
	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get chat", err)
	}
	if chat == nil || !chat.HasParticipant(userID) {
		return nil, errors.NewAppError(errors.ErrNotFound, "chat not found", nil)
	}
	return chat, nil
}

// OpenDM returns the direct chat between the pair, creating it the first time.
func (s *ChatService) OpenDM(ctx context.Context, userID, targetID uuid.UUID) (*dto.ChatResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if userID == targetID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "cannot message yourself", nil)
	}
	if _, appErr := s.users.GetUser(ctx, targetID); appErr != nil {
		return nil, appErr
	}
	blocked, err := s.users.IsBlockedEither(ctx, userID, targetID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check blocks", err)
	}
	if blocked {
		return nil, errors.NewAppError(errors.ErrForbidden, "you cannot message this user", nil)
	}

	key := entity.DMKey(userID, targetID)
	chat, err := s.repo.GetByDMKey(ctx, key)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get chat", err)
	}
	if chat == nil {
		fresh := &entity.Chat{
			Type:         entity.TypeDM,
			Participants: pq.StringArray{userID.String(), targetID.String()},
			DMKey:        &key,
		}
		fresh.Touch()
		if chat, err = s.repo.CreateDM(ctx, fresh); err != nil {
			return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create chat", err)
		}
	}

	unread, err := s.repo.UnreadCount(ctx, chat.ID, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get unread count", err)
	}
	resp := mapper.ToChatResponse(chat, unread)
	profiles, err := s.users.Profiles(ctx, []uuid.UUID{targetID})
	if err == nil {
		if p, ok := profiles[targetID]; ok {
			resp.Other = &p
		}
	}
	return resp, nil
}

func (s *ChatService) ListChats(ctx context.Context, userID uuid.UUID) ([]dto.ChatResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	chats, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list chats", err)
	}
	SortChats(chats)

	var others []uuid.UUID
	for i := range chats {
		if chats[i].Type == entity.TypeDM {
			others = append(others, chats[i].Others(userID)...)
		}
	}
	profiles, err := s.users.Profiles(ctx, others)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load profiles", err)
	}

	out := make([]dto.ChatResponse, 0, len(chats))
	for i := range chats {
		resp := mapper.ToChatResponse(&chats[i].Chat, chats[i].UnreadCount)
		if chats[i].Type == entity.TypeDM {
			for _, id := range chats[i].Others(userID) {
				if p, ok := profiles[id]; ok {
					resp.Other = &p
				}
			}
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *ChatService) Messages(ctx context.Context, userID, chatID uuid.UUID, q dto.MessageQuery) ([]dto.MessageResponse, *errors.AppError) {
	if _, appErr := s.loadJoined(ctx, chatID, userID); appErr != nil {
		return nil, appErr
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	messages, err := s.repo.ListMessages(ctx, chatID, q.Before, limit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list messages", err)
	}
	return mapper.ToMessageResponses(messages), nil
}

func (s *ChatService) Send(ctx context.Context, userID, chatID uuid.UUID, text string) (*dto.MessageResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "message text is required", nil)
	}
	if utils.CharLen(text) > constants.MaxMessageLength {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "message is too long", nil)
	}

	chat, appErr := s.loadJoined(ctx, chatID, userID)
	if appErr != nil {
		return nil, appErr
	}
	others := chat.Others(userID)
	if chat.Type == entity.TypeDM && len(others) == 1 {
		blocked, err := s.users.IsBlockedEither(ctx, userID, others[0])
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check blocks", err)
		}
		if blocked {
			return nil, errors.NewAppError(errors.ErrForbidden, "you cannot message this user", nil)
		}
	}

	sender, appErr := s.users.GetUser(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	msg := &entity.Message{
		ChatID:       chat.ID,
		SenderID:     sender.ID,
		SenderName:   sender.Name,
		SenderAvatar: sender.AvatarURL,
		Text:         text,
		ReadBy:       pq.StringArray{},
	}
	msg.Touch()
	msg.CreatedAt = s.now().UTC()

	if err := s.repo.AddMessage(ctx, msg, others); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to send message", err)
	}

	resp := mapper.ToMessageResponse(msg)
	s.fanOut(ctx, chat, msg, sender, others, resp)
	return &resp, nil
}

// fanOut pushes the message to live subscribers and queues notifications for the other participants.
func (s *ChatService) fanOut(ctx context.Context, chat *entity.Chat, msg *entity.Message, sender *userEntity.User, others []uuid.UUID, resp dto.MessageResponse) {
	s.publisher.Publish(ctx, realtime.ChatTopic(chat.ID), EventMessageNew, resp)

	chat.LastMessage = msg.Text
	chat.LastMessageAt = &msg.CreatedAt
	s.publisher.Publish(ctx, realtime.UserTopic(sender.ID), EventChatUpdated, mapper.ToChatResponse(chat, 0))

	for _, id := range others {
		unread, err := s.repo.UnreadCount(ctx, chat.ID, id)
		if err != nil {
			logger.Error("ChatService:FanOut:Unread", err)
		}
		s.publisher.Publish(ctx, realtime.UserTopic(id), EventChatUpdated, mapper.ToChatResponse(chat, unread))

		err = s.notifier.Notify(ctx, id, notificationDto.Payload{
			Title:   sender.Name,
			Message: utils.Truncate(msg.Text, previewLength),
			Type:    notificationEntity.TypeDMNew,
			Data:    map[string]any{"chat_id": chat.ID.String(), "message_id": msg.ID.String()},
		})
		if err != nil {
			logger.Error("ChatService:FanOut:Notify", err)
		}
	}
}

func (s *ChatService) MarkRead(ctx context.Context, userID, chatID uuid.UUID) *errors.AppError {
	if _, appErr := s.loadJoined(ctx, chatID, userID); appErr != nil {
		return appErr
	}
	if err := s.repo.MarkRead(ctx, chatID, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark chat read", err)
	}
	return nil
}

func (s *ChatService) UnreadTotal(ctx context.Context, userID uuid.UUID) (*dto.UnreadResponse, *errors.AppError) {
	total, err := s.repo.UnreadTotal(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to count unread messages", err)
	}
	return &dto.UnreadResponse{Total: total}, nil
}

// IsParticipant lets the realtime hub authorise chat topic subscriptions.
func (s *ChatService) IsParticipant(ctx context.Context, chatID, userID uuid.UUID) (bool, error) {
	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil || chat == nil {
		return false, err
	}
	return chat.HasParticipant(userID), nil
}

func (s *ChatService) JoinSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) error {
	return s.repo.JoinSubject(ctx, kind, subjectID, userID)
}

// LeaveSubject removes the user and cuts their open sockets off the chat topic.
func (s *ChatService) LeaveSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) error {
	chatID, err := s.repo.LeaveSubject(ctx, kind, subjectID, userID)
	if err != nil {
		return err
	}
	if chatID != uuid.Nil {
		s.publisher.Publish(ctx, realtime.ChatTopic(chatID), realtime.EventRevoke, userID.String())
	}
	return nil
}

func (s *ChatService) MessageExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.MessageExists(ctx, id)
}
