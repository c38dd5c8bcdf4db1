package mapper

import (
	"campusflow/modules/chat/dto"
	"campusflow/modules/chat/entity"

	"github.com/google/uuid"
)

func ToChatResponse(c *entity.Chat, unread int) *dto.ChatResponse {
	return &dto.ChatResponse{
		ID:            c.ID,
		Type:          c.Type,
		SubjectID:     c.SubjectID,
		Participants:  c.ParticipantIDs(),
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   unread,
		CreatedAt:     c.CreatedAt,
	}
}

func ToMessageResponse(m *entity.Message) dto.MessageResponse {
	readBy := make([]uuid.UUID, 0, len(m.ReadBy))
	for _, raw := range m.ReadBy {
		if id, err := uuid.Parse(raw); err == nil {
			readBy = append(readBy, id)
		}
	}
	return dto.MessageResponse{
		ID:           m.ID,
		ChatID:       m.ChatID,
		SenderID:     m.SenderID,
		SenderName:   m.SenderName,
		SenderAvatar: m.SenderAvatar,
		Text:         m.Text,
		ReadBy:       readBy,
		CreatedAt:    m.CreatedAt,
	}
}

func ToMessageResponses(messages []entity.Message) []dto.MessageResponse {
	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, ToMessageResponse(&messages[i]))
	}
	return out
}
