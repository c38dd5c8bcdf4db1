package dto

import (
	userDto "campusflow/modules/user/dto"
	"time"

	"github.com/google/uuid"
)

type OpenDMRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type ChatResponse struct {
	ID            uuid.UUID              `json:"id"`
	Type          string                 `json:"type"`
	SubjectID     *uuid.UUID             `json:"subject_id,omitempty"`
	Participants  []uuid.UUID            `json:"participants"`
	LastMessage   string                 `json:"last_message"`
	LastMessageAt *time.Time             `json:"last_message_at"`
	UnreadCount   int                    `json:"unread_count"`
	Other         *userDto.PublicProfile `json:"other,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type MessageResponse struct {
	ID           uuid.UUID   `json:"id"`
	ChatID       uuid.UUID   `json:"chat_id"`
	SenderID     uuid.UUID   `json:"sender_id"`
	SenderName   string      `json:"sender_name"`
	SenderAvatar string      `json:"sender_avatar,omitempty"`
	Text         string      `json:"text"`
	ReadBy       []uuid.UUID `json:"read_by"`
	CreatedAt    time.Time   `json:"created_at"`
}

type MessageQuery struct {
	Before *time.Time `json:"before"`
	Limit  int        `json:"limit" validate:"omitempty,min=1,max=100"`
}

type UnreadResponse struct {
	Total int `json:"total"`
}
