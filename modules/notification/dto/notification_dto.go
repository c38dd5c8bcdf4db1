package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

type MarkAsReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,uuid_list"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// Payload is what other modules hand to Notify.
type Payload struct {
	Title   string
	Message string
	Type    string
	Data    map[string]any
}

// EventReminder is what the event module reports for a due RSVP reminder.
type EventReminder struct {
	EventID  uuid.UUID
	Title    string
	StartsAt time.Time
}
