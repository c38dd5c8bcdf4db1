package dto

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	Type  string `json:"type" validate:"required,oneof=physical link"`
	Value string `json:"value" validate:"required,max=300"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category" validate:"required,oneof=social study sports culture other"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      time.Time  `json:"ends_at" validate:"required"`
	Location    Location   `json:"location" validate:"required"`
	Visibility  string     `json:"visibility" validate:"omitempty,oneof=public group private"`
	GroupID     *uuid.UUID `json:"group_id"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gte=1"`
}

// UpdateEventRequest is a partial update.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category" validate:"omitempty,oneof=social study sports culture other"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Location    *Location  `json:"location"`
	Visibility  *string    `json:"visibility" validate:"omitempty,oneof=public group private"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gte=1"`
}

type EventFilter struct {
	Category string     `json:"category" validate:"omitempty,oneof=social study sports culture other"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
	Location string     `json:"location" validate:"omitempty,oneof=physical link"`
	Mine     bool       `json:"mine"`
}

type RSVPRequest struct {
	Status string `json:"status" validate:"required,oneof=going interested"`
}

type FeatureRequest struct {
	Featured *bool `json:"featured" validate:"required"`
}

type EventResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          time.Time  `json:"ends_at"`
	Location        Location   `json:"location"`
	Visibility      string     `json:"visibility"`
	GroupID         *uuid.UUID `json:"group_id,omitempty"`
	HostID          uuid.UUID  `json:"host_id"`
	HostName        string     `json:"host_name"`
	Capacity        *int       `json:"capacity,omitempty"`
	AttendeeCount   int        `json:"attendee_count"`
	InterestedCount int        `json:"interested_count"`
	Status          string     `json:"status"`
	Featured        bool       `json:"featured"`
	CoverURL        string     `json:"cover_url,omitempty"`
	MyRSVP          string     `json:"my_rsvp,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type RSVPResponse struct {
	EventID         uuid.UUID `json:"event_id"`
	Status          string    `json:"status"`
	AttendeeCount   int       `json:"attendee_count"`
	InterestedCount int       `json:"interested_count"`
}

type CoverResponse struct {
	CoverURL string `json:"cover_url"`
	Progress int    `json:"progress"`
}
