package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAnnouncementRequest struct {
	Title      string     `json:"title" validate:"required,max=100"`
	Body       string     `json:"body" validate:"required,max=2000"`
	Audience   string     `json:"audience" validate:"required,oneof=all group year"`
	TargetID   string     `json:"target_id" validate:"omitempty,uuid"`
	TargetYear *int       `json:"target_year" validate:"omitempty,min=1,max=10"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

type AnnouncementResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Audience   string     `json:"audience"`
	TargetID   *uuid.UUID `json:"target_id,omitempty"`
	TargetYear *int       `json:"target_year,omitempty"`
	Priority   string     `json:"priority"`
	CreatedBy  uuid.UUID  `json:"created_by"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type PublishResponse struct {
	Announcement AnnouncementResponse `json:"announcement"`
	Recipients   int                  `json:"recipients"`
}
