package dto

import (
	userDto "campusflow/modules/user/dto"
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=message user event"`
	TargetID   string `json:"target_id" validate:"required,uuid"`
	Reason     string `json:"reason" validate:"required"`
}

type ReviewRequest struct {
	Action string `json:"action" validate:"required,max=200"`
}

type ReportResponse struct {
	ID         uuid.UUID              `json:"id"`
	Reporter   *userDto.PublicProfile `json:"reporter,omitempty"`
	TargetType string                 `json:"target_type"`
	TargetID   uuid.UUID              `json:"target_id"`
	Reason     string                 `json:"reason"`
	Status     string                 `json:"status"`
	ReviewedBy *uuid.UUID             `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time             `json:"reviewed_at,omitempty"`
	Action     string                 `json:"action,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type StatsResponse struct {
	PendingEvents int `json:"pending_events"`
	OpenReports   int `json:"open_reports"`
	Users         int `json:"users"`
}
