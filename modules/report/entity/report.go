package entity

import (
	"campusflow/core/entity"
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen     = "open"
	StatusReviewed = "reviewed"
	StatusClosed   = "closed"

	TargetMessage = "message"
	TargetUser    = "user"
	TargetEvent   = "event"
)

type Report struct {
	entity.BaseEntity
	ReporterID uuid.UUID  `db:"reporter_id"`
	TargetType string     `db:"target_type"`
	TargetID   uuid.UUID  `db:"target_id"`
	Reason     string     `db:"reason"`
	Status     string     `db:"status"`
	ReviewedBy *uuid.UUID `db:"reviewed_by"`
	ReviewedAt *time.Time `db:"reviewed_at"`
	Action     string     `db:"action"`
}

// CanMove reports whether a report in from may be moved to to.
func CanMove(from, to string) bool {
	switch to {
	case StatusReviewed:
		return from == StatusOpen
	case StatusClosed:
		return from == StatusOpen || from == StatusReviewed
	}
	return false
}
