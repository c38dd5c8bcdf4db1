package entity

import (
	"campusflow/core/entity"
	"time"

	"github.com/google/uuid"
)

const (
	AudienceAll   = "all"
	AudienceGroup = "group"
	AudienceYear  = "year"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Announcement struct {
	entity.BaseEntity
	Title      string     `db:"title"`
	Body       string     `db:"body"`
	Audience   string     `db:"audience"`
	TargetID   *uuid.UUID `db:"target_id"`
	TargetYear *int       `db:"target_year"`
	Priority   string     `db:"priority"`
	CreatedBy  uuid.UUID  `db:"created_by"`
	ExpiresAt  *time.Time `db:"expires_at"`
}

func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}
