package entity

import (
	"campusflow/core/entity"

	"github.com/google/uuid"
)

const (
	TypeTaskDue           = "task_due"
	TypeEventSoon         = "event_soon"
	TypeDMNew             = "dm_new"
	TypeGroupUpdate       = "group_update"
	TypeAdminAnnouncement = "admin_announcement"
	TypeRSVPReminder      = "rsvp_reminder"
	TypeStudyBuddyRequest = "study_buddy_request"
)

type Notification struct {
	entity.BaseEntity
	UserID  uuid.UUID    `db:"user_id"`
	Title   string       `db:"title"`
	Message string       `db:"message"`
	Type    string       `db:"type"`
	Data    entity.JSONB `db:"data"`
	IsRead  bool         `db:"is_read"`
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
