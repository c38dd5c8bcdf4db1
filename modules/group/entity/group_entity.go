package entity

import (
	"campusflow/core/entity"
	"time"

	"github.com/google/uuid"
)

const (
	TypeSociety = "society"
	TypeStudy   = "study"

	RoleModerator = "moderator"
	RoleMember    = "member"
)

type Group struct {
	entity.BaseEntity
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Type        string    `db:"type"`
	Description string    `db:"description"`
	OwnerID     uuid.UUID `db:"owner_id"`
	MemberCount int       `db:"member_count"`
}

type PaginatedGroupEntity = entity.Pagination[Group]

// Member is a group_members row joined with the member's public profile.
type Member struct {
	GroupID   uuid.UUID `db:"group_id"`
	UserID    uuid.UUID `db:"user_id"`
	Role      string    `db:"role"`
	JoinedAt  time.Time `db:"joined_at"`
	Name      string    `db:"name"`
	AvatarURL string    `db:"avatar_url"`
}
