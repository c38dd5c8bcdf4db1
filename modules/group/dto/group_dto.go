package dto

import (
	"campusflow/core/entity"
	"time"

	"github.com/google/uuid"
)

type GroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=society study"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	MemberCount int       `json:"member_count"`
	IsMember    bool      `json:"is_member"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PaginatedGroupResponse = entity.Pagination[GroupResponse]

type MemberResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

type MembershipResponse struct {
	GroupID     uuid.UUID `json:"group_id"`
	IsMember    bool      `json:"is_member"`
	MemberCount int       `json:"member_count"`
}
