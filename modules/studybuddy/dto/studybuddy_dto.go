package dto

import (
	userDto "campusflow/modules/user/dto"
	"time"

	"github.com/google/uuid"
)

type CreateRequest struct {
	TargetID string `json:"target_id" validate:"required,uuid"`
	Course   string `json:"course" validate:"max=100"`
	Message  string `json:"message" validate:"max=300"`
}

type Match struct {
	Profile         userDto.PublicProfile `json:"profile"`
	SharedInterests []string              `json:"shared_interests"`
	SameYear        bool                  `json:"same_year"`
}

type RequestResponse struct {
	ID        uuid.UUID              `json:"id"`
	Requester *userDto.PublicProfile `json:"requester,omitempty"`
	TargetID  uuid.UUID              `json:"target_id"`
	Course    string                 `json:"course"`
	Message   string                 `json:"message"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

type AcceptResponse struct {
	RequestID uuid.UUID `json:"request_id"`
	ChatID    uuid.UUID `json:"chat_id"`
}
