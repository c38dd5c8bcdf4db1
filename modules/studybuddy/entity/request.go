package entity

import (
	"campusflow/core/entity"
	stdErrors "errors"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

var ErrDuplicatePending = stdErrors.New("a pending request already exists")

type Request struct {
	entity.BaseEntity
	RequesterID uuid.UUID `db:"requester_id"`
	TargetID    uuid.UUID `db:"target_id"`
	Course      string    `db:"course"`
	Message     string    `db:"message"`
	Status      string    `db:"status"`
}
