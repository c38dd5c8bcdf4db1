package entity

import (
	"campusflow/core/entity"
	"time"

	"github.com/google/uuid"
)

const (
	PriorityLow  = "low"
	PriorityMed  = "med"
	PriorityHigh = "high"
)

type Task struct {
	entity.BaseEntity
	UserID      uuid.UUID  `db:"user_id"`
	Title       string     `db:"title"`
	Notes       string     `db:"notes"`
	DueAt       time.Time  `db:"due_at"`
	Course      string     `db:"course"`
	Priority    string     `db:"priority"`
	Completed   bool       `db:"completed"`
	CompletedAt *time.Time `db:"completed_at"`
	ReminderAt  *time.Time `db:"reminder_at"`
}
