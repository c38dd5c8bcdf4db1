package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title      string     `json:"title" validate:"required"`
	Notes      string     `json:"notes"`
	DueAt      time.Time  `json:"due_at" validate:"required"`
	Course     string     `json:"course" validate:"max=80"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=low med high"`
	ReminderAt *time.Time `json:"reminder_at"`
}

// UpdateTaskRequest is a partial update; nil fields are left alone.
type UpdateTaskRequest struct {
	Title      *string    `json:"title"`
	Notes      *string    `json:"notes"`
	DueAt      *time.Time `json:"due_at"`
	Course     *string    `json:"course" validate:"omitempty,max=80"`
	Priority   *string    `json:"priority" validate:"omitempty,oneof=low med high"`
	ReminderAt *time.Time `json:"reminder_at"`
	Completed  *bool      `json:"completed"`
}

type TaskFilter struct {
	Status   string `query:"status" json:"status" validate:"omitempty,oneof=all active completed overdue today week"`
	Course   string `query:"course" json:"course"`
	Priority string `query:"priority" json:"priority" validate:"omitempty,oneof=low med high"`
	Range    string `query:"range" json:"range" validate:"omitempty,oneof=today week month"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes"`
	DueAt       time.Time  `json:"due_at"`
	Course      string     `json:"course"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ReminderAt  *time.Time `json:"reminder_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TaskStats struct {
	Completed      int `json:"completed"`
	Total          int `json:"total"`
	CompletionRate int `json:"completion_rate"`
}
