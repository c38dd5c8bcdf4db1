package dto

import (
	"time"

	"github.com/google/uuid"
)

type Roles struct {
	Student   bool `json:"student"`
	Organizer bool `json:"organizer"`
	Admin     bool `json:"admin"`
}

type QuietHours struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Enabled bool   `json:"enabled"`
}

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Course       string     `json:"course"`
	Year         int        `json:"year"`
	Interests    []string   `json:"interests"`
	Bio          string     `json:"bio"`
	AvatarURL    string     `json:"avatar_url"`
	Roles        Roles      `json:"roles"`
	QuietHours   QuietHours `json:"quiet_hours"`
	HasPushToken bool       `json:"has_push_token"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Course    string    `json:"course"`
	Year      int       `json:"year"`
	Interests []string  `json:"interests"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
}

type QuietHoursRequest struct {
	Start   string `json:"start" validate:"required,hhmm"`
	End     string `json:"end" validate:"required,hhmm"`
	Enabled bool   `json:"enabled"`
}

// UpdateProfileRequest is a partial update; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name       *string            `json:"name"`
	Course     *string            `json:"course"`
	Year       *int               `json:"year" validate:"omitempty,gte=0,lte=10"`
	Interests  []string           `json:"interests" validate:"omitempty,max=20,dive,max=40"`
	Bio        *string            `json:"bio"`
	QuietHours *QuietHoursRequest `json:"quiet_hours"`
}

type PushTokenRequest struct {
	Token string `json:"token" validate:"required,max=255"`
}

type RolesRequest struct {
	Organizer *bool `json:"organizer"`
	Admin     *bool `json:"admin"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
	Progress  int    `json:"progress"`
}
