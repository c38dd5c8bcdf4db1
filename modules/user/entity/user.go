package entity

import (
	"campusflow/core/entity"
	"time"

	"github.com/lib/pq"
)

type User struct {
	entity.BaseEntity
	Email         string         `db:"email"`
	PasswordHash  *string        `db:"password_hash"`
	GoogleSub     *string        `db:"google_sub"`
	Name          string         `db:"name"`
	Course        string         `db:"course"`
	Year          int            `db:"year"`
	Interests     pq.StringArray `db:"interests"`
	Bio           string         `db:"bio"`
	AvatarURL     string         `db:"avatar_url"`
	RoleStudent   bool           `db:"role_student"`
	RoleOrganizer bool           `db:"role_organizer"`
	RoleAdmin     bool           `db:"role_admin"`
	QuietStart    string         `db:"quiet_start"`
	QuietEnd      string         `db:"quiet_end"`
	QuietEnabled  bool           `db:"quiet_enabled"`
	PushToken     *string        `db:"push_token"`
	LastSeen      *time.Time     `db:"last_seen"`
}

const (
	DefaultQuietStart = "22:00"
	DefaultQuietEnd   = "07:00"
)

// NewUser applies the sign-up defaults: student only, quiet hours 22:00-07:00 enabled.
func NewUser(email, name string) *User {
	u := &User{
		Email:        email,
		Name:         name,
		Interests:    pq.StringArray{},
		RoleStudent:  true,
		QuietStart:   DefaultQuietStart,
		QuietEnd:     DefaultQuietEnd,
		QuietEnabled: true,
	}
	u.Touch()
	return u
}

func (u *User) IsStaff() bool {
	return u.RoleAdmin || u.RoleOrganizer
}

func (u *User) HasRole(role string) bool {
	switch role {
	case "admin":
		return u.RoleAdmin
	case "organizer":
		return u.RoleOrganizer
	case "student":
		return u.RoleStudent
	}
	return false
}
