package entity

import (
	"campusflow/core/entity"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	VisibilityPublic  = "public"
	VisibilityGroup   = "group"
	VisibilityPrivate = "private"

	LocationPhysical = "physical"
	LocationLink     = "link"

	RSVPGoing      = "going"
	RSVPInterested = "interested"
)

var (
	ErrEventNotFound = stdErrors.New("event not found")
	ErrEventFull     = stdErrors.New("event is at capacity")
)

type Event struct {
	entity.BaseEntity
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	Category        string     `db:"category"`
	StartsAt        time.Time  `db:"starts_at"`
	EndsAt          time.Time  `db:"ends_at"`
	LocationType    string     `db:"location_type"`
	LocationValue   string     `db:"location_value"`
	Visibility      string     `db:"visibility"`
	GroupID         *uuid.UUID `db:"group_id"`
	HostID          uuid.UUID  `db:"host_id"`
	HostName        string     `db:"host_name"`
	Capacity        *int       `db:"capacity"`
	AttendeeCount   int        `db:"attendee_count"`
	InterestedCount int        `db:"interested_count"`
	Status          string     `db:"status"`
	Featured        bool       `db:"featured"`
	CoverURL        string     `db:"cover_url"`
}

type EventRSVP struct {
	entity.BaseEntity
	EventID uuid.UUID `db:"event_id"`
	UserID  uuid.UUID `db:"user_id"`
	Status  string    `db:"status"`
}

// UserRSVP is an event joined with the caller's RSVP status.
type UserRSVP struct {
	Event
	RSVPStatus string `db:"rsvp_status"`
}

// RSVPChange describes the outcome of ChangeRSVP. Prev and Next are "" for no RSVP.
type RSVPChange struct {
	Prev            string
	Next            string
	AttendeeCount   int
	InterestedCount int
}

// PlanRSVP returns the counter deltas for moving a user's RSVP from prev to next.
// A new "going" on a full event fails with ErrEventFull.
func PlanRSVP(ev *Event, prev, next string) (going, interested int, err error) {
	if prev == next {
		return 0, 0, nil
	}
	if next == RSVPGoing && ev.Capacity != nil && ev.AttendeeCount >= *ev.Capacity {
		return 0, 0, ErrEventFull
	}
	switch prev {
	case RSVPGoing:
		going--
	case RSVPInterested:
		interested--
	}
	switch next {
	case RSVPGoing:
		going++
	case RSVPInterested:
		interested++
	}
	return going, interested, nil
}
