package entity

import (
	"campusflow/core/entity"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	TypeDM    = "dm"
	TypeGroup = "group"
	TypeRoom  = "room"
)

type Chat struct {
	entity.BaseEntity
	Type          string         `db:"type"`
	SubjectID     *uuid.UUID     `db:"subject_id"`
	Participants  pq.StringArray `db:"participants"`
	DMKey         *string        `db:"dm_key"`
	LastMessage   string         `db:"last_message"`
	LastMessageAt *time.Time     `db:"last_message_at"`
}

// ChatSummary is a chat seen by one participant, with their unread counter.
type ChatSummary struct {
	Chat
	UnreadCount int `db:"unread_count"`
}

type Message struct {
	entity.BaseEntity
	ChatID       uuid.UUID      `db:"chat_id"`
	SenderID     uuid.UUID      `db:"sender_id"`
	SenderName   string         `db:"sender_name"`
	SenderAvatar string         `db:"sender_avatar"`
	Text         string         `db:"text"`
	ReadBy       pq.StringArray `db:"read_by"`
}

// DMKey identifies the direct chat between two users regardless of order.
func DMKey(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return ids[0] + ":" + ids[1]
}

func (c *Chat) HasParticipant(userID uuid.UUID) bool {
	id := userID.String()
	for _, p := range c.Participants {
		if p == id {
			return true
		}
	}
	return false
}

func (c *Chat) ParticipantIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(c.Participants))
	for _, p := range c.Participants {
		if id, err := uuid.Parse(p); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// Others returns every participant except userID.
func (c *Chat) Others(userID uuid.UUID) []uuid.UUID {
	all := c.ParticipantIDs()
	out := all[:0]
	for _, id := range all {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}
