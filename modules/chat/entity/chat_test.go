package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestDMKeyIsOrderIndependent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	if DMKey(a, b) != DMKey(b, a) {
		t.Errorf("%s != %s", DMKey(a, b), DMKey(b, a))
	}
	if DMKey(a, b) == DMKey(a, uuid.New()) {
		t.Error("different pairs share a key")
	}
}

func TestParticipants(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	c := &Chat{Participants: pq.StringArray{a.String(), b.String(), "not-a-uuid"}}

	if !c.HasParticipant(a) || c.HasParticipant(uuid.New()) {
		t.Error("HasParticipant wrong")
	}
	if got := c.ParticipantIDs(); len(got) != 2 {
		t.Errorf("ParticipantIDs = %v", got)
	}
	others := c.Others(a)
	if len(others) != 1 || others[0] != b {
		t.Errorf("Others = %v", others)
	}
}
