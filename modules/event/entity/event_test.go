package entity

import "testing"

func TestPlanRSVP(t *testing.T) {
	two := 2
	tests := []struct {
		name           string
		attendees      int
		capacity       *int
		prev, next     string
		wantGoing      int
		wantInterested int
		wantErr        error
	}{
		{name: "new going", prev: "", next: RSVPGoing, wantGoing: 1},
		{name: "new interested", prev: "", next: RSVPInterested, wantInterested: 1},
		{name: "same status twice", prev: RSVPGoing, next: RSVPGoing},
		{name: "interested to going", prev: RSVPInterested, next: RSVPGoing, wantGoing: 1, wantInterested: -1},
		{name: "going to interested", attendees: 2, capacity: &two, prev: RSVPGoing, next: RSVPInterested, wantGoing: -1, wantInterested: 1},
		{name: "remove going", attendees: 1, prev: RSVPGoing, next: "", wantGoing: -1},
		{name: "remove nothing", prev: "", next: ""},
		{name: "full", attendees: 2, capacity: &two, prev: "", next: RSVPGoing, wantErr: ErrEventFull},
		{name: "full from interested", attendees: 2, capacity: &two, prev: RSVPInterested, next: RSVPGoing, wantErr: ErrEventFull},
		{name: "already going on a full event", attendees: 2, capacity: &two, prev: RSVPGoing, next: RSVPGoing},
		{name: "interested on a full event", attendees: 2, capacity: &two, prev: "", next: RSVPInterested, wantInterested: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &Event{AttendeeCount: tt.attendees, Capacity: tt.capacity}
			going, interested, err := PlanRSVP(ev, tt.prev, tt.next)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if going != tt.wantGoing || interested != tt.wantInterested {
				t.Errorf("deltas = (%d, %d), want (%d, %d)", going, interested, tt.wantGoing, tt.wantInterested)
			}
		})
	}
}
