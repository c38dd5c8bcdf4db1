package validator

import (
	"campusflow/modules/event/dto"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateCreateEvent(t *testing.T) {
	start := time.Date(2026, 11, 3, 18, 0, 0, 0, time.UTC)
	base := func() dto.CreateEventRequest {
		return dto.CreateEventRequest{
			Title:    "Board games night",
			Category: "social",
			StartsAt: start,
			EndsAt:   start.Add(2 * time.Hour),
			Location: dto.Location{Type: "physical", Value: "Union bar"},
		}
	}
	groupID := uuid.New()

	tests := []struct {
		name    string
		mutate  func(r *dto.CreateEventRequest)
		wantErr string
	}{
		{"ok", func(r *dto.CreateEventRequest) {}, ""},
		{"blank title", func(r *dto.CreateEventRequest) { r.Title = "  " }, "title"},
		{"long title", func(r *dto.CreateEventRequest) { r.Title = strings.Repeat("t", 101) }, "title"},
		{"long description", func(r *dto.CreateEventRequest) { r.Description = strings.Repeat("d", 1001) }, "description"},
		{"ends before start", func(r *dto.CreateEventRequest) { r.EndsAt = start.Add(-time.Minute) }, "ends_at"},
		{"bad category", func(r *dto.CreateEventRequest) { r.Category = "party" }, "category"},
		{"bad location", func(r *dto.CreateEventRequest) { r.Location.Type = "moon" }, "type"},
		{"group without id", func(r *dto.CreateEventRequest) { r.Visibility = "group" }, "group_id"},
		{"group with id", func(r *dto.CreateEventRequest) { r.Visibility = "group"; r.GroupID = &groupID }, ""},
		{"zero capacity", func(r *dto.CreateEventRequest) { zero := 0; r.Capacity = &zero }, "capacity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			result := ValidateCreateEvent(&req)
			if tt.wantErr == "" {
				if result.HasError() {
					t.Fatalf("unexpected errors %+v", result.Errors)
				}
				return
			}
			found := false
			for _, e := range result.Errors {
				found = found || e.Field == tt.wantErr
			}
			if !found {
				t.Errorf("want error on %s, got %+v", tt.wantErr, result.Errors)
			}
		})
	}
}

func TestValidateEventFilter(t *testing.T) {
	from := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	if !ValidateEventFilter(&dto.EventFilter{From: &from, To: &to}).HasError() {
		t.Error("inverted range accepted")
	}
	if ValidateEventFilter(&dto.EventFilter{Category: "study", Location: "link"}).HasError() {
		t.Error("valid filter rejected")
	}
}

func TestValidateRSVP(t *testing.T) {
	if ValidateRSVP(&dto.RSVPRequest{Status: "going"}).HasError() {
		t.Error("going rejected")
	}
	if !ValidateRSVP(&dto.RSVPRequest{Status: "maybe"}).HasError() {
		t.Error("maybe accepted")
	}
}
