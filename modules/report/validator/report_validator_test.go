package validator

import (
	"campusflow/modules/report/dto"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidateCreateReport(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		name string
		req  dto.CreateReportRequest
		ok   bool
	}{
		{"ok", dto.CreateReportRequest{TargetType: "message", TargetID: id, Reason: "spam"}, true},
		{"exact limit", dto.CreateReportRequest{TargetType: "user", TargetID: id, Reason: strings.Repeat("é", 500)}, true},
		{"too long", dto.CreateReportRequest{TargetType: "user", TargetID: id, Reason: strings.Repeat("r", 501)}, false},
		{"blank reason", dto.CreateReportRequest{TargetType: "event", TargetID: id, Reason: "   "}, false},
		{"missing reason", dto.CreateReportRequest{TargetType: "event", TargetID: id}, false},
		{"bad type", dto.CreateReportRequest{TargetType: "group", TargetID: id, Reason: "x"}, false},
		{"bad id", dto.CreateReportRequest{TargetType: "user", TargetID: "nope", Reason: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := !ValidateCreateReport(&tt.req).HasError(); got != tt.ok {
				t.Errorf("valid = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestValidateStatusFilter(t *testing.T) {
	for _, s := range []string{"", "open", "reviewed", "closed"} {
		if ValidateStatusFilter(s).HasError() {
			t.Errorf("%q rejected", s)
		}
	}
	if !ValidateStatusFilter("pending").HasError() {
		t.Error("pending accepted")
	}
}
