package entity

import "testing"

func TestCanMove(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusOpen, StatusReviewed, true},
		{StatusOpen, StatusClosed, true},
		{StatusReviewed, StatusClosed, true},
		{StatusReviewed, StatusReviewed, false},
		{StatusClosed, StatusReviewed, false},
		{StatusClosed, StatusClosed, false},
		{StatusOpen, StatusOpen, false},
	}
	for _, tt := range tests {
		if got := CanMove(tt.from, tt.to); got != tt.want {
			t.Errorf("CanMove(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
