package validator

import "testing"

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"student@uni.ac.uk", true},
		{"a@b.c", true},
		{"no-at-sign.com", false},
		{"spaces in@uni.edu", false},
		{"missing@tld", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEmail(tt.in); got != tt.want {
			t.Errorf("IsEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if msg := ValidatePassword("12345"); msg != "Password must be at least 6 characters" {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := ValidatePassword("123456"); msg != "" {
		t.Fatalf("six characters should pass, got %q", msg)
	}
}

func TestIsClock(t *testing.T) {
	for _, ok := range []string{"00:00", "07:30", "23:59"} {
		if !IsClock(ok) {
			t.Errorf("IsClock(%q) = false", ok)
		}
	}
	for _, bad := range []string{"24:00", "7:30", "12:60", "noon"} {
		if IsClock(bad) {
			t.Errorf("IsClock(%q) = true", bad)
		}
	}
}

type sample struct {
	Email string   `json:"email" validate:"required,loose_email"`
	Start string   `json:"start" validate:"omitempty,hhmm"`
	IDs   []string `json:"ids" validate:"omitempty,uuid_list"`
	Level string   `json:"level" validate:"omitempty,oneof=low med high"`
}

func TestStructUsesJSONFieldNames(t *testing.T) {
	res := Struct(sample{Email: "bad", Start: "25:00", IDs: []string{"nope"}, Level: "urgent"})
	if !res.HasError() {
		t.Fatal("expected errors")
	}
	got := map[string]bool{}
	for _, e := range res.Errors {
		got[e.Field] = true
	}
	for _, f := range []string{"email", "start", "ids", "level"} {
		if !got[f] {
			t.Errorf("missing error for %s: %+v", f, res.Errors)
		}
	}

	ok := Struct(sample{Email: "x@y.io", Start: "22:00", IDs: []string{"0b9e3c8e-7f1a-4c53-9c1e-2b1f6b0f8a11"}, Level: "med"})
	if ok.HasError() {
		t.Fatalf("unexpected errors: %+v", ok.Errors)
	}
}
