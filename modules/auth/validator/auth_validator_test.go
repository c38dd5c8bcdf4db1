package validator

import (
	"campusflow/modules/auth/dto"
	"testing"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name   string
		req    dto.RegisterRequest
		fields []string
	}{
		{
			name: "valid",
			req:  dto.RegisterRequest{Email: "ada@uni.ac.uk", Password: "secret1", Name: "Ada"},
		},
		{
			name:   "short password",
			req:    dto.RegisterRequest{Email: "ada@uni.ac.uk", Password: "abc", Name: "Ada"},
			fields: []string{"password"},
		},
		{
			name:   "bad email and blank name",
			req:    dto.RegisterRequest{Email: "ada", Password: "secret1", Name: "   "},
			fields: []string{"email", "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRegister(&tt.req)
			got := map[string]bool{}
			for _, e := range result.Errors {
				got[e.Field] = true
			}
			if len(tt.fields) == 0 && result.HasError() {
				t.Fatalf("unexpected errors: %+v", result.Errors)
			}
			for _, f := range tt.fields {
				if !got[f] {
					t.Errorf("expected error on %q, got %+v", f, result.Errors)
				}
			}
		})
	}
}

func TestValidateResetPassword(t *testing.T) {
	req := &dto.ResetPasswordRequest{Email: "ada@uni.ac.uk", Code: "ABC23", NewPassword: "12345"}
	result := ValidateResetPassword(req)
	if len(result.Errors) != 2 {
		t.Fatalf("want code and password errors, got %+v", result.Errors)
	}
}
