package validator

import (
	"campusflow/core/utils"
	"campusflow/core/validator"
	"campusflow/modules/auth/dto"
)

func ValidateRegister(req *dto.RegisterRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if msg := validator.ValidatePassword(req.Password); msg != "" {
		result.Add("password", msg)
	}
	if req.Name != "" && utils.Sanitize(req.Name) == "" {
		result.Add("name", "Name cannot be empty")
	}
	return result
}

func ValidateLogin(req *dto.LoginRequest) *validator.ValidationResult {
	return validator.Struct(req)
}

func ValidateRefresh(req *dto.RefreshRequest) *validator.ValidationResult {
	return validator.Struct(req)
}

func ValidateForgotPassword(req *dto.ForgotPasswordRequest) *validator.ValidationResult {
	return validator.Struct(req)
}

func ValidateResetPassword(req *dto.ResetPasswordRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if msg := validator.ValidatePassword(req.NewPassword); msg != "" {
		result.Add("new_password", msg)
	}
	return result
}

func ValidateGoogleIDToken(req *dto.GoogleIDTokenRequest) *validator.ValidationResult {
	return validator.Struct(req)
}
