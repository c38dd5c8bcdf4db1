package dto

import (
	userDto "campusflow/modules/user/dto"
	"time"
)

type RegisterRequest struct {
	Email     string   `json:"email" validate:"required,loose_email"`
	Password  string   `json:"password" validate:"required"`
	Name      string   `json:"name" validate:"required,max=60"`
	Course    string   `json:"course" validate:"max=80"`
	Year      int      `json:"year" validate:"gte=0,lte=10"`
	Interests []string `json:"interests" validate:"omitempty,max=20,dive,max=40"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,loose_email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,loose_email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required"`
}

type GoogleIDTokenRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token"`
	ExpiresAt    time.Time             `json:"expires_at"`
	User         *userDto.UserResponse `json:"user"`
}

type GoogleURLResponse struct {
	URL string `json:"url"`
}
