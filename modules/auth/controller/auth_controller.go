package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/modules/auth/dto"
	"campusflow/modules/auth/service"
	"campusflow/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	service *service.AuthService
	controller.BaseController
}

func NewAuthController(service *service.AuthService) *AuthController {
	return &AuthController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Register creates an email/password account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /public/auth/register [post]
func (h *AuthController) Register(c echo.Context) error {
	requestData := new(dto.RegisterRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateRegister(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.Register(c.Request().Context(), requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.CreatedResponse(c, result, "Account created successfully")
}

// Login signs in with email and password
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /public/auth/login [post]
func (h *AuthController) Login(c echo.Context) error {
	requestData := new(dto.LoginRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateLogin(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.Login(c.Request().Context(), requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Login successful")
}

// Refresh exchanges a refresh token for a new pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /public/auth/refresh [post]
func (h *AuthController) Refresh(c echo.Context) error {
	requestData := new(dto.RefreshRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateRefresh(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.Refresh(c.Request().Context(), requestData.RefreshToken)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Token refreshed successfully")
}

// Logout revokes the presented access token
// @Summary Logout
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/auth/logout [post]
func (h *AuthController) Logout(c echo.Context) error {
	claims, ok := controller.CurrentClaims(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	if appErr := h.service.Logout(c.Request().Context(), claims); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Logout successful")
}

// ForgotPassword mails a reset code if the account exists
// @Summary Forgot password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email"
// @Success 200 {object} controller.SuccessResponse
// @Router /public/auth/forgot-password [post]
func (h *AuthController) ForgotPassword(c echo.Context) error {
	requestData := new(dto.ForgotPasswordRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateForgotPassword(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	h.service.ForgotPassword(c.Request().Context(), requestData.Email)
	return h.SuccessResponse(c, nil, "If an account exists for this email, a reset code has been sent")
}

// ResetPassword sets a new password using the mailed code
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Code and new password"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /public/auth/reset-password [post]
func (h *AuthController) ResetPassword(c echo.Context) error {
	requestData := new(dto.ResetPasswordRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateResetPassword(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	if appErr := h.service.ResetPassword(c.Request().Context(), requestData); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Password reset successfully")
}

// GoogleLogin returns the Google consent URL
// @Summary Google sign-in URL
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.GoogleURLResponse
// @Router /public/auth/google [get]
func (h *AuthController) GoogleLogin(c echo.Context) error {
	url, appErr := h.service.GoogleAuthURL(c.Request().Context())
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, dto.GoogleURLResponse{URL: url}, "Google auth URL generated")
}

// GoogleCallback completes the web OAuth flow
// @Summary Google callback
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /public/auth/google/callback [get]
func (h *AuthController) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return h.BadRequest(errors.ErrInvalidInput, "Missing code or state", nil)
	}

	result, appErr := h.service.GoogleCallback(c.Request().Context(), code, state)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Login successful")
}

// GoogleIDToken signs in with an ID token obtained on the device
// @Summary Google ID-token sign-in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleIDTokenRequest true "ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /public/auth/google/id-token [post]
func (h *AuthController) GoogleIDToken(c echo.Context) error {
	requestData := new(dto.GoogleIDTokenRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateGoogleIDToken(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.GoogleIDToken(c.Request().Context(), requestData.IDToken)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Login successful")
}

// Me returns the signed-in user
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Router /private/auth/me [get]
func (h *AuthController) Me(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.Me(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result.User, "User retrieved successfully")
}
