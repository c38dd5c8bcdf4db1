package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/modules/user/dto"
	"campusflow/modules/user/service"
	"campusflow/modules/user/validator"

	"github.com/labstack/echo/v4"
)

type UserController struct {
	service       *service.UserService
	maxUploadSize int64
	controller.BaseController
}

func NewUserController(service *service.UserService, maxUploadMB int) *UserController {
	if maxUploadMB <= 0 {
		maxUploadMB = 5
	}
	return &UserController{
		service:        service,
		maxUploadSize:  int64(maxUploadMB) << 20,
		BaseController: controller.NewBaseController(),
	}
}

// GetProfile returns another user's public profile
// @Summary Get public profile
// @Tags User
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.PublicProfile
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/users/{id} [get]
func (h *UserController) GetProfile(c echo.Context) error {
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid user id", nil)
	}
	result, appErr := h.service.GetProfile(c.Request().Context(), id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Profile retrieved successfully")
}

// UpdateMe partially updates the caller's profile
// @Summary Update my profile
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/users/me [put]
func (h *UserController) UpdateMe(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.UpdateProfileRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateUpdateProfile(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.UpdateMe(c.Request().Context(), userID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Profile updated successfully")
}

// SetPushToken registers the device push token
// @Summary Register push token
// @Tags User
// @Security BearerAuth
// @Accept json
// @Param request body dto.PushTokenRequest true "Expo push token"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/users/me/push-token [put]
func (h *UserController) SetPushToken(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.PushTokenRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidatePushToken(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	if appErr := h.service.SetPushToken(c.Request().Context(), userID, requestData.Token); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Push token registered")
}

// ClearPushToken removes the device push token
// @Summary Clear push token
// @Tags User
// @Security BearerAuth
// @Success 200 {object} controller.SuccessResponse
// @Router /private/users/me/push-token [delete]
func (h *UserController) ClearPushToken(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	if appErr := h.service.ClearPushToken(c.Request().Context(), userID); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Push token cleared")
}

// UploadAvatar processes and stores a new avatar image
// @Summary Upload avatar
// @Tags User
// @Security BearerAuth
// @Accept multipart/form-data
// @Param file formData file true "Image"
// @Success 200 {object} dto.AvatarResponse
// @Router /private/users/me/avatar [post]
func (h *UserController) UploadAvatar(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	raw, httpErr := controller.ReadUpload(c, "file", h.maxUploadSize)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := h.service.UploadAvatar(c.Request().Context(), userID, raw)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Avatar uploaded successfully")
}

// Block hides a user from the caller and prevents new DMs
// @Summary Block user
// @Tags User
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/users/{id}/block [post]
func (h *UserController) Block(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	targetID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid user id", nil)
	}
	if appErr := h.service.Block(c.Request().Context(), userID, targetID); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "User blocked")
}

// Unblock
// @Summary Unblock user
// @Tags User
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/users/{id}/block [delete]
func (h *UserController) Unblock(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	targetID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid user id", nil)
	}
	if appErr := h.service.Unblock(c.Request().Context(), userID, targetID); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "User unblocked")
}

// ListBlocked
// @Summary List blocked users
// @Tags User
// @Security BearerAuth
// @Success 200 {array} dto.PublicProfile
// @Router /private/users/me/blocked [get]
func (h *UserController) ListBlocked(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.ListBlocked(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Blocked users retrieved")
}

// SetRoles grants or revokes organizer/admin
// @Summary Set user roles
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "User ID"
// @Param request body dto.RolesRequest true "Roles"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/admin/users/{id}/roles [put]
func (h *UserController) SetRoles(c echo.Context) error {
	targetID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid user id", nil)
	}
	requestData := new(dto.RolesRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	result, appErr := h.service.SetRoles(c.Request().Context(), targetID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Roles updated")
}
