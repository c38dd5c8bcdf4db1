package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/core/params"
	"campusflow/modules/notification/dto"
	"campusflow/modules/notification/service"
	"campusflow/modules/notification/validator"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service *service.NotificationService
	controller.BaseController
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetMyNotifications retrieves the caller's notifications, newest first
// @Summary List notifications
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/notifications [get]
func (h *NotificationController) GetMyNotifications(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	queryParams := params.NewQueryParams(c)
	result, appErr := h.service.GetMyNotifications(c.Request().Context(), userID, *queryParams)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Notifications retrieved successfully")
}

// MarkAsRead marks specific notifications as read
// @Summary Mark notifications read
// @Tags Notification
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MarkAsReadRequest true "Notification ids"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/notifications/mark-read [put]
func (h *NotificationController) MarkAsRead(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.MarkAsReadRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateMarkAsRead(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	if appErr := h.service.MarkAsRead(c.Request().Context(), userID, requestData.IDs); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Marked as read successfully")
}

// MarkAllAsRead
// @Summary Mark all notifications read
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/notifications/mark-all-read [put]
func (h *NotificationController) MarkAllAsRead(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	if appErr := h.service.MarkAllAsRead(c.Request().Context(), userID); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Marked all as read successfully")
}

// CountUnread
// @Summary Unread notification count
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Router /private/notifications/unread-count [get]
func (h *NotificationController) CountUnread(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.CountUnread(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Unread count retrieved")
}
