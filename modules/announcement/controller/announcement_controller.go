package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/modules/announcement/dto"
	"campusflow/modules/announcement/service"
	"campusflow/modules/announcement/validator"

	"github.com/labstack/echo/v4"
)

type AnnouncementController struct {
	service *service.AnnouncementService
	controller.BaseController
}

func NewAnnouncementController(service *service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Publish
// @Summary Publish announcement
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} dto.PublishResponse
// @Router /private/admin/announcements [post]
func (h *AnnouncementController) Publish(c echo.Context) error {
	adminID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.CreateAnnouncementRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateCreateAnnouncement(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.Publish(c.Request().Context(), adminID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.CreatedResponse(c, result, "Announcement published")
}

// List
// @Summary List announcements for the caller
// @Tags Announcement
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.AnnouncementResponse
// @Router /private/announcements [get]
func (h *AnnouncementController) List(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.List(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Announcements retrieved successfully")
}
