package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/modules/studybuddy/dto"
	"campusflow/modules/studybuddy/service"
	"campusflow/modules/studybuddy/validator"

	"github.com/labstack/echo/v4"
)

type StudyBuddyController struct {
	service *service.StudyBuddyService
	controller.BaseController
}

func NewStudyBuddyController(service *service.StudyBuddyService) *StudyBuddyController {
	return &StudyBuddyController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Suggestions ranks other students by shared interests
// @Summary Study buddy suggestions
// @Tags StudyBuddy
// @Security BearerAuth
// @Produce json
// @Param course query string false "Course"
// @Success 200 {array} dto.Match
// @Router /private/study-buddies [get]
func (h *StudyBuddyController) Suggestions(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.Suggestions(c.Request().Context(), userID, c.QueryParam("course"))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Study buddies retrieved successfully")
}

// SendRequest
// @Summary Send study buddy request
// @Tags StudyBuddy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateRequest true "Request"
// @Success 201 {object} dto.RequestResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/study-buddies/requests [post]
func (h *StudyBuddyController) SendRequest(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.CreateRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateCreateRequest(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.SendRequest(c.Request().Context(), userID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.CreatedResponse(c, result, "Request sent")
}

// Incoming
// @Summary Incoming study buddy requests
// @Tags StudyBuddy
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.RequestResponse
// @Router /private/study-buddies/requests [get]
func (h *StudyBuddyController) Incoming(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.Incoming(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Requests retrieved successfully")
}

// Accept
// @Summary Accept study buddy request
// @Tags StudyBuddy
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.AcceptResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/study-buddies/requests/{id}/accept [post]
func (h *StudyBuddyController) Accept(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request id", nil)
	}
	result, appErr := h.service.Accept(c.Request().Context(), userID, id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Request accepted")
}

// Reject
// @Summary Reject study buddy request
// @Tags StudyBuddy
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/study-buddies/requests/{id}/reject [post]
func (h *StudyBuddyController) Reject(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid request id", nil)
	}
	if appErr := h.service.Reject(c.Request().Context(), userID, id); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Request rejected")
}
