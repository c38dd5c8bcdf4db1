package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/modules/report/dto"
	"campusflow/modules/report/service"
	"campusflow/modules/report/validator"

	"github.com/labstack/echo/v4"
)

type ReportController struct {
	service *service.ReportService
	controller.BaseController
}

func NewReportController(service *service.ReportService) *ReportController {
	return &ReportController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateReport flags a message, user or event for moderators
// @Summary Create report
// @Tags Report
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Report"
// @Success 201 {object} dto.ReportResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/reports [post]
func (h *ReportController) CreateReport(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.CreateReportRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateCreateReport(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.CreateReport(c.Request().Context(), userID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.CreatedResponse(c, result, "Report submitted")
}

// ListReports
// @Summary List reports
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "open|reviewed|closed"
// @Success 200 {array} dto.ReportResponse
// @Router /private/admin/reports [get]
func (h *ReportController) ListReports(c echo.Context) error {
	status := c.QueryParam("status")
	if result := validator.ValidateStatusFilter(status); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.ListReports(c.Request().Context(), status)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Reports retrieved successfully")
}

// Review
// @Summary Review report
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body dto.ReviewRequest true "Action taken"
// @Success 200 {object} dto.ReportResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/admin/reports/{id}/review [post]
func (h *ReportController) Review(c echo.Context) error {
	adminID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid report id", nil)
	}

	requestData := new(dto.ReviewRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateReview(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.Review(c.Request().Context(), adminID, id, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Report reviewed")
}

// Close
// @Summary Close report
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/admin/reports/{id}/close [post]
func (h *ReportController) Close(c echo.Context) error {
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid report id", nil)
	}
	result, appErr := h.service.Close(c.Request().Context(), id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Report closed")
}

// Stats
// @Summary Moderation dashboard counts
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /private/admin/stats [get]
func (h *ReportController) Stats(c echo.Context) error {
	result, appErr := h.service.Stats(c.Request().Context())
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Stats retrieved successfully")
}
