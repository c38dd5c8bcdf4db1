package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/modules/event/dto"
	"campusflow/modules/event/service"
	"campusflow/modules/event/validator"
	"time"

	"github.com/labstack/echo/v4"
)

type EventController struct {
	service       *service.EventService
	maxUploadSize int64
	controller.BaseController
}

func NewEventController(service *service.EventService, maxUploadMB int) *EventController {
	return &EventController{
		service:        service,
		maxUploadSize:  int64(maxUploadMB) << 20,
		BaseController: controller.NewBaseController(),
	}
}

func parseTimeQuery(c echo.Context, name string) (*time.Time, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// CreateEvent submits an event; staff events are approved straight away
// @Summary Create event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/events [post]
func (h *EventController) CreateEvent(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.CreateEventRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateCreateEvent(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.CreateEvent(c.Request().Context(), userID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.CreatedResponse(c, result, "Event created successfully")
}

// ListEvents returns approved events, soonest first
// @Summary List events
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param category query string false "social|study|sports|culture|other"
// @Param location query string false "physical|link"
// @Param from query string false "RFC3339"
// @Param to query string false "RFC3339"
// @Param mine query bool false "Only events I RSVPed to"
// @Success 200 {array} dto.EventResponse
// @Router /private/events [get]
func (h *EventController) ListEvents(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	from, okFrom := parseTimeQuery(c, "from")
	to, okTo := parseTimeQuery(c, "to")
	if !okFrom || !okTo {
		return h.BadRequest(errors.ErrInvalidInput, "from and to must be RFC3339 timestamps", nil)
	}
	filter := dto.EventFilter{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		From:     from,
		To:       to,
		Mine:     c.QueryParam("mine") == "true",
	}
	if result := validator.ValidateEventFilter(&filter); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.ListEvents(c.Request().Context(), userID, filter)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Events retrieved successfully")
}

// Upcoming
// @Summary Upcoming events
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Router /private/events/upcoming [get]
func (h *EventController) Upcoming(c echo.Context) error {
	result, appErr := h.service.Upcoming(c.Request().Context())
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Upcoming events retrieved successfully")
}

// MyRSVPs
// @Summary Events I RSVPed to
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Router /private/events/rsvps/me [get]
func (h *EventController) MyRSVPs(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.MyRSVPs(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "RSVPs retrieved successfully")
}

// GetEvent
// @Summary Get event
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/events/{id} [get]
func (h *EventController) GetEvent(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}
	result, appErr := h.service.GetEvent(c.Request().Context(), userID, id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Event retrieved successfully")
}

// UpdateEvent edits an event; host or admin only
// @Summary Update event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Changes"
// @Success 200 {object} dto.EventResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/events/{id} [put]
func (h *EventController) UpdateEvent(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	requestData := new(dto.UpdateEventRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateUpdateEvent(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.UpdateEvent(c.Request().Context(), userID, id, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Event updated successfully")
}

// DeleteEvent
// @Summary Delete event
// @Tags Event
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/events/{id} [delete]
func (h *EventController) DeleteEvent(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}
	if appErr := h.service.DeleteEvent(c.Request().Context(), userID, id); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Event deleted successfully")
}

// UploadCover stores a cover image for the event
// @Summary Upload event cover
// @Tags Event
// @Security BearerAuth
// @Accept multipart/form-data
// @Param id path string true "Event ID"
// @Param file formData file true "Image"
// @Success 200 {object} dto.CoverResponse
// @Router /private/events/{id}/cover [post]
func (h *EventController) UploadCover(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}
	raw, httpErr := controller.ReadUpload(c, "file", h.maxUploadSize)
	if httpErr != nil {
		return httpErr
	}
	result, appErr := h.service.UploadCover(c.Request().Context(), userID, id, raw)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Cover uploaded successfully")
}

// RSVP sets the caller's RSVP to going or interested
// @Summary RSVP to event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.RSVPRequest true "RSVP"
// @Success 200 {object} dto.RSVPResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/events/{id}/rsvp [put]
func (h *EventController) RSVP(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	requestData := new(dto.RSVPRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateRSVP(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.RSVP(c.Request().Context(), userID, id, requestData.Status)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "RSVP saved")
}

// RemoveRSVP
// @Summary Remove RSVP
// @Tags Event
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.RSVPResponse
// @Router /private/events/{id}/rsvp [delete]
func (h *EventController) RemoveRSVP(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}
	result, appErr := h.service.RemoveRSVP(c.Request().Context(), userID, id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "RSVP removed")
}

// ListPending
// @Summary Events awaiting approval
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Router /private/admin/events/pending [get]
func (h *EventController) ListPending(c echo.Context) error {
	result, appErr := h.service.ListPending(c.Request().Context())
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Pending events retrieved successfully")
}

// Approve
// @Summary Approve event
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/admin/events/{id}/approve [post]
func (h *EventController) Approve(c echo.Context) error {
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}
	result, appErr := h.service.Approve(c.Request().Context(), id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Event approved")
}

// Reject
// @Summary Reject event
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/admin/events/{id}/reject [post]
func (h *EventController) Reject(c echo.Context) error {
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}
	result, appErr := h.service.Reject(c.Request().Context(), id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Event rejected")
}

// Feature toggles the featured flag
// @Summary Feature event
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Event ID"
// @Param request body dto.FeatureRequest true "Featured"
// @Success 200 {object} dto.EventResponse
// @Router /private/admin/events/{id}/feature [post]
func (h *EventController) Feature(c echo.Context) error {
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}
	requestData := new(dto.FeatureRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateFeature(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}
	result, appErr := h.service.SetFeatured(c.Request().Context(), id, *requestData.Featured)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Event updated successfully")
}
