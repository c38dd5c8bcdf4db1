package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/modules/chat/dto"
	"campusflow/modules/chat/service"
	"campusflow/modules/chat/validator"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ChatController struct {
	service *service.ChatService
	controller.BaseController
}

func NewChatController(service *service.ChatService) *ChatController {
	return &ChatController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// OpenDM returns the direct chat with another user, creating it if needed
// @Summary Open direct message
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.OpenDMRequest true "Target user"
// @Success 200 {object} dto.ChatResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/chats/dm [post]
func (h *ChatController) OpenDM(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.OpenDMRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateOpenDM(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.OpenDM(c.Request().Context(), userID, uuid.MustParse(requestData.UserID))
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Chat opened")
}

// ListChats
// @Summary List my chats
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ChatResponse
// @Router /private/chats [get]
func (h *ChatController) ListChats(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.ListChats(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Chats retrieved successfully")
}

// Unread
// @Summary Unread message total
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UnreadResponse
// @Router /private/chats/unread [get]
func (h *ChatController) Unread(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.UnreadTotal(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Unread total retrieved successfully")
}

// Messages returns a page of messages, newest first
// @Summary Chat messages
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Chat ID"
// @Param before query string false "RFC3339 cursor"
// @Param limit query int false "Page size"
// @Success 200 {array} dto.MessageResponse
// @Router /private/chats/{id}/messages [get]
func (h *ChatController) Messages(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	chatID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid chat id", nil)
	}

	query := dto.MessageQuery{}
	if raw := c.QueryParam("before"); raw != "" {
		before, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return h.BadRequest(errors.ErrInvalidInput, "before must be an RFC3339 timestamp", nil)
		}
		query.Before = &before
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return h.BadRequest(errors.ErrInvalidInput, "limit must be a number", nil)
		}
		query.Limit = limit
	}
	if result := validator.ValidateMessageQuery(&query); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.Messages(c.Request().Context(), userID, chatID, query)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Messages retrieved successfully")
}

// Send posts a message to the chat
// @Summary Send message
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Chat ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.MessageResponse
// @Router /private/chats/{id}/messages [post]
func (h *ChatController) Send(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	chatID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid chat id", nil)
	}

	requestData := new(dto.SendMessageRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateSendMessage(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.Send(c.Request().Context(), userID, chatID, requestData.Text)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.CreatedResponse(c, result, "Message sent")
}

// MarkRead
// @Summary Mark chat read
// @Tags Chat
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/chats/{id}/read [post]
func (h *ChatController) MarkRead(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	chatID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid chat id", nil)
	}
	if appErr := h.service.MarkRead(c.Request().Context(), userID, chatID); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Chat marked as read")
}
