package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/core/params"
	"campusflow/modules/group/dto"
	"campusflow/modules/group/service"
	"campusflow/modules/group/validator"

	"github.com/labstack/echo/v4"
)

type GroupController struct {
	service *service.GroupService
	controller.BaseController
}

func NewGroupController(service *service.GroupService) *GroupController {
	return &GroupController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateGroup creates a society or study group owned by the caller
// @Summary Create group
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GroupRequest true "Group"
// @Success 201 {object} dto.GroupResponse
// @Router /private/groups [post]
func (h *GroupController) CreateGroup(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.GroupRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateGroupRequest(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.CreateGroup(c.Request().Context(), userID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.CreatedResponse(c, result, "create group success")
}

// ListGroups
// @Summary List groups
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param type query string false "society|study"
// @Param search query string false "Name or description"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PaginatedGroupResponse
// @Router /private/groups [get]
func (h *GroupController) ListGroups(c echo.Context) error {
	groupType := c.QueryParam("type")
	if result := validator.ValidateGroupType(groupType); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}
	queryParams := params.NewQueryParams(c)

	result, appErr := h.service.ListGroups(c.Request().Context(), groupType, *queryParams)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "get groups success")
}

// GetGroup
// @Summary Get group
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Router /private/groups/{id} [get]
func (h *GroupController) GetGroup(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	groupID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid group id", nil)
	}
	result, appErr := h.service.GetGroup(c.Request().Context(), userID, groupID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "get group success")
}

// UpdateGroup
// @Summary Update group
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Changes"
// @Success 200 {object} dto.GroupResponse
// @Router /private/groups/{id} [put]
func (h *GroupController) UpdateGroup(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	groupID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid group id", nil)
	}

	requestData := new(dto.UpdateGroupRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateUpdateGroup(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.UpdateGroup(c.Request().Context(), userID, groupID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "update group success")
}

// DeleteGroup
// @Summary Delete group
// @Tags Group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/groups/{id} [delete]
func (h *GroupController) DeleteGroup(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	groupID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid group id", nil)
	}
	if appErr := h.service.DeleteGroup(c.Request().Context(), userID, groupID); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "delete group success")
}

// Join
// @Summary Join group
// @Tags Group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.MembershipResponse
// @Router /private/groups/{id}/join [post]
func (h *GroupController) Join(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	groupID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid group id", nil)
	}
	result, appErr := h.service.Join(c.Request().Context(), userID, groupID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "join group success")
}

// Leave
// @Summary Leave group
// @Tags Group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.MembershipResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/groups/{id}/join [delete]
func (h *GroupController) Leave(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	groupID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid group id", nil)
	}
	result, appErr := h.service.Leave(c.Request().Context(), userID, groupID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "leave group success")
}

// Members
// @Summary Group members
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} dto.MemberResponse
// @Router /private/groups/{id}/members [get]
func (h *GroupController) Members(c echo.Context) error {
	groupID, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid group id", nil)
	}
	result, appErr := h.service.Members(c.Request().Context(), groupID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "get members success")
}
