package controller

import (
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/modules/task/dto"
	"campusflow/modules/task/service"
	"campusflow/modules/task/validator"

	"github.com/labstack/echo/v4"
)

type TaskController struct {
	service *service.TaskService
	controller.BaseController
}

func NewTaskController(service *service.TaskService) *TaskController {
	return &TaskController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateTask adds a task for the caller
// @Summary Create task
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/tasks [post]
func (h *TaskController) CreateTask(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.CreateTaskRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateCreateTask(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.CreateTask(c.Request().Context(), userID, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.CreatedResponse(c, result, "Task created successfully")
}

// ListTasks returns the caller's tasks filtered by status, course, priority and range
// @Summary List tasks
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param status query string false "all|active|completed|overdue|today|week"
// @Param course query string false "Course"
// @Param priority query string false "low|med|high"
// @Param range query string false "today|week|month"
// @Success 200 {array} dto.TaskResponse
// @Router /private/tasks [get]
func (h *TaskController) ListTasks(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	filter := dto.TaskFilter{
		Status:   c.QueryParam("status"),
		Course:   c.QueryParam("course"),
		Priority: c.QueryParam("priority"),
		Range:    c.QueryParam("range"),
	}
	if result := validator.ValidateTaskFilter(&filter); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.ListTasks(c.Request().Context(), userID, filter)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Tasks retrieved successfully")
}

// Upcoming
// @Summary Upcoming tasks
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.TaskResponse
// @Router /private/tasks/upcoming [get]
func (h *TaskController) Upcoming(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.Upcoming(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Upcoming tasks retrieved successfully")
}

// Stats
// @Summary Today's completion stats
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.TaskStats
// @Router /private/tasks/stats [get]
func (h *TaskController) Stats(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	result, appErr := h.service.Stats(c.Request().Context(), userID)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Task stats retrieved successfully")
}

// GetTask
// @Summary Get task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/tasks/{id} [get]
func (h *TaskController) GetTask(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}
	result, appErr := h.service.GetTask(c.Request().Context(), userID, id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Task retrieved successfully")
}

// UpdateTask partially updates a task
// @Summary Update task
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/tasks/{id} [put]
func (h *TaskController) UpdateTask(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}

	requestData := new(dto.UpdateTaskRequest)
	if err := c.Bind(requestData); err != nil {
		return h.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}
	if result := validator.ValidateUpdateTask(requestData); result.HasError() {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid input", result.Details())
	}

	result, appErr := h.service.UpdateTask(c.Request().Context(), userID, id, requestData)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Task updated successfully")
}

// ToggleTask flips the completed flag
// @Summary Toggle task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Router /private/tasks/{id}/toggle [patch]
func (h *TaskController) ToggleTask(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}
	result, appErr := h.service.ToggleTask(c.Request().Context(), userID, id)
	if appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, result, "Task updated successfully")
}

// DeleteTask
// @Summary Delete task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/tasks/{id} [delete]
func (h *TaskController) DeleteTask(c echo.Context) error {
	userID, ok := controller.CurrentUserID(c)
	if !ok {
		return h.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return h.BadRequest(errors.ErrInvalidInput, "Invalid task id", nil)
	}
	if appErr := h.service.DeleteTask(c.Request().Context(), userID, id); appErr != nil {
		return h.ErrorResponse(c, appErr)
	}
	return h.SuccessResponse(c, nil, "Task deleted successfully")
}
