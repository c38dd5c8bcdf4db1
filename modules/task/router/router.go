package router

import (
	"campusflow/modules/task/controller"

	"github.com/labstack/echo/v4"
)

type TaskRouter struct {
	controller *controller.TaskController
}

func NewTaskRouter(controller *controller.TaskController) *TaskRouter {
	return &TaskRouter{controller: controller}
}

func (r *TaskRouter) Register(private *echo.Group) {
	tasks := private.Group("/tasks")
	tasks.POST("", r.controller.CreateTask)
	tasks.GET("", r.controller.ListTasks)
	tasks.GET("/upcoming", r.controller.Upcoming)
	tasks.GET("/stats", r.controller.Stats)
	tasks.GET("/:id", r.controller.GetTask)
	tasks.PUT("/:id", r.controller.UpdateTask)
	tasks.PATCH("/:id/toggle", r.controller.ToggleTask)
	tasks.DELETE("/:id", r.controller.DeleteTask)
}
