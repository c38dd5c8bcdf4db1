package task

import (
	"campusflow/core/database"
	"campusflow/core/queue"
	"campusflow/modules/task/controller"
	"campusflow/modules/task/repository"
	"campusflow/modules/task/router"
	"campusflow/modules/task/service"
	"time"

	"github.com/labstack/echo/v4"
)

// NewService builds the task service without routes, for the worker process.
func NewService(db database.IDatabase, scheduler queue.Scheduler, loc *time.Location) *service.TaskService {
	return service.NewTaskService(repository.NewTaskRepository(db), scheduler, loc)
}

func Init(private *echo.Group, db database.IDatabase, scheduler queue.Scheduler, loc *time.Location) *service.TaskService {
	svc := NewService(db, scheduler, loc)
	ctrl := controller.NewTaskController(svc)
	router.NewTaskRouter(ctrl).Register(private)
	return svc
}
