package notification

import (
	"campusflow/core/database"
	"campusflow/core/queue"
	"campusflow/modules/notification/controller"
	"campusflow/modules/notification/repository"
	"campusflow/modules/notification/router"
	"campusflow/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func NewService(db database.IDatabase, scheduler queue.Scheduler) *service.NotificationService {
	return service.NewNotificationService(repository.NewNotificationRepository(db), scheduler)
}

func Init(private *echo.Group, db database.IDatabase, scheduler queue.Scheduler) *service.NotificationService {
	svc := NewService(db, scheduler)
	ctrl := controller.NewNotificationController(svc)
	router.NewNotificationRouter(ctrl).Register(private)
	return svc
}
