package event

import (
	"campusflow/core/database"
	"campusflow/core/middleware"
	"campusflow/core/queue"
	"campusflow/core/storage"
	"campusflow/modules/event/controller"
	"campusflow/modules/event/repository"
	"campusflow/modules/event/router"
	"campusflow/modules/event/service"
	notificationService "campusflow/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Users       service.UserDirectory
	Notifier    notificationService.Notifier
	Scheduler   queue.Scheduler
	Uploader    storage.Uploader
	Rooms       service.Rooms
	MaxUploadMB int
}

// NewService builds the event service without routes, for the worker process.
func NewService(db database.IDatabase, deps Deps) *service.EventService {
	return service.NewEventService(repository.NewEventRepository(db), deps.Users, deps.Notifier, deps.Scheduler, deps.Uploader, deps.Rooms)
}

func Init(private *echo.Group, db database.IDatabase, mw *middleware.Middleware, deps Deps) *service.EventService {
	svc := NewService(db, deps)
	ctrl := controller.NewEventController(svc, deps.MaxUploadMB)
	router.NewEventRouter(ctrl).Register(private, mw)
	return svc
}
