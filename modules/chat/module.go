package chat

import (
	"campusflow/core/database"
	"campusflow/modules/chat/controller"
	"campusflow/modules/chat/repository"
	"campusflow/modules/chat/router"
	"campusflow/modules/chat/service"
	notificationService "campusflow/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func NewService(db database.IDatabase, users service.UserDirectory, publisher service.Publisher, notifier notificationService.Notifier) *service.ChatService {
	return service.NewChatService(repository.NewChatRepository(db), users, publisher, notifier)
}

func Init(private *echo.Group, db database.IDatabase, users service.UserDirectory, publisher service.Publisher, notifier notificationService.Notifier) *service.ChatService {
	svc := NewService(db, users, publisher, notifier)
	ctrl := controller.NewChatController(svc)
	router.NewChatRouter(ctrl).Register(private)
	return svc
}
