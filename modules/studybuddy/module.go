package studybuddy

import (
	"campusflow/core/database"
	notificationService "campusflow/modules/notification/service"
	"campusflow/modules/studybuddy/controller"
	"campusflow/modules/studybuddy/repository"
	"campusflow/modules/studybuddy/router"
	"campusflow/modules/studybuddy/service"

	"github.com/labstack/echo/v4"
)

func Init(private *echo.Group, db database.IDatabase, users service.UserDirectory, notifier notificationService.Notifier, chats service.DMOpener) *service.StudyBuddyService {
	repo := repository.NewStudyBuddyRepository(db)
	svc := service.NewStudyBuddyService(repo, users, notifier, chats)
	ctrl := controller.NewStudyBuddyController(svc)
	router.NewStudyBuddyRouter(ctrl).Register(private)
	return svc
}
