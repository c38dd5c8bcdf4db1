package announcement

import (
	"campusflow/core/database"
	"campusflow/core/middleware"
	"campusflow/modules/announcement/controller"
	"campusflow/modules/announcement/repository"
	"campusflow/modules/announcement/router"
	"campusflow/modules/announcement/service"

	"github.com/labstack/echo/v4"
)

func Init(private *echo.Group, db database.IDatabase, mw *middleware.Middleware, users service.UserDirectory, groups service.Groups, notifier service.BulkNotifier) *service.AnnouncementService {
	repo := repository.NewAnnouncementRepository(db)
	svc := service.NewAnnouncementService(repo, users, groups, notifier)
	ctrl := controller.NewAnnouncementController(svc)
	router.NewAnnouncementRouter(ctrl).Register(private, mw)
	return svc
}
