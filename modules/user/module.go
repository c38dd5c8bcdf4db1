package user

import (
	"campusflow/core/database"
	"campusflow/core/middleware"
	"campusflow/core/storage"
	"campusflow/modules/user/controller"
	"campusflow/modules/user/repository"
	"campusflow/modules/user/router"
	"campusflow/modules/user/service"

	"github.com/labstack/echo/v4"
)

func NewService(db database.IDatabase, uploader storage.Uploader) *service.UserService {
	return service.NewUserService(repository.NewUserRepository(db), uploader)
}

// Init wires the user module and hands back the service other modules build on.
func Init(private *echo.Group, db database.IDatabase, mw *middleware.Middleware, uploader storage.Uploader, maxUploadMB int) *service.UserService {
	svc := NewService(db, uploader)
	mw.SetRoleResolver(svc)
	ctrl := controller.NewUserController(svc, maxUploadMB)

	router.NewUserRouter(ctrl).Register(private, mw)

	return svc
}
