package auth

import (
	"campusflow/core/cache"
	"campusflow/core/mailer"
	"campusflow/modules/auth/controller"
	"campusflow/modules/auth/router"
	"campusflow/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(public, private *echo.Group, users service.UserStore, c cache.Cache, m mailer.Mailer, google service.GoogleIdentity) *service.AuthService {
	svc := service.NewAuthService(users, c, m, google)
	ctrl := controller.NewAuthController(svc)
	router.NewAuthRouter(ctrl).Register(public, private)
	return svc
}
