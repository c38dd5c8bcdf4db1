package router

import (
	"campusflow/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Register(public, private *echo.Group) {
	auth := public.Group("/auth")
	auth.POST("/register", r.controller.Register)
	auth.POST("/login", r.controller.Login)
	auth.POST("/refresh", r.controller.Refresh)
	auth.POST("/forgot-password", r.controller.ForgotPassword)
	auth.POST("/reset-password", r.controller.ResetPassword)
	auth.GET("/google", r.controller.GoogleLogin)
	auth.GET("/google/callback", r.controller.GoogleCallback)
	auth.POST("/google/id-token", r.controller.GoogleIDToken)

	me := private.Group("/auth")
	me.POST("/logout", r.controller.Logout)
	me.GET("/me", r.controller.Me)
}
