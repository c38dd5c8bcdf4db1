package router

import (
	"campusflow/core/middleware"
	"campusflow/modules/user/controller"

	"github.com/labstack/echo/v4"
)

type UserRouter struct {
	controller *controller.UserController
}

func NewUserRouter(controller *controller.UserController) *UserRouter {
	return &UserRouter{controller: controller}
}

func (r *UserRouter) Register(private *echo.Group, mw *middleware.Middleware) {
	users := private.Group("/users")
	users.PUT("/me", r.controller.UpdateMe)
	users.PUT("/me/push-token", r.controller.SetPushToken)
	users.DELETE("/me/push-token", r.controller.ClearPushToken)
	users.POST("/me/avatar", r.controller.UploadAvatar)
	users.GET("/me/blocked", r.controller.ListBlocked)
	users.GET("/:id", r.controller.GetProfile)
	users.POST("/:id/block", r.controller.Block)
	users.DELETE("/:id/block", r.controller.Unblock)

	admin := private.Group("/admin/users", mw.RequireAdmin())
	admin.PUT("/:id/roles", r.controller.SetRoles)
}
