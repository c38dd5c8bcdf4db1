package router

import (
	"campusflow/core/middleware"
	"campusflow/modules/announcement/controller"

	"github.com/labstack/echo/v4"
)

type AnnouncementRouter struct {
	controller *controller.AnnouncementController
}

func NewAnnouncementRouter(controller *controller.AnnouncementController) *AnnouncementRouter {
	return &AnnouncementRouter{controller: controller}
}

func (r *AnnouncementRouter) Register(private *echo.Group, mw *middleware.Middleware) {
	private.GET("/announcements", r.controller.List)

	admin := private.Group("/admin/announcements", mw.RequireAdmin())
	admin.POST("", r.controller.Publish)
}
