package router

import (
	"campusflow/core/middleware"
	"campusflow/modules/report/controller"

	"github.com/labstack/echo/v4"
)

type ReportRouter struct {
	controller *controller.ReportController
}

func NewReportRouter(controller *controller.ReportController) *ReportRouter {
	return &ReportRouter{controller: controller}
}

func (r *ReportRouter) Register(private *echo.Group, mw *middleware.Middleware) {
	private.POST("/reports", r.controller.CreateReport)

	admin := private.Group("/admin", mw.RequireAdmin())
	admin.GET("/reports", r.controller.ListReports)
	admin.POST("/reports/:id/review", r.controller.Review)
	admin.POST("/reports/:id/close", r.controller.Close)
	admin.GET("/stats", r.controller.Stats)
}
