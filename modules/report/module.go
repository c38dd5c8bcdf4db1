package report

import (
	"campusflow/core/database"
	"campusflow/core/middleware"
	"campusflow/modules/report/controller"
	"campusflow/modules/report/repository"
	"campusflow/modules/report/router"
	"campusflow/modules/report/service"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Users   service.UserDirectory
	Events  service.PendingEvents
	Targets map[string]service.ExistsFunc
}

func Init(private *echo.Group, db database.IDatabase, mw *middleware.Middleware, deps Deps) *service.ReportService {
	repo := repository.NewReportRepository(db)
	svc := service.NewReportService(repo, deps.Users, deps.Events, deps.Targets)
	ctrl := controller.NewReportController(svc)
	router.NewReportRouter(ctrl).Register(private, mw)
	return svc
}
