package group

import (
	"campusflow/core/database"
	"campusflow/modules/group/controller"
	"campusflow/modules/group/repository"
	"campusflow/modules/group/router"
	"campusflow/modules/group/service"

	"github.com/labstack/echo/v4"
)

func Init(private *echo.Group, db database.IDatabase, users service.UserDirectory, chats service.Chats) *service.GroupService {
	repo := repository.NewGroupRepository(db)
	svc := service.NewGroupService(repo, users, chats)
	ctrl := controller.NewGroupController(svc)
	router.NewGroupRouter(ctrl).Register(private)
	return svc
}
