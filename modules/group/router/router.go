package router

import (
	"campusflow/modules/group/controller"

	"github.com/labstack/echo/v4"
)

type GroupRouter struct {
	controller *controller.GroupController
}

func NewGroupRouter(controller *controller.GroupController) *GroupRouter {
	return &GroupRouter{controller: controller}
}

func (r *GroupRouter) Register(private *echo.Group) {
	groups := private.Group("/groups")
	groups.POST("", r.controller.CreateGroup)
	groups.GET("", r.controller.ListGroups)
	groups.GET("/:id", r.controller.GetGroup)
	groups.PUT("/:id", r.controller.UpdateGroup)
	groups.DELETE("/:id", r.controller.DeleteGroup)
	groups.POST("/:id/join", r.controller.Join)
	groups.DELETE("/:id/join", r.controller.Leave)
	groups.GET("/:id/members", r.controller.Members)
}
