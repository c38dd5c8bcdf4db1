package router

import (
	"campusflow/modules/studybuddy/controller"

	"github.com/labstack/echo/v4"
)

type StudyBuddyRouter struct {
	controller *controller.StudyBuddyController
}

func NewStudyBuddyRouter(controller *controller.StudyBuddyController) *StudyBuddyRouter {
	return &StudyBuddyRouter{controller: controller}
}

func (r *StudyBuddyRouter) Register(private *echo.Group) {
	buddies := private.Group("/study-buddies")
	buddies.GET("", r.controller.Suggestions)
	buddies.POST("/requests", r.controller.SendRequest)
	buddies.GET("/requests", r.controller.Incoming)
	buddies.POST("/requests/:id/accept", r.controller.Accept)
	buddies.POST("/requests/:id/reject", r.controller.Reject)
}
