package router

import (
	"campusflow/core/middleware"
	"campusflow/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Register(private *echo.Group, mw *middleware.Middleware) {
	events := private.Group("/events")
	events.POST("", r.controller.CreateEvent)
	events.GET("", r.controller.ListEvents)
	events.GET("/upcoming", r.controller.Upcoming)
	events.GET("/rsvps/me", r.controller.MyRSVPs)
	events.GET("/:id", r.controller.GetEvent)
	events.PUT("/:id", r.controller.UpdateEvent)
	events.DELETE("/:id", r.controller.DeleteEvent)
	events.POST("/:id/cover", r.controller.UploadCover)
	events.PUT("/:id/rsvp", r.controller.RSVP)
	events.DELETE("/:id/rsvp", r.controller.RemoveRSVP)

	admin := private.Group("/admin/events", mw.RequireAdmin())
	admin.GET("/pending", r.controller.ListPending)
	admin.POST("/:id/approve", r.controller.Approve)
	admin.POST("/:id/reject", r.controller.Reject)
	admin.POST("/:id/feature", r.controller.Feature)
}
