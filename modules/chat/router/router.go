package router

import (
	"campusflow/modules/chat/controller"

	"github.com/labstack/echo/v4"
)

type ChatRouter struct {
	controller *controller.ChatController
}

func NewChatRouter(controller *controller.ChatController) *ChatRouter {
	return &ChatRouter{controller: controller}
}

func (r *ChatRouter) Register(private *echo.Group) {
	chats := private.Group("/chats")
	chats.GET("", r.controller.ListChats)
	chats.POST("/dm", r.controller.OpenDM)
	chats.GET("/unread", r.controller.Unread)
	chats.GET("/:id/messages", r.controller.Messages)
	chats.POST("/:id/messages", r.controller.Send)
	chats.POST("/:id/read", r.controller.MarkRead)
}
