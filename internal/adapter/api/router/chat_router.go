package router

import (
	"neohand/internal/adapter/api/handler"
	"neohand/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, clientMiddleware *middleware.ClientMiddleware, supporterMiddleware *middleware.SupporterMiddleware) {

	chatHandler := handler.GetChatHandler()

	chat := e.Group("/v1/chat")
	chat.POST("/session", chatHandler.GetSession)
	chat.DELETE("/session", chatHandler.EndSession)
	chat.GET("/rooms/:roomId/messages", chatHandler.ListMessages)
	chat.POST("/rooms/:roomId/messages", chatHandler.SendUserMessage)

	// Replies require a logged-in supporter.
	replies := e.Group("/v1/chat/rooms/:roomId/replies")
	replies.Use(clientMiddleware.Identify)
	replies.Use(supporterMiddleware.RequireSession)
	replies.POST("", chatHandler.SendSupporterMessage)
}
