package router

import (
	"neohand/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws/rooms/:roomId", wsHandler.StreamRoom)
	e.GET("/ws/supporters", wsHandler.StreamSupporters)
	e.GET("/ws/messages", wsHandler.StreamAllMessages)
}
