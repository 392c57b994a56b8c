package router

import (
	"neohand/internal/adapter/api/handler"
	"neohand/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSupporterRouter(e *echo.Echo, clientMiddleware *middleware.ClientMiddleware, supporterMiddleware *middleware.SupporterMiddleware) {

	supporterHandler := handler.GetSupporterHandler()

	// The roster is public; the chat widget shows who is around.
	e.GET("/v1/supporters", supporterHandler.Roster)

	session := e.Group("/v1/supporters/session")
	session.Use(clientMiddleware.Identify)
	session.POST("", supporterHandler.Login)
	session.GET("", supporterHandler.Current)
	session.DELETE("", supporterHandler.Logout)

	presence := e.Group("/v1/supporters/presence")
	presence.Use(clientMiddleware.Identify)
	presence.Use(supporterMiddleware.RequireSession)
	presence.POST("/activity", supporterHandler.ReportActivity)
	presence.PUT("/status", supporterHandler.SetStatus)
}
