package router

import (
	"neohand/internal/adapter/api/handler"
	"neohand/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupDashboardRouter(e *echo.Echo, clientMiddleware *middleware.ClientMiddleware, supporterMiddleware *middleware.SupporterMiddleware) {

	dashboardHandler := handler.GetDashboardHandler()

	dashboard := e.Group("/v1/dashboard")
	dashboard.Use(clientMiddleware.Identify)
	dashboard.Use(supporterMiddleware.RequireSession)
	dashboard.GET("/sessions", dashboardHandler.ListSessions)
	dashboard.GET("/sessions/:roomId", dashboardHandler.GetSession)
	dashboard.POST("/sessions/:roomId/read", dashboardHandler.MarkRead)
	dashboard.PUT("/sessions/:id/status", dashboardHandler.UpdateStatus)
	dashboard.PUT("/sessions/:id/notes", dashboardHandler.UpdateNotes)
	dashboard.PUT("/sessions/:id/supporter", dashboardHandler.AssignSupporter)
}
