package router

import (
	"neohand/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, clientMiddleware *middleware.ClientMiddleware, supporterMiddleware *middleware.SupporterMiddleware) {
	SetupProductRouter(e, supporterMiddleware, clientMiddleware)
	SetupCategoryRouter(e, supporterMiddleware, clientMiddleware)
	SetupCartRouter(e, clientMiddleware)
	SetupChatRouter(e, clientMiddleware, supporterMiddleware)
	SetupSupporterRouter(e, clientMiddleware, supporterMiddleware)
	SetupDashboardRouter(e, clientMiddleware, supporterMiddleware)
	SetupHealthRouter(e)
}
