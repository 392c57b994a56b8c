package router

import (
	"neohand/internal/adapter/api/handler"
	"neohand/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCategoryRouter(e *echo.Echo, supporterMiddleware *middleware.SupporterMiddleware, clientMiddleware *middleware.ClientMiddleware) {

	categoryHandler := handler.GetCategoryHandler()

	categories := e.Group("/v1/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)

	manage := e.Group("/v1/categories")
	manage.Use(clientMiddleware.Identify)
	manage.Use(supporterMiddleware.RequireSession)
	manage.POST("", categoryHandler.CreateCategory)
	manage.PUT("/:id", categoryHandler.UpdateCategory)
	manage.DELETE("/:id", categoryHandler.DeleteCategory)
}
