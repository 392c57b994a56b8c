package router

import (
	"neohand/internal/adapter/api/handler"
	"neohand/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo, supporterMiddleware *middleware.SupporterMiddleware, clientMiddleware *middleware.ClientMiddleware) {

	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	// Catalog writes are dashboard-only.
	manage := e.Group("/v1/products")
	manage.Use(clientMiddleware.Identify)
	manage.Use(supporterMiddleware.RequireSession)
	manage.POST("", productHandler.CreateProduct)
	manage.PUT("/:id", productHandler.UpdateProduct)
	manage.DELETE("/:id", productHandler.DeleteProduct)
}
