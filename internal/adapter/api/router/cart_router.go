package router

import (
	"neohand/internal/adapter/api/handler"
	"neohand/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCartRouter(e *echo.Echo, clientMiddleware *middleware.ClientMiddleware) {

	cartHandler := handler.GetCartHandler()

	cart := e.Group("/v1/cart")
	cart.Use(clientMiddleware.Identify)
	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.POST("/items/:itemId/increment", cartHandler.IncrementItem)
	cart.POST("/items/:itemId/decrement", cartHandler.DecrementItem)
	cart.DELETE("/items/:itemId", cartHandler.RemoveItem)
	cart.DELETE("", cartHandler.ClearCart)

	favorites := e.Group("/v1/favorites")
	favorites.Use(clientMiddleware.Identify)
	favorites.GET("", cartHandler.ListFavorites)
	favorites.POST("", cartHandler.AddFavorite)
	favorites.DELETE("/:itemId", cartHandler.RemoveFavorite)
}
