package router

import (
	"neohand/internal/adapter/api/handler"
	"neohand/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, clientMiddleware *middleware.ClientMiddleware, supporterMiddleware *middleware.SupporterMiddleware) {

	// Chat attachments are uploaded by anonymous visitors.
	e.POST("/v1/files/attachments", fileHandler.UploadAttachments)

	manage := e.Group("/v1/files")
	manage.Use(clientMiddleware.Identify)
	manage.Use(supporterMiddleware.RequireSession)
	manage.POST("/product-images", fileHandler.UploadProductImage)
	manage.DELETE("", fileHandler.DeleteFile)
}
