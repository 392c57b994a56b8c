package handler

import (
	"neohand/internal/infrastructure/presence"
	"neohand/internal/usecase"
)

var (
	productHandler   *ProductHandler
	categoryHandler  *CategoryHandler
	cartHandler      *CartHandler
	chatHandler      *ChatHandler
	supporterHandler *SupporterHandler
	dashboardHandler *DashboardHandler
)

func Setup(
	productUseCase *usecase.ProductUseCase,
	categoryUseCase *usecase.CategoryUseCase,
	cartUseCase *usecase.CartUseCase,
	chatUseCase *usecase.ChatUseCase,
	sessionUseCase *usecase.ChatSessionUseCase,
	supporterUseCase *usecase.SupporterUseCase,
	presenceRegistry *presence.Registry,
	dashboardUseCase *usecase.DashboardUseCase,
) {
	productHandler = NewProductHandler(productUseCase)
	categoryHandler = NewCategoryHandler(categoryUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	chatHandler = NewChatHandler(chatUseCase, sessionUseCase)
	supporterHandler = NewSupporterHandler(supporterUseCase, presenceRegistry)
	dashboardHandler = NewDashboardHandler(dashboardUseCase)
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetCategoryHandler() *CategoryHandler {
	return categoryHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetSupporterHandler() *SupporterHandler {
	return supporterHandler
}

func GetDashboardHandler() *DashboardHandler {
	return dashboardHandler
}
