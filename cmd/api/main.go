package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"neohand/internal/adapter/api"
	"neohand/internal/adapter/api/handler"
	apimiddleware "neohand/internal/adapter/api/middleware"
	"neohand/internal/adapter/api/router"
	"neohand/internal/adapter/repository"
	"neohand/internal/infrastructure/cache"
	"neohand/internal/infrastructure/firebase"
	"neohand/internal/infrastructure/presence"
	"neohand/internal/infrastructure/ratelimit"
	"neohand/internal/infrastructure/realtime"
	"neohand/internal/infrastructure/storage"
	"neohand/internal/infrastructure/websocket"
	"neohand/internal/usecase"
	"neohand/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	opt, err := firebase.CredentialOption()
	if err != nil {
		log.Fatalf("Failed to resolve Firebase credentials: %v", err)
	}

	firestoreClient, err := firebase.NewFirestoreClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	// Fast tier is in-process memory unless a shared Redis is configured;
	// the durable tier is always the local SQLite store.
	var fastTier cache.Tier = cache.NewMemoryTier()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		fastTier = cache.NewRedisTier(redisClient, "neohand")
		log.Printf("Using Redis fast cache tier at %s", cfg.RedisAddr)
	}
	durableTier := cache.NewSQLiteTier(cfg.CachePath, cfg.CacheVersion)
	localCache := cache.NewDualCache(fastTier, durableTier)
	defer localCache.Close()

	hub := realtime.NewHub()
	wsManager := websocket.NewManager(hub)

	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	roomSessionRepo := repository.NewFirestoreChatRoomSessionRepository(firestoreClient)

	// Status writes go through the publishing decorator so roster feeds stay
	// current without polling.
	supporterRepo := usecase.NewPublishingSupporterRepository(
		repository.NewFirestoreSupporterRepository(firestoreClient), hub)

	messageLimiter := ratelimit.NewRateLimiter(cfg.MessageBurst, cfg.MessageRefill)
	messageLimiter.StartCleanupRoutine()

	sessionUseCase := usecase.NewChatSessionUseCase(fastTier)
	cartUseCase := usecase.NewCartUseCase(localCache)
	chatUseCase := usecase.NewChatUseCase(messageRepo, supporterRepo, sessionUseCase, hub, messageLimiter)
	supporterUseCase := usecase.NewSupporterUseCase(supporterRepo, localCache)
	dashboardUseCase := usecase.NewDashboardUseCase(messageRepo, roomSessionRepo, hub)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo)
	fileUseCase := usecase.NewFileUseCase(storageClient)

	dashboardUseCase.Start()
	defer dashboardUseCase.Stop()

	presenceRegistry := presence.NewRegistry(supporterRepo, cfg.HeartbeatInterval, cfg.AwayThreshold)
	defer presenceRegistry.StopAll(ctx)

	handler.Setup(
		productUseCase,
		categoryUseCase,
		cartUseCase,
		chatUseCase,
		sessionUseCase,
		supporterUseCase,
		presenceRegistry,
		dashboardUseCase,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	clientMiddleware := apimiddleware.NewClientMiddleware()
	supporterMiddleware := apimiddleware.NewSupporterMiddleware(supporterUseCase)

	apiLimiter := apimiddleware.NewIPRateLimiter(120, time.Minute)
	e.Use(apiLimiter.Limit())

	fileHandler := handler.NewFileHandler(fileUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, clientMiddleware, supporterMiddleware)
	router.SetupFileRouter(e, fileHandler, clientMiddleware, supporterMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
