package main

import (
	"context"
	"log"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"shophop/internal/adapter/api"
	"shophop/internal/adapter/api/handler"
	apimiddleware "shophop/internal/adapter/api/middleware"
	"shophop/internal/adapter/api/router"
	"shophop/internal/adapter/repository"
	"shophop/internal/infrastructure/auth"
	"shophop/internal/infrastructure/database"
	"shophop/internal/infrastructure/websocket"
	"shophop/internal/usecase"
	"shophop/pkg/config"
	"shophop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewGormUserRepository(db.DB)
	productRepo := repository.NewGormProductRepository(db.DB)
	reviewRepo := repository.NewGormReviewRepository(db.DB)
	chatRepo := repository.NewGormChatRepository(db.DB)

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, tokenService)
	productUseCase := usecase.NewProductUseCase(productRepo)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, wsManager)

	handler.Setup(authUseCase, productUseCase, reviewUseCase)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: strings.Split(cfg.AllowedOrigins, ","),
	}))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokenService)

	chatHandler := handler.NewChatHandler(chatUseCase, wsManager)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, authMiddleware, db)
	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	logger.Info("Starting server on port %s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
