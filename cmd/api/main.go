package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-show-booking/internal/api"
	"github.com/sanosuguru/go-show-booking/internal/api/handler"
	appmiddleware "github.com/sanosuguru/go-show-booking/internal/api/middleware"
	"github.com/sanosuguru/go-show-booking/internal/application"
	"github.com/sanosuguru/go-show-booking/internal/config"
	"github.com/sanosuguru/go-show-booking/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-show-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-show-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-show-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-show-booking/internal/queue"
	"github.com/sanosuguru/go-show-booking/internal/worker"
)

func main() {
	// .env があれば読み込む（ローカル開発用）
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	m := metrics.Init()

	// PostgreSQL 接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// Redis 接続（任意。接続できない場合はロックとキャッシュなしで継続）
	var (
		lockManager *redisinfra.LockManager
		cache       *redisinfra.AvailabilityCache
	)
	redisClient := redisinfra.NewClient(&cfg.Redis)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis接続に失敗。分散ロックなしで継続します", zap.Error(err))
	} else {
		lockManager = redisinfra.NewLockManager(redisClient)
		cache = redisinfra.NewAvailabilityCache(redisClient)
		defer redisClient.Close()
	}

	// RabbitMQ 接続（任意。接続できない場合はイベント発行なしで継続）
	var publisher application.EventPublisher
	pub, err := queue.NewPublisher(cfg.Queue.URL, cfg.Queue.QueueName)
	if err != nil {
		logger.Warn("メッセージブローカー接続に失敗。イベント発行なしで継続します", zap.Error(err))
	} else {
		publisher = pub
		defer pub.Close()
	}

	// リポジトリ
	txManager := postgres.NewTxManager(db)
	showRepo := postgres.NewShowRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	promotionRepo := postgres.NewPromotionRepository(db)
	venueRepo := postgres.NewVenueRepository(db)

	// サービス
	agendaService := application.NewAgendaService(txManager, showRepo, sessionRepo, publisher, m)
	reservationService := application.NewReservationService(sessionRepo, lockManager, cache, publisher, m)
	promotionService := application.NewPromotionService(promotionRepo, showRepo, sessionRepo)

	// ハンドラー
	showHandler := handler.NewShowHandler(agendaService)
	sessionHandler := handler.NewSessionHandler(agendaService, reservationService)
	promotionHandler := handler.NewPromotionHandler(promotionService)
	venueHandler := handler.NewVenueHandler(venueRepo)
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	appmiddleware.SetupMiddleware(e)
	e.Use(appmiddleware.PrometheusMiddleware(m))

	// ルーティング
	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.GET("/shows", showHandler.List)
	v1.POST("/shows", showHandler.Create)
	v1.GET("/shows/:id", showHandler.GetByID)
	v1.GET("/shows/:id/sessions", showHandler.ListSessions)
	v1.POST("/shows/:id/sessions", showHandler.ScheduleSessions)
	v1.GET("/shows/:id/promotions", promotionHandler.MatchForShow)

	v1.GET("/sessions/:id", sessionHandler.GetByID)
	v1.GET("/sessions/:id/availability", sessionHandler.Availability)
	v1.POST("/sessions/:id/reserve", sessionHandler.Reserve)

	v1.GET("/promotions", promotionHandler.List)
	v1.POST("/promotions", promotionHandler.Create)

	v1.GET("/venues", venueHandler.List)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), appmiddleware.MetricsBasicAuth())

	// プロモーションスキャナー起動
	scanner := worker.NewPromotionScanner(
		promotionService,
		m,
		cfg.Worker.PromotionScanInterval,
		cfg.Worker.PromotionScanHorizon,
	)
	scannerCtx, scannerCancel := context.WithCancel(context.Background())
	go scanner.Start(scannerCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	scannerCancel()
	scanner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
