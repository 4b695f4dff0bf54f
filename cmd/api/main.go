package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/api"
	"github.com/sanosuguru/go-seat-booking/internal/api/handler"
	custommiddleware "github.com/sanosuguru/go-seat-booking/internal/api/middleware"
	"github.com/sanosuguru/go-seat-booking/internal/application"
	"github.com/sanosuguru/go-seat-booking/internal/config"
	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
	"github.com/sanosuguru/go-seat-booking/internal/domain/seat"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
	"github.com/sanosuguru/go-seat-booking/internal/infrastructure/memory"
	"github.com/sanosuguru/go-seat-booking/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-seat-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-seat-booking/internal/worker"
)

// repositories は在庫ストアのリポジトリ一式
type repositories struct {
	txManager   transaction.Manager
	eventRepo   event.Repository
	seatRepo    seat.Repository
	bookingRepo booking.Repository
}

func main() {
	cfg := config.Load()

	// ロガー初期化
	log := logger.NewLogger(cfg.App.Env)
	logger.Set(log)
	defer log.Sync()

	// メトリクス初期化
	m := metrics.Init()

	// 在庫ストア初期化
	repos, cleanup, err := setupRepositories(cfg)
	if err != nil {
		logger.Fatal("在庫ストアの初期化に失敗", zap.Error(err))
	}
	defer cleanup()

	// Redis接続（空席数キャッシュ用、接続できない場合はキャッシュなしで継続）
	var cache *redisinfra.AvailabilityCache
	redisClient := redisinfra.NewClient(&cfg.Redis)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisinfra.Ping(pingCtx, redisClient); err != nil {
		logger.Warn("Redisに接続できないためキャッシュなしで起動します", zap.Error(err))
	} else {
		cache = redisinfra.NewAvailabilityCache(redisClient)
	}
	pingCancel()
	defer redisClient.Close()

	// アプリケーションサービス
	eventService := application.NewEventService(repos.eventRepo, repos.seatRepo)
	seatService := application.NewSeatService(repos.seatRepo, repos.eventRepo, cache)
	bookingService := application.NewBookingService(repos.txManager, repos.bookingRepo, repos.seatRepo, cache)

	// 見本データ投入（カタログが空の場合のみ）
	if cfg.App.SeedSampleData {
		if created, err := eventService.SeedSampleData(context.Background()); err != nil {
			logger.Error("見本データ投入に失敗", zap.Error(err))
		} else if created {
			logger.Info("見本イベントを投入しました")
		}
	}

	// 空席数リフレッシャー
	refresher := worker.NewAvailabilityRefresher(seatService, cfg.Worker.RefreshInterval)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	go refresher.Start(workerCtx)

	// Echoサーバー
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	custommiddleware.SetupMiddleware(e)
	e.Use(custommiddleware.PrometheusMiddleware(m))

	setupRoutes(e, eventService, seatService, bookingService)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	logger.Info("サーバー起動",
		zap.String("port", cfg.Server.Port),
		zap.String("driver", cfg.Database.Driver),
		zap.String("env", cfg.App.Env),
	)

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	// ワーカー停止
	workerCancel()
	refresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}

// setupRepositories は設定に応じて Postgres またはプロセス内の在庫ストアを構築する
func setupRepositories(cfg *config.Config) (*repositories, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Info("プロセス内在庫ストアを使用します")
		return &repositories{
			txManager:   memory.NewTxManager(),
			eventRepo:   memory.NewEventRepository(),
			seatRepo:    memory.NewSeatRepository(),
			bookingRepo: memory.NewBookingRepository(),
		}, func() {}, nil
	default:
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
			db.Close()
			return nil, nil, err
		}
		return &repositories{
			txManager:   postgres.NewTxManager(db),
			eventRepo:   postgres.NewEventRepository(db),
			seatRepo:    postgres.NewSeatRepository(db),
			bookingRepo: postgres.NewBookingRepository(db),
		}, func() { db.Close() }, nil
	}
}

// setupRoutes はAPIルーティングを設定する
func setupRoutes(
	e *echo.Echo,
	eventService *application.EventService,
	seatService *application.SeatService,
	bookingService *application.BookingService,
) {
	healthHandler := handler.NewHealthHandler()
	eventHandler := handler.NewEventHandler(eventService)
	seatHandler := handler.NewSeatHandler(seatService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	// メトリクス（Basic認証は環境変数設定時のみ）
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommiddleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.GET("/events", eventHandler.List)
	v1.POST("/events", eventHandler.Create)
	v1.GET("/events/:id", eventHandler.GetByID)

	v1.GET("/events/:event_id/seats", seatHandler.GetByEvent)
	v1.GET("/events/:event_id/seats/available/count", seatHandler.CountAvailable)
	v1.POST("/events/:event_id/seats/grid", seatHandler.CreateGrid)

	v1.POST("/seats/:id/book", bookingHandler.Book)
	v1.GET("/bookings/:id", bookingHandler.GetByID)
	v1.GET("/events/:event_id/bookings", bookingHandler.ListByEvent)
}
