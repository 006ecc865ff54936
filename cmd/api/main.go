package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Abdullah-1719/ChaletF/internal/api"
	"github.com/Abdullah-1719/ChaletF/internal/api/handler"
	apimw "github.com/Abdullah-1719/ChaletF/internal/api/middleware"
	"github.com/Abdullah-1719/ChaletF/internal/application"
	"github.com/Abdullah-1719/ChaletF/internal/config"
	"github.com/Abdullah-1719/ChaletF/internal/domain/reservation"
	"github.com/Abdullah-1719/ChaletF/internal/infrastructure/memory"
	"github.com/Abdullah-1719/ChaletF/internal/infrastructure/mq"
	"github.com/Abdullah-1719/ChaletF/internal/infrastructure/postgres"
	redisinfra "github.com/Abdullah-1719/ChaletF/internal/infrastructure/redis"
	"github.com/Abdullah-1719/ChaletF/internal/infrastructure/sqlite"
	"github.com/Abdullah-1719/ChaletF/internal/pkg/logger"
	"github.com/Abdullah-1719/ChaletF/internal/pkg/metrics"
	"github.com/Abdullah-1719/ChaletF/internal/worker"
)

func main() {
	defer logger.Sync()

	cfg := config.Load()

	// 予約ストアの選択
	repo, cleanup, err := newRepository(cfg)
	if err != nil {
		logger.Fatal("ストアの初期化に失敗", zap.Error(err))
	}
	defer cleanup()

	// スナップショットキャッシュ（Redis未設定なら無効）
	var cache application.SnapshotCache
	if cfg.Redis.Addr() != "" {
		client := redisinfra.NewClient(&cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisinfra.Ping(ctx, client); err != nil {
			cancel()
			logger.Fatal("Redisへの接続に失敗", zap.Error(err))
		}
		cancel()
		cache = redisinfra.NewSnapshotCache(client, cfg.Redis.SnapshotTTL)
		logger.Info("スナップショットキャッシュ有効", zap.String("addr", cfg.Redis.Addr()))
	}

	// 予約イベント発行（AMQP未設定なら無効）
	var publisher application.EventPublisher
	if cfg.AMQP.URL != "" {
		p, err := mq.NewPublisher(&cfg.AMQP)
		if err != nil {
			logger.Fatal("RabbitMQへの接続に失敗", zap.Error(err))
		}
		defer p.Close()
		publisher = p
		logger.Info("予約イベント発行有効", zap.String("exchange", cfg.AMQP.Exchange))
	}

	m := metrics.New()
	service := application.NewReservationService(repo, cache, publisher, m)

	// Echo インスタンス作成
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	apimw.SetupMiddleware(e)
	e.Use(apimw.PrometheusMiddleware(m))

	// ルーティング
	reservationHandler := handler.NewReservationHandler(service)
	calendarHandler := handler.NewCalendarHandler(service)
	healthHandler := handler.NewHealthHandler()

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), apimw.MetricsBasicAuth())

	apiGroup := e.Group("/api")
	apiGroup.GET("/reservations", reservationHandler.List)
	apiGroup.GET("/reservations/search", reservationHandler.Search)
	apiGroup.POST("/reservations", reservationHandler.Create)
	apiGroup.PUT("/reservations/:date", reservationHandler.Update)
	apiGroup.DELETE("/reservations/:date", reservationHandler.Delete)
	apiGroup.GET("/calendar", calendarHandler.Get)

	// スナップショットリフレッシャー起動
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	refresher := worker.NewSnapshotRefresher(service, cfg.Worker.RefreshInterval)
	go refresher.Start(workerCtx)

	// サーバー起動
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("サーバー起動", zap.String("addr", addr), zap.String("store", cfg.Store.Driver))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	refresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}

// newRepository はSTORE_DRIVERに応じた予約ストアを構築する
func newRepository(cfg *config.Config) (reservation.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := postgres.Ping(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewReservationRepository(db), func() { db.Close() }, nil

	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { repo.Close() }, nil

	case config.DriverMemory:
		return memory.NewReservationRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}
