package e2e

import (
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Abdullah-1719/ChaletF/internal/api"
	"github.com/Abdullah-1719/ChaletF/internal/api/handler"
	"github.com/Abdullah-1719/ChaletF/internal/api/middleware"
	"github.com/Abdullah-1719/ChaletF/internal/application"
	"github.com/Abdullah-1719/ChaletF/internal/infrastructure/memory"
	"github.com/Abdullah-1719/ChaletF/internal/pkg/metrics"
)

var testServer *TestServer

// TestServer はE2Eテスト用のサーバー
// インメモリストアで動くため外部サービスを必要としない
type TestServer struct {
	Echo *echo.Echo
	Repo *memory.ReservationRepository
}

// TestMain はE2Eテストのエントリポイント
// パッケージ全体で1回だけサーバーを組み立てる
func TestMain(m *testing.M) {
	testServer = NewTestServer()
	os.Exit(m.Run())
}

// NewTestServer はインメモリストアで動くテスト用サーバーを作成
func NewTestServer() *TestServer {
	repo := memory.NewReservationRepository()
	metricsRegistry := prometheus.NewRegistry()

	service := application.NewReservationService(repo, nil, nil, metrics.NewWithRegistry(metricsRegistry))

	reservationHandler := handler.NewReservationHandler(service)
	calendarHandler := handler.NewCalendarHandler(service)
	healthHandler := handler.NewHealthHandler()

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)

	e.GET("/health", healthHandler.Check)

	apiGroup := e.Group("/api")
	apiGroup.GET("/reservations", reservationHandler.List)
	apiGroup.GET("/reservations/search", reservationHandler.Search)
	apiGroup.POST("/reservations", reservationHandler.Create)
	apiGroup.PUT("/reservations/:date", reservationHandler.Update)
	apiGroup.DELETE("/reservations/:date", reservationHandler.Delete)
	apiGroup.GET("/calendar", calendarHandler.Get)

	return &TestServer{Echo: e, Repo: repo}
}
