// Пакет yilang предоставляет основные компоненты сервера изучения языков: хранение документов редактора, личный словарь, предложения и грамматические заметки. Также предоставляет API для клиентов редактора.
//
// Основные возможности:
//   - CRUD документов с сериализованным деревом контента.
//   - Управление словарем пользователя (слова, переводы, теги).
//   - Сохранение предложений и грамматических заметок, выделенных в документах.
//   - Отдача статики фронтенда.
package yilang

// @title YiLang API
// @version 1.0
// @description Language learning document server.
// @BasePath /
// @query.collection.format multi
import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/Yidaotus/yilang/yilang.go/internal/yilang/config"
)

type Services struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

var cfg *config.Config
var appVersion string

// ServerHeader middleware adds a `Server` header to the response.
func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "YiLang")
		return next(c)
	}
}

func Server(db *gorm.DB, c *config.Config, version string) {
	cfg = c
	appVersion = version

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		// Ignore 404
		if code == http.StatusNotFound {
			c.NoContent(http.StatusNotFound)
			return
		}
		slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
		EErrorMsgStatus(c, nil, code)
	}
	e.Validator = NewRequestValidator()

	e.Use(ServerHeader)
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.WebURL.String()},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))
	e.Use(echoprometheus.NewMiddleware("yilang"))

	s := &Services{
		db:        db,
		sanitizer: bluemonday.StrictPolicy(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down gracefully, press Ctrl+C again to force")
		if err := e.Shutdown(context.Background()); err != nil {
			slog.Error("Server shutdown", "err", err)
		}
		os.Exit(0)
	}()

	apiGroup := e.Group("/api")
	s.AddLanguageServices(apiGroup)
	s.AddDocumentServices(apiGroup)
	s.AddWordServices(apiGroup)
	s.AddSentenceServices(apiGroup)
	s.AddGrammarPointServices(apiGroup)
	s.AddTagServices(apiGroup)

	e.GET("/api/version/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"version": appVersion})
	})

	if cfg.FrontFilesPath != "" {
		e.Static("/", cfg.FrontFilesPath)
	}

	// Prometheus metrics
	go func() {
		bootTimeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "yilang",
			Name:      "boot_time",
			Help:      "Server startup time",
		})
		bootTimeGauge.Set(float64(time.Now().UnixMilli()))

		if err := prometheus.Register(bootTimeGauge); err != nil {
			slog.Error("Register boot time gauge", "err", err)
			os.Exit(1)
		}

		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":2112"); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server fail", "err", err)
		}
	}()

	if err := e.Start(":8080"); err != nil {
		slog.Error("Server fail", "err", err)
	}
}
