package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/internal/session"
	"github.com/eppi-vis/dashboard/internal/util"
	"github.com/eppi-vis/dashboard/pkg/logger"

	"github.com/go-playground/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	secret := util.GetEnv("SESSION_SECRET")
	if secret == "" {
		logger.Fatal("SESSION_SECRET is not set")
	}

	app := &mid.App{
		Sessions:      session.NewStore(),
		TokenSecret:   []byte(secret),
		EppiBaseURL:   util.GetEnvString("EPPI_BASE_URL", "https://eppi.ioe.ac.uk"),
		WebDBID:       util.GetEnvInt("EPPI_WEBDB_ID", 536),
		MaxTries:      util.GetEnvInt("EPPI_MAX_RETRIES", 3),
		PageCacheSize: util.GetEnvInt("PAGE_CACHE_SIZE", 256),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port, "webDbId", app.WebDBID)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
