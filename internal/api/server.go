package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps groups the use cases served over HTTP.
type Deps struct {
	Ingest    IngestService
	Profiles  ProfileService
	Recommend RecommendService
	Store     Pinger
	DefaultK  int
	MaxK      int
}

// NewServer builds the echo instance with middleware and routes.
func NewServer(deps Deps, log *slog.Logger) *echo.Echo {
	if log == nil {
		log = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/metrics"
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.InfoContext(c.Request().Context(), "http request completed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"error", v.Error)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	h := newHandlers(deps, log)
	e.POST("/ingest", h.ingest)
	e.POST("/ingest/interests", h.ingestInterests)
	e.POST("/daily-update", h.dailyUpdate)
	e.POST("/profile", h.setProfile)
	e.GET("/profile/:user_id", h.getProfile)
	e.GET("/recommendations", h.recommendations)
	e.GET("/health", h.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// Serve runs the server until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, e *echo.Echo, addr string, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("http server shutting down")
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := errorResponse{Error: "internal server error"}

		var (
			validationErr *ValidationError
			httpErr       *echo.HTTPError
		)
		switch {
		case errors.As(err, &validationErr):
			status = http.StatusBadRequest
			resp = errorResponse{Error: validationErr.Error(), Fields: validationErr.Errors}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			resp.Error = http.StatusText(status)
			if msg, ok := httpErr.Message.(string); ok && msg != "" {
				resp.Error = msg
			}
		default:
			log.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, resp)
		}
		if writeErr != nil {
			log.Error("write error response", "error", writeErr)
		}
	}
}
