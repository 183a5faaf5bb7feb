package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// RouterConfig tunes the middleware stack.
type RouterConfig struct {
	// RateLimitRPS is the per-client request rate; 0 disables limiting.
	RateLimitRPS float64
	// ValidateRequests checks requests against the OpenAPI document.
	ValidateRequests bool
}

// KitchenDisplay upgrades a request to a kitchen display feed.
type KitchenDisplay interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

// NewRouter assembles the echo instance: middleware, API routes, health,
// API docs and the kitchen display websocket.
func NewRouter(server ServerInterface, kds KitchenDisplay, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/health", func(ctx echo.Context) error {
		return ok(ctx, http.StatusOK, nil, "Healthy")
	})

	RegisterSwagger()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET(BaseURL+"/kds/ws", func(ctx echo.Context) error {
		return kds.ServeWS(ctx.Response(), ctx.Request())
	})

	apiGroup := e.Group("")
	if cfg.RateLimitRPS > 0 {
		apiGroup.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimitRPS),
				Burst:     int(cfg.RateLimitRPS) * 2,
				ExpiresIn: 3 * time.Minute,
			}),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
		}))
	}
	if cfg.ValidateRequests {
		doc, err := LoadOpenAPI()
		if err != nil {
			return nil, err
		}
		validator, err := OpenAPIValidator(doc)
		if err != nil {
			return nil, err
		}
		apiGroup.Use(validator)
	}

	RegisterHandlers(apiGroup, server, BaseURL)
	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("requestId", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
