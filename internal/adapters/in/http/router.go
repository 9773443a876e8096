package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// NewRouter builds the echo instance serving the dashboard API.
func NewRouter(ctx context.Context, server *Server, logger *zap.Logger) (*echo.Echo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	docJSON, err := registerSwagger(doc)
	if err != nil {
		return nil, err
	}
	validator, err := openAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("path", c.Path()),
				zap.Error(err),
				zap.ByteString("stack", stack))
			return err
		},
	}))
	e.Use(requestLogger(logger))
	e.Use(validator)

	e.GET("/health", server.Health)
	e.GET("/api/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, server)

	return e, nil
}

// RegisterHandlers mounts the API routes on e.
func RegisterHandlers(e *echo.Echo, s *Server) {
	api := e.Group("/api")
	api.GET("/orders", s.ListOrders)
	api.PATCH("/orders/bulk-status", s.BulkUpdateOrderStatus)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.GET("/metrics", s.GetMetrics)
	api.GET("/statuses", s.GetStatuses)
	api.GET("/pricing/rules", s.GetPricingRules)
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestId", v.RequestID),
			}
			if v.Error != nil {
				logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
