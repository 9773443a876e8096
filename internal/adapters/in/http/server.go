// Package http exposes the order desk over a JSON API for the dashboard.
package http

import (
	"net/http"
	"strings"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

const (
	actorHeader  = "X-Actor"
	defaultActor = "dashboard"
)

// Server handles the dashboard API and delegates to the use case handlers.
type Server struct {
	// Command handlers
	changeStatusHandler     commands.ChangeOrderStatusCommandHandler
	bulkChangeStatusHandler commands.BulkChangeOrderStatusCommandHandler

	// Query handlers
	listOrdersHandler       queries.ListOrdersQueryHandler
	getOrderHandler         queries.GetOrderQueryHandler
	getMetricsHandler       queries.GetOrderMetricsQueryHandler
	getStatusCatalogHandler queries.GetStatusCatalogQueryHandler
	getPricingRulesHandler  queries.GetPricingRulesQueryHandler

	logger *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	bulkChangeStatusHandler commands.BulkChangeOrderStatusCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getMetricsHandler queries.GetOrderMetricsQueryHandler,
	getStatusCatalogHandler queries.GetStatusCatalogQueryHandler,
	getPricingRulesHandler queries.GetPricingRulesQueryHandler,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		changeStatusHandler:     changeStatusHandler,
		bulkChangeStatusHandler: bulkChangeStatusHandler,
		listOrdersHandler:       listOrdersHandler,
		getOrderHandler:         getOrderHandler,
		getMetricsHandler:       getMetricsHandler,
		getStatusCatalogHandler: getStatusCatalogHandler,
		getPricingRulesHandler:  getPricingRulesHandler,
		logger:                  logger,
	}
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var (
		filter    queries.ListOrdersFilter
		cursor    string
		direction string
		limit     *int
	)
	params := c.QueryParams()
	for _, p := range []struct {
		name string
		dest any
	}{
		{"status", &filter.Status},
		{"search", &filter.Search},
		{"dateFrom", &filter.DateFrom},
		{"dateTo", &filter.DateTo},
		{"minAmount", &filter.MinAmount},
		{"maxAmount", &filter.MaxAmount},
		{"cursor", &cursor},
		{"limit", &limit},
		{"direction", &direction},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, params, p.dest); err != nil {
			return s.badRequest(c, err)
		}
	}

	query, err := queries.NewListOrdersQuery(filter, cursor, limit, direction)
	if err != nil {
		return s.badRequest(c, err)
	}

	resp, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderPageResponse(resp))
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderQuery(c.Param("id"))
	if err != nil {
		return s.badRequest(c, err)
	}

	resp, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderDetailResponse(resp))
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var body updateStatusRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewChangeOrderStatusCommand(c.Param("id"), body.Status, actor(c), body.Note)
	if err != nil {
		return s.badRequest(c, err)
	}

	updated, err := s.changeStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.handleError(c, err)
	}

	resp, err := s.getOrderHandler.Describe(updated)
	if err != nil {
		return s.handleError(c, err)
	}

	s.logger.Info("order status changed",
		zap.String("orderId", cmd.OrderID()),
		zap.String("status", cmd.Status().String()),
		zap.String("actor", cmd.Actor()))
	return c.JSON(http.StatusOK, toOrderDetailResponse(resp))
}

// BulkUpdateOrderStatus handles PATCH /api/orders/bulk-status.
func (s *Server) BulkUpdateOrderStatus(c echo.Context) error {
	var body bulkUpdateStatusRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewBulkChangeOrderStatusCommand(body.OrderIDs, body.Status, actor(c), body.Note)
	if err != nil {
		return s.badRequest(c, err)
	}

	result, err := s.bulkChangeStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.handleError(c, err)
	}

	s.logger.Info("bulk status change",
		zap.String("status", cmd.Status().String()),
		zap.String("actor", cmd.Actor()),
		zap.Int("updated", len(result.Updated)),
		zap.Int("failed", len(result.Failed)))
	return c.JSON(http.StatusOK, toBulkResultResponse(result))
}

// GetMetrics handles GET /api/metrics.
func (s *Server) GetMetrics(c echo.Context) error {
	metrics, err := s.getMetricsHandler.Handle(c.Request().Context(), queries.NewGetOrderMetricsQuery())
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, toMetricsResponse(metrics))
}

// GetStatuses handles GET /api/statuses.
func (s *Server) GetStatuses(c echo.Context) error {
	catalog, err := s.getStatusCatalogHandler.Handle(c.Request().Context(), queries.NewGetStatusCatalogQuery())
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, toStatusCatalogResponse(catalog))
}

// GetPricingRules handles GET /api/pricing/rules.
func (s *Server) GetPricingRules(c echo.Context) error {
	resp, err := s.getPricingRulesHandler.Handle(c.Request().Context(), queries.NewGetPricingRulesQuery())
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, toPricingRulesResponse(resp))
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

func actor(c echo.Context) string {
	if a := strings.TrimSpace(c.Request().Header.Get(actorHeader)); a != "" {
		return a
	}
	return defaultActor
}
