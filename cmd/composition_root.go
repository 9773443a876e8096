package cmd

import (
	"context"
	"fmt"
	"time"

	httpadapter "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/mockdata"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/pricing"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CompositionRoot struct {
	config       Config
	logger       *zap.Logger
	uowFactory   ports.UnitOfWorkFactory
	metricsCache ports.MetricsCache
	clock        func() time.Time

	machine *order.StatusMachine
	rules   pricing.Rules
	totals  services.TotalsCalculator
	metrics services.MetricsCalculator
}

// NewCompositionRoot wires the domain to the given storage. metricsCache may be nil.
func NewCompositionRoot(
	config Config,
	uowFactory ports.UnitOfWorkFactory,
	metricsCache ports.MetricsCache,
	logger *zap.Logger,
) (CompositionRoot, error) {
	rules := pricing.DefaultRules()
	totals, err := services.NewTotalsCalculator(rules)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:       config,
		logger:       logger,
		uowFactory:   uowFactory,
		metricsCache: metricsCache,
		clock:        time.Now,
		machine:      order.DefaultStatusMachine(),
		rules:        rules,
		totals:       totals,
		metrics:      services.NewMetricsCalculator(totals, services.DefaultAttentionAge),
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// reader runs outside any transaction.
func (c *CompositionRoot) reader() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) invalidator() commands.MetricsInvalidator {
	if c.metricsCache == nil {
		return nil
	}
	return c.metricsCache
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.machine, c.clock, c.invalidator())
}

func (c *CompositionRoot) CreateBulkChangeOrderStatusCommandHandler() commands.BulkChangeOrderStatusCommandHandler {
	return commands.NewBulkChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.machine, c.clock, c.invalidator())
}

func (c *CompositionRoot) CreateImportOrdersCommandHandler() commands.ImportOrdersCommandHandler {
	return commands.NewImportOrdersCommandHandler(c.orderUoWFactory(), c.invalidator())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader(), c.totals)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.reader(), c.totals, c.machine)
}

func (c *CompositionRoot) CreateGetOrderMetricsQueryHandler() queries.GetOrderMetricsQueryHandler {
	return queries.NewGetOrderMetricsQueryHandler(c.reader(), c.metrics, c.metricsCache, c.clock)
}

func (c *CompositionRoot) CreateGetStatusCatalogQueryHandler() queries.GetStatusCatalogQueryHandler {
	return queries.NewGetStatusCatalogQueryHandler(c.machine)
}

func (c *CompositionRoot) CreateGetPricingRulesQueryHandler() queries.GetPricingRulesQueryHandler {
	return queries.NewGetPricingRulesQueryHandler(c.rules)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateBulkChangeOrderStatusCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderMetricsQueryHandler(),
		c.CreateGetStatusCatalogQueryHandler(),
		c.CreateGetPricingRulesQueryHandler(),
		c.logger.Named("http"),
	)
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	return httpadapter.NewRouter(ctx, c.CreateHTTPServer(), c.logger.Named("http"))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateGetOrderMetricsQueryHandler()
	return jobs.NewJobManager(c.config.StaleOrdersSchedule, handler, c.logger.Named("jobs"))
}

// SeedOrders imports the mock dataset when the store is empty and returns the
// number of orders added.
func (c *CompositionRoot) SeedOrders(ctx context.Context) (int, error) {
	if c.config.SeedOrders == 0 {
		return 0, nil
	}

	n, err := c.reader().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	generator, err := mockdata.NewGenerator(c.machine, c.config.SeedRandom, c.clock())
	if err != nil {
		return 0, err
	}
	orders, err := generator.Generate(c.config.SeedOrders)
	if err != nil {
		return 0, err
	}

	cmd, err := commands.NewImportOrdersCommand(orders)
	if err != nil {
		return 0, err
	}
	handler := c.CreateImportOrdersCommandHandler()
	return handler.Handle(ctx, cmd)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
