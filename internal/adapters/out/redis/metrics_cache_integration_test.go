package redis_test

import (
	"context"
	"testing"
	"time"

	redisadapter "orderdesk/internal/adapters/out/redis"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

type MetricsCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	cache     *redisadapter.MetricsCache
}

func (suite *MetricsCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	addr, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: addr})
}

func (suite *MetricsCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
	suite.cache = redisadapter.NewMetricsCache(suite.client, "orderdesk-test", time.Minute, zaptest.NewLogger(suite.T()))
}

func (suite *MetricsCacheIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MetricsCacheIntegrationTestSuite) TestGet_Miss() {
	_, ok, err := suite.cache.Get(context.Background())

	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *MetricsCacheIntegrationTestSuite) TestSetThenGet() {
	ctx := context.Background()
	metrics := services.Metrics{
		TotalOrders:        3,
		TotalRevenue:       240125,
		AverageOrderValue:  80042,
		OrdersByStatus:     map[order.Status]int{order.Pending: 2, order.Delivered: 1},
		RequiringAttention: 1,
	}

	suite.Require().NoError(suite.cache.Set(ctx, metrics))
	got, ok, err := suite.cache.Get(ctx)

	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(metrics, got)

	ttl, err := suite.client.TTL(ctx, "orderdesk-test:metrics").Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
}

func (suite *MetricsCacheIntegrationTestSuite) TestInvalidate() {
	ctx := context.Background()
	suite.Require().NoError(suite.cache.Set(ctx, services.Metrics{TotalOrders: 1}))

	suite.Require().NoError(suite.cache.Invalidate(ctx))
	_, ok, err := suite.cache.Get(ctx)

	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *MetricsCacheIntegrationTestSuite) TestGet_CorruptEntry() {
	ctx := context.Background()
	suite.Require().NoError(suite.client.Set(ctx, "orderdesk-test:metrics", "not json", time.Minute).Err())

	_, ok, err := suite.cache.Get(ctx)

	suite.Require().Error(err)
	suite.False(ok)
}

func TestMetricsCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsCacheIntegrationTestSuite))
}
