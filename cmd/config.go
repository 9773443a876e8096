package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"orderdesk/internal/pkg/errs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	AppModeProduction = "PROD"
	AppModeDevelop    = "DEV"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	AppMode         string        `env:"APP_MODE" envDefault:"DEV"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME" envDefault:"orderdesk"`
	DBSslMode     string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	MetricsCacheTTL time.Duration `env:"METRICS_CACHE_TTL" envDefault:"30s"`

	SeedOrders int    `env:"SEED_ORDERS" envDefault:"1000"`
	SeedRandom uint64 `env:"SEED_RANDOM" envDefault:"1"`

	StaleOrdersSchedule string `env:"STALE_ORDERS_SCHEDULE" envDefault:"0 */5 * * * *"`
}

// LoadConfig reads envFile into the environment when it exists, then parses
// the environment. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("error parsing env config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var result []error
	if !slices.Contains([]string{StorageMemory, StoragePostgres}, c.StorageDriver) {
		result = append(result, errs.NewValueIsInvalidErrorWithCause("STORAGE_DRIVER",
			fmt.Errorf("%q is not one of %s, %s", c.StorageDriver, StorageMemory, StoragePostgres)))
	}
	if !slices.Contains([]string{AppModeDevelop, AppModeProduction}, c.AppMode) {
		result = append(result, errs.NewValueIsInvalidErrorWithCause("APP_MODE",
			fmt.Errorf("%q is not one of %s, %s", c.AppMode, AppModeDevelop, AppModeProduction)))
	}
	if c.HTTPPort == "" {
		result = append(result, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.SeedOrders < 0 {
		result = append(result, errs.NewValueIsOutOfRangeError("SEED_ORDERS", c.SeedOrders, 0, "unbounded"))
	}
	if c.MetricsCacheTTL < 0 {
		result = append(result, errs.NewValueIsOutOfRangeError("METRICS_CACHE_TTL", c.MetricsCacheTTL, 0, "unbounded"))
	}
	return errors.Join(result...)
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
