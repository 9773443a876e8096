package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"orderdesk/cmd"

	"go.uber.org/zap"
)

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := cmd.NewLogger(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(finish(logger, run(config, logger)))
}

// finish logs the outcome of run and flushes the logger before the process
// exits. It returns the exit code.
func finish(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("Order desk stopped with error", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(config cmd.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uowFactory, closeStorage, err := cmd.OpenStorage(config, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStorage() }()

	metricsCache, closeCache := cmd.OpenMetricsCache(ctx, config, logger)
	defer func() { _ = closeCache() }()

	app, err := cmd.NewCompositionRoot(config, uowFactory, metricsCache, logger)
	if err != nil {
		return err
	}

	seeded, err := app.SeedOrders(ctx)
	if err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if seeded > 0 {
		logger.Info("Seeded mock orders", zap.Int("count", seeded))
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter(ctx)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("port", config.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
