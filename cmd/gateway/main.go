package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/billo-wallet/billo/internal/config"
	"github.com/billo-wallet/billo/internal/logging"
	"github.com/billo-wallet/billo/internal/server"
	"github.com/billo-wallet/billo/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	var (
		deviceStore store.Store
		cache       *redis.Client
		closer      io.Closer
	)
	switch cfg.StoreDriver {
	case config.StoreDriverRedis:
		redisStore, err := store.OpenRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("open redis store", "error", err)
			os.Exit(1)
		}
		deviceStore = redisStore
		cache = redisStore.Client()
		closer = redisStore
	case config.StoreDriverPostgres:
		pgStore, err := store.OpenPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("open postgres store", "error", err)
			os.Exit(1)
		}
		deviceStore = pgStore
		closer = pgStore
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	srv, err := server.New(cfg, deviceStore, cache, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("gateway exited cleanly")
}
