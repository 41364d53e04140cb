package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fskanban/internal/di"
	"fskanban/internal/infrastructure/config"
)

func main() {
	configPath := flag.String("config", "", "Config file path")
	flag.Parse()

	// Load configuration
	var loader *config.Loader
	if *configPath != "" {
		loader = config.NewLoaderWithPath(*configPath)
	} else {
		var err error
		if loader, err = config.NewLoader(); err != nil {
			log.Fatalf("Failed to create config loader: %v", err)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	server, err := container.NewDaemon()
	if err != nil {
		logger.WithError(err).Fatal("failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	logger.WithField("data", cfg.Storage.DataPath).Info("fskanban daemon started")

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errChan:
		if err != nil {
			logger.WithError(err).Error("server error")
		}
	}

	logger.Info("shutting down")
	if err := server.Stop(); err != nil {
		logger.WithError(err).Error("error stopping server")
		os.Exit(1)
	}
}
