package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/config"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := injector.InitializeServer(cfg)
	logger := log.Provide()
	defer func() { _ = logger.Sync() }()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	if err := srv.Start(ctx); err != nil {
		logger.Error("Error starting server", log.Error(err))
		os.Exit(1)
	}

	<-stopCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping server", log.Error(err))
	}
}
