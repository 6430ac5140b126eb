package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/crmkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/crmkeeper/internal/client/app"
	"github.com/dmitrijs2005/crmkeeper/internal/client/cli"
	"github.com/dmitrijs2005/crmkeeper/internal/client/config"
	"github.com/dmitrijs2005/crmkeeper/internal/client/storage"
	"github.com/dmitrijs2005/crmkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	state, err := app.Build(cfg, store, logger)
	if err != nil {
		_ = store.Close()
		log.Fatalf("%v", err)
	}
	defer state.Close()

	if err := cli.NewApp(state, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logger.Error(ctx, "cli stopped", "err", err)
	}
}
