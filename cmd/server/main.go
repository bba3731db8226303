package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"

	"github.com/onramptee/openbank/config"
	"github.com/onramptee/openbank/infra/provider/onchain"
	"github.com/onramptee/openbank/infra/repository/memory"
	"github.com/onramptee/openbank/pkg/app"
	"github.com/onramptee/openbank/pkg/eventbus"
	"github.com/onramptee/openbank/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	a := app.New(app.Deps{
		Ledger:     memory.New(),
		Settlement: onchain.New(cfg.Settlement, logger),
		Bus:        eventbus.NewSimpleBus(),
		Logger:     logger,
		Config:     cfg,
	})

	fiberApp := webapi.NewApp(a.UserService, a.AccountService, a.WithdrawService, cfg)

	// Shut down cleanly on SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logger.Info("shutting down", "signal", sig.String())
		if err := fiberApp.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return fiberApp.Listen(addr)
}
