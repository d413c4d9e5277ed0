package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/deckctl/adapter/cli"
	"github.com/felixgeelhaar/deckctl/adapter/cli/deck"
	"github.com/felixgeelhaar/deckctl/adapter/cli/user"
	"github.com/felixgeelhaar/deckctl/internal/app"
	"github.com/felixgeelhaar/deckctl/pkg/config"
	"github.com/felixgeelhaar/deckctl/pkg/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := observability.DefaultLogConfig()
	logCfg.ServiceVersion = cli.Version

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("invalid configuration", "error", err)
		return 1
	}

	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		return 1
	}
	defer container.Close()

	cli.SetApp(cli.NewApp(
		container.SetCalendarOptOutHandler,
		container.UserRepo,
		container.SettingsService,
	))

	cli.AddCommand(deck.CalendarOptOutCmd)
	cli.AddCommand(user.ListCmd)
	cli.AddCommand(user.SettingCmd)

	return cli.Execute(ctx)
}
