package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/luggify/internal/client/cli"
	"github.com/dmitrijs2005/luggify/internal/client/client"
	"github.com/dmitrijs2005/luggify/internal/client/config"
	"github.com/dmitrijs2005/luggify/internal/client/localstore"
	"github.com/dmitrijs2005/luggify/internal/client/repositories/checklists"
	"github.com/dmitrijs2005/luggify/internal/client/services"
	"github.com/dmitrijs2005/luggify/internal/filex"
	"github.com/dmitrijs2005/luggify/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if _, err := filex.EnsureParentDir(cfg.LogFile); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	logger, closeLog := logging.New(logging.Options{Backend: cfg.LogBackend, Level: cfg.LogLevel, File: cfg.LogFile})
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return fmt.Errorf("database dir: %w", err)
	}
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	defer db.Close()

	repos := client.NewRepositories(db, checklists.WithCorruptHandler(func(slug string, err error) {
		logger.Warn(ctx, "skipping unreadable checklist", "slug", slug, "error", err)
	}))

	api, err := client.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	defer api.Close()

	prefs := services.NewPreferencesService(repos.Metadata)
	if cfg.OwnerID != "" {
		if err := prefs.SetOwnerID(ctx, cfg.OwnerID); err != nil {
			return err
		}
	}

	conn := services.NewProbeConnectivity(cfg.ServerBaseURL, cfg.RequestTimeout)
	store := localstore.New(repos.Checklists, logger)
	cs := services.NewChecklistService(api, store, conn, logger, services.WithSyncConcurrency(cfg.SyncConcurrency))

	app := cli.NewApp(cs, prefs, conn, logger, cli.WithOnlineCheckInterval(cfg.OnlineCheckInterval))
	logger.Info(ctx, "client started", "server", cfg.ServerBaseURL, "database", cfg.DatabasePath)
	app.Run(ctx)
	return nil
}
