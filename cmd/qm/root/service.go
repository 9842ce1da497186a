package root

import (
	"context"
	"log/slog"
	"os"
	"time"

	"questme/internal/catalog"
	"questme/internal/config"
	"questme/internal/engine"
	"questme/internal/gacha"
	"questme/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, config.Config, func(), error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, cfg, nil, err
	}
	setupLogging(cfg.LogLevel)

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			return nil, cfg, nil, err
		}
	}
	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, cfg, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		cleanup()
		return nil, cfg, nil, err
	}

	var rng gacha.RandomSource
	if cfg.Seed != 0 {
		rng = gacha.NewSeededRNG(cfg.Seed)
	} else {
		rng = gacha.DefaultRNG()
	}

	store := storage.NewStore(db, slog.Default())
	svc := engine.NewService(store, cat, rng, slog.Default())
	svc.Notifier().SetDismissDelay(time.Duration(cfg.DismissDelayMS) * time.Millisecond)
	if err := svc.Load(ctx); err != nil {
		cleanup()
		return nil, cfg, nil, err
	}
	return svc, cfg, cleanup, nil
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath != "" {
		return catalog.LoadFile(cfg.CatalogPath)
	}
	return catalog.Load()
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}
