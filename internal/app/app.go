// Package app wires the configuration, catalog, history store and battle
// manager shared by the cardclash binaries.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/cardclash/internal/battle"
	"github.com/peterkuimelis/cardclash/internal/config"
	"github.com/peterkuimelis/cardclash/internal/game"
	"github.com/peterkuimelis/cardclash/internal/history"
	"github.com/peterkuimelis/cardclash/internal/logging"
)

// App holds the long-lived components of a cardclash process.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Catalog *game.Catalog
	Store   history.Store
	Manager *battle.Manager
}

// Open loads the configuration at path and builds every component from it.
func Open(path string) (*App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// New builds every component from cfg.
func New(cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	catalog, err := game.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	store, err := openStore(cfg.History)
	if err != nil {
		return nil, err
	}

	logger.Debug("app ready",
		zap.Int("cards", catalog.Len()),
		zap.String("history", cfg.History.Driver),
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog,
		Store:   store,
		Manager: battle.NewManager(cfg.Rules(), store, logger),
	}, nil
}

func openStore(cfg config.HistoryConfig) (history.Store, error) {
	switch cfg.Driver {
	case "memory":
		return history.NewMemoryStore(), nil
	case "sqlite":
		store, err := history.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.Driver)
	}
}

// Close releases the history store and flushes the logger.
func (a *App) Close() error {
	err := a.Store.Close()
	a.Logger.Sync()
	return err
}
