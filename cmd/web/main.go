package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/peterkuimelis/cardclash/internal/app"
	"github.com/peterkuimelis/cardclash/internal/web"
)

func main() {
	configFile := flag.String("config", "cardclash.toml", "path to config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	a, err := app.Open(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	cfg := a.Config
	listen := cfg.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	srv := web.NewServer(a.Catalog, a.Manager, web.Options{
		DecksFile:        cfg.Decks.Path,
		CatalogPath:      cfg.Catalog.Path,
		BattlesPerSecond: cfg.Server.BattlesPerSecond,
		Burst:            cfg.Server.Burst,
	}, a.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Catalog.Watch {
		go func() {
			if err := srv.WatchCatalog(ctx); err != nil {
				a.Logger.Warn("catalog watch stopped", zap.Error(err))
			}
		}()
	}

	a.Logger.Info("cardclash web API listening", zap.String("addr", listen))
	if err := srv.ListenAndServe(listen); err != nil {
		a.Logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
