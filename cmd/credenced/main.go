// Command credenced serves the document reliability scoring API.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/credence-io/credence/internal/extract"
	"github.com/credence-io/credence/internal/logging"
	"github.com/credence-io/credence/internal/server"
	"github.com/credence-io/credence/pkg/credence"
	"github.com/credence-io/credence/pkg/credence/bootstrap"
	"github.com/credence-io/credence/pkg/credence/config"
	"github.com/credence-io/credence/pkg/credence/store"
	"github.com/credence-io/credence/pkg/credence/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration path (optional)")
		listen     = flag.String("listen", "", "listen address (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	logger := logging.New(cfg.Logging.Level)

	loader := config.Loader{
		CorpusPath:    cfg.Data.CorpusPath,
		WatchlistPath: cfg.Data.WatchlistPath,
		ModelPath:     cfg.Data.ModelPath,
		Logger:        logger.With("component", "loader"),
	}
	components := loader.Load()

	var st store.Store
	if cfg.Data.DBPath != "" {
		st, err = sqlite.Open(context.Background(), cfg.Data.DBPath)
		if err != nil {
			log.Fatal("Failed to open database: ", err)
		}
		defer st.Close()
	}

	engine := credence.New(credence.Options{
		Reference: components.Reference,
		Watchlist: components.Watchlist,
		Model:     components.Model,
		Bootstrap: bootstrap.Config{
			Samples: cfg.Bootstrap.Samples,
			Workers: cfg.Bootstrap.Workers,
			Seed:    cfg.Bootstrap.Seed,
		},
		Logger: logger.With("component", "engine"),
	})

	srv := server.New(engine, extract.NewFetcher(nil), st, logger.With("component", "server"))

	logger.Info("listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, srv.Handler()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
