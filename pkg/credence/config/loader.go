package config

import (
	"log/slog"

	"github.com/credence-io/credence/pkg/credence/classify"
	"github.com/credence-io/credence/pkg/credence/reference"
	"github.com/credence-io/credence/pkg/credence/watchlist"
)

// Loader assembles the engine's read-only components from data files.
// Any file that is missing or unreadable degrades the corresponding
// component instead of failing: reference-data unavailability is never a
// hard failure, only a logged, distinguishable mode.
type Loader struct {
	CorpusPath    string
	WatchlistPath string
	ModelPath     string
	Logger        *slog.Logger
}

// Components holds the loaded read-only engine state.
type Components struct {
	Reference *reference.Model
	Watchlist *watchlist.List
	Model     *classify.Model
}

// Load builds every component, falling back where needed.
func (l *Loader) Load() *Components {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	comp := &Components{}

	if l.CorpusPath != "" {
		if counts, err := LoadWordCounts(l.CorpusPath); err != nil {
			logger.Warn("reference corpus unavailable, using uniform baseline",
				"path", l.CorpusPath, "error", err)
			comp.Reference = reference.Uniform()
		} else {
			comp.Reference = reference.NewModel(counts)
			logger.Info("reference corpus loaded",
				"path", l.CorpusPath, "terms", comp.Reference.Total())
		}
	} else {
		logger.Warn("no reference corpus configured, using uniform baseline")
		comp.Reference = reference.Uniform()
	}

	if l.WatchlistPath != "" {
		if wl, err := LoadWatchlist(l.WatchlistPath); err != nil {
			logger.Warn("watchlist unavailable, using builtin terms",
				"path", l.WatchlistPath, "error", err)
			comp.Watchlist = watchlist.Builtin()
		} else {
			comp.Watchlist = watchlist.New(wl.Terms)
			logger.Info("watchlist loaded",
				"path", l.WatchlistPath, "terms", len(comp.Watchlist.Terms()))
		}
	} else {
		logger.Warn("no watchlist configured, using builtin terms")
		comp.Watchlist = watchlist.Builtin()
	}

	if l.ModelPath != "" {
		if m, err := LoadModel(l.ModelPath); err != nil {
			logger.Warn("calibrated model unavailable, using default weights",
				"path", l.ModelPath, "error", err)
			comp.Model = classify.Default()
		} else {
			comp.Model = m
			logger.Info("calibrated model loaded",
				"path", l.ModelPath, "threshold", m.Threshold)
		}
	} else {
		comp.Model = classify.Default()
	}

	return comp
}
