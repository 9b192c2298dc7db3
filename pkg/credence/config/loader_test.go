package config

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoaderAllFilesPresent(t *testing.T) {
	loader := &Loader{
		CorpusPath:    writeFile(t, "corpus.txt", "economy 300\npolicy 700\n"),
		WatchlistPath: writeFile(t, "watchlist.yaml", "terms: [hoax, fraud]\n"),
		Logger:        discardLogger(),
	}

	comp := loader.Load()

	if comp.Reference.Degraded() {
		t.Error("reference should not be degraded with a readable corpus")
	}
	if comp.Watchlist.Degraded() {
		t.Error("watchlist should not be degraded with a readable file")
	}
	if comp.Model == nil {
		t.Error("model should fall back to default weights")
	}
}

func TestLoaderDegradesOnMissingFiles(t *testing.T) {
	loader := &Loader{
		CorpusPath:    "/nonexistent/corpus.txt",
		WatchlistPath: "/nonexistent/watchlist.yaml",
		ModelPath:     "/nonexistent/model.yaml",
		Logger:        discardLogger(),
	}

	comp := loader.Load()

	if !comp.Reference.Degraded() {
		t.Error("missing corpus should yield the uniform baseline")
	}
	if !comp.Watchlist.Degraded() {
		t.Error("missing watchlist should yield the builtin terms")
	}
	if comp.Model == nil {
		t.Error("missing model should yield default weights, not nil")
	}
}

func TestLoaderEmptyPaths(t *testing.T) {
	loader := &Loader{Logger: discardLogger()}

	comp := loader.Load()
	if !comp.Reference.Degraded() || !comp.Watchlist.Degraded() || comp.Model == nil {
		t.Errorf("empty paths should degrade every component: %+v", comp)
	}
}

func TestLoaderBrokenCorpusDegrades(t *testing.T) {
	loader := &Loader{
		CorpusPath: writeFile(t, "corpus.txt", "not a valid line at all\n"),
		Logger:     discardLogger(),
	}

	if comp := loader.Load(); !comp.Reference.Degraded() {
		t.Error("unparseable corpus should degrade the reference model")
	}
}
