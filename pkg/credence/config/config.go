// Package config loads the YAML configuration and the external data files
// the engine consumes: the reference-corpus word counts, the
// suspicious-term watch list and the calibrated classifier model.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/credence-io/credence/pkg/credence/classify"
)

// Config holds the settings required across the application.
type Config struct {
	Listen    string          `yaml:"listen"`
	Logging   LoggingConfig   `yaml:"logging"`
	Data      DataConfig      `yaml:"data"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DataConfig points at the external data files. Empty paths mean the
// corresponding component runs in degraded mode.
type DataConfig struct {
	CorpusPath    string `yaml:"corpusPath"`
	WatchlistPath string `yaml:"watchlistPath"`
	ModelPath     string `yaml:"modelPath"`
	DBPath        string `yaml:"dbPath"`
}

// BootstrapConfig controls the resampling engine.
type BootstrapConfig struct {
	Samples int   `yaml:"samples"`
	Workers int   `yaml:"workers"`
	Seed    int64 `yaml:"seed"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Listen:  ":8080",
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Watchlist is the suspicious-term list file.
type Watchlist struct {
	Terms []string `yaml:"terms"`
}

// LoadWatchlist loads suspicious terms from a YAML file.
func LoadWatchlist(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist %s: %w", path, err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}
	return &wl, nil
}

// LoadWordCounts loads reference-corpus term counts from a text file.
// Format: one "term count" pair per line; blank lines and lines starting
// with # are skipped.
func LoadWordCounts(path string) (map[string]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	defer f.Close()

	counts := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		parts := strings.Fields(text)
		if len(parts) != 2 {
			return nil, fmt.Errorf("corpus %s line %d: want \"term count\", got %q", path, line, text)
		}
		n, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corpus %s line %d: %w", path, line, err)
		}
		counts[strings.ToLower(parts[0])] += n
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	return counts, nil
}

// LoadModel loads a calibrated classifier model from a YAML file.
func LoadModel(path string) (*classify.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var m classify.Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	return &m, nil
}

// SaveModel persists a calibrated model as YAML for later loading.
func SaveModel(path string, m *classify.Model) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model %s: %w", path, err)
	}
	return nil
}
