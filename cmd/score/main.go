// Command score runs the scoring pipeline once over a text file, a PDF or
// a URL and prints the report as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/credence-io/credence/internal/extract"
	"github.com/credence-io/credence/internal/logging"
	"github.com/credence-io/credence/pkg/credence"
	"github.com/credence-io/credence/pkg/credence/bootstrap"
	"github.com/credence-io/credence/pkg/credence/config"
)

func main() {
	var (
		filePath   = flag.String("file", "", "plain text file to score")
		pdfPath    = flag.String("pdf", "", "PDF file to score")
		pageURL    = flag.String("url", "", "web page to fetch and score")
		configPath = flag.String("config", "", "YAML configuration path (optional)")
		samples    = flag.Int("samples", 0, "bootstrap samples (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	logger := logging.New(cfg.Logging.Level)

	text, err := readInput(*filePath, *pdfPath, *pageURL)
	if err != nil {
		log.Fatal(err)
	}
	if strings.TrimSpace(text) == "" {
		log.Fatal("no text to score")
	}

	loader := config.Loader{
		CorpusPath:    cfg.Data.CorpusPath,
		WatchlistPath: cfg.Data.WatchlistPath,
		ModelPath:     cfg.Data.ModelPath,
		Logger:        logger,
	}
	components := loader.Load()

	if *samples != 0 {
		cfg.Bootstrap.Samples = *samples
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
		Logger: logger,
	})

	report, err := engine.Score(context.Background(), text)
	if err != nil {
		log.Fatal("Scoring failed: ", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

func readInput(filePath, pdfPath, pageURL string) (string, error) {
	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", filePath, err)
		}
		return string(data), nil
	case pdfPath != "":
		return extract.FromPDF(pdfPath)
	case pageURL != "":
		article, err := extract.NewFetcher(nil).FetchArticle(context.Background(), pageURL)
		if err != nil {
			return "", err
		}
		return article.Text, nil
	default:
		return "", fmt.Errorf("one of -file, -pdf or -url is required")
	}
}
