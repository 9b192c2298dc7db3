// Package bootstrap estimates the sampling variability of a document's own
// statistics by resampling its tokens with replacement and recomputing the
// metrics on each synthetic sample. It measures variance of the observed
// document, not distance from the reference corpus.
package bootstrap

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/credence-io/credence/pkg/credence/features"
	"github.com/credence-io/credence/pkg/credence/ingest"
	"github.com/credence-io/credence/pkg/credence/internalerr"
	"github.com/credence-io/credence/pkg/credence/reference"
	"github.com/credence-io/credence/pkg/credence/textstat"
)

const (
	// DefaultSamples is the trial count when none is configured.
	DefaultSamples = 400
	// MinSamples is required for a defined standard error.
	MinSamples = 2
	// MaxSentenceDraws caps sentence-length resampling per trial.
	MaxSentenceDraws = 200
	// MaxTrialTokens caps the word-frequency working set per trial; larger
	// filtered sets are uniformly subsampled. Bounds per-trial cost for
	// very long documents while the statistic stays unbiased over the
	// capped population.
	MaxTrialTokens = 5000
)

// Config controls the engine. Seed makes trial streams reproducible; a
// zero Seed draws one from the clock at Run time.
type Config struct {
	Samples int
	Workers int
	Seed    int64
	Overuse features.OveruseConfig
}

// Metric is the sampling distribution summary for one tracked statistic.
type Metric struct {
	Mean   float64 `json:"mean"`
	StdErr float64 `json:"stdErr"`
}

// Stats reports mean and standard error per tracked metric over N trials.
type Stats struct {
	Entropy           Metric `json:"entropy"`
	KLDivergence      Metric `json:"klDivergence"`
	AvgSentenceLength Metric `json:"avgSentenceLength"`
	OverusedWordCount Metric `json:"overusedWordCount"`
	Samples           int    `json:"samples"`
}

// Trial is the outcome of a single resampling pass.
type Trial struct {
	Entropy           float64                  `json:"entropyScore"`
	KLDivergence      float64                  `json:"klDivergence"`
	AvgSentenceLength float64                  `json:"avgSentenceLength"`
	OverusedWordCount int                      `json:"overusedWordCount"`
	TopWords          []features.WordFrequency `json:"topWords"`
}

// Engine reruns the feature statistics over perturbed copies of a
// document. Trials are independent; they share only read-only state, so
// they run on parallel workers.
type Engine struct {
	calc  *textstat.Calculator
	model *reference.Model
	cfg   Config
}

// NewEngine wires an engine against a reference model.
func NewEngine(model *reference.Model, cfg Config) *Engine {
	if model == nil {
		model = reference.Uniform()
	}
	if cfg.Samples == 0 {
		cfg.Samples = DefaultSamples
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{
		calc:  textstat.NewCalculator(textstat.DefaultEpsilon),
		model: model,
		cfg:   cfg,
	}
}

// Run executes the configured number of independent trials and summarizes
// each tracked metric. Fewer than MinSamples trials is a configuration
// error. A failed trial aborts the whole computation: silently dropped
// trials would bias the reported standard error.
func (e *Engine) Run(ctx context.Context, doc *ingest.Document) (Stats, error) {
	n := e.cfg.Samples
	if n < MinSamples {
		return Stats{}, fmt.Errorf("%w: need at least %d bootstrap samples, got %d",
			internalerr.ErrInvalidConfig, MinSamples, n)
	}

	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	workers := e.cfg.Workers
	if workers > n {
		workers = n
	}

	trials := make([]Trial, n)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(w)*0x9e3779b9))
			for i := w; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					errs[w] = err
					return
				}
				trials[i] = e.trial(doc, rng, 0)
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Stats{}, fmt.Errorf("bootstrap aborted: %w", err)
		}
	}

	return summarize(trials), nil
}

// Preview runs one seeded trial including the resampled top-word table,
// for callers that want to show what a synthetic sample looks like.
func (e *Engine) Preview(doc *ingest.Document, seed int64) Trial {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return e.trial(doc, rand.New(rand.NewSource(seed)), 15)
}

// trial draws one synthetic token sequence and recomputes the metrics
// with the identical feature logic as the single-pass extractor.
func (e *Engine) trial(doc *ingest.Document, rng *rand.Rand, topWords int) Trial {
	var t Trial

	if len(doc.Tokens) > 0 {
		sample := make([]string, len(doc.Tokens))
		for i := range sample {
			sample[i] = doc.Tokens[rng.Intn(len(doc.Tokens))]
		}

		clean := make([]string, 0, len(sample))
		for _, tok := range sample {
			if c := ingest.CleanToken(tok); c != "" {
				clean = append(clean, c)
			}
		}

		t.Entropy = e.calc.Entropy(clean)
		t.KLDivergence = e.calc.KLDivergence(clean, nil)

		filtered := ingest.FilterForFrequency(clean)
		filtered = subsample(filtered, MaxTrialTokens, rng)
		t.OverusedWordCount = features.CountOverused(filtered, e.model, e.cfg.Overuse)
		if topWords > 0 {
			t.TopWords = features.TopWords(filtered, topWords)
		}
	}

	if len(doc.SentenceLengths) > 0 {
		draws := len(doc.SentenceLengths)
		if draws > MaxSentenceDraws {
			draws = MaxSentenceDraws
		}
		total := 0
		for i := 0; i < draws; i++ {
			total += doc.SentenceLengths[rng.Intn(len(doc.SentenceLengths))]
		}
		t.AvgSentenceLength = float64(total) / float64(draws)
	}

	return t
}

// subsample uniformly picks k tokens without replacement when the working
// set exceeds the cap.
func subsample(tokens []string, k int, rng *rand.Rand) []string {
	if len(tokens) <= k {
		return tokens
	}
	picked := make([]string, len(tokens))
	copy(picked, tokens)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:k]
}

func summarize(trials []Trial) Stats {
	n := len(trials)
	entropy := make([]float64, n)
	kl := make([]float64, n)
	sentLen := make([]float64, n)
	overused := make([]float64, n)
	for i, t := range trials {
		entropy[i] = t.Entropy
		kl[i] = t.KLDivergence
		sentLen[i] = t.AvgSentenceLength
		overused[i] = float64(t.OverusedWordCount)
	}

	return Stats{
		Entropy:           newMetric(entropy),
		KLDivergence:      newMetric(kl),
		AvgSentenceLength: newMetric(sentLen),
		OverusedWordCount: newMetric(overused),
		Samples:           n,
	}
}

// newMetric computes the sample mean and the standard error using the
// unbiased (n-1) sample standard deviation.
func newMetric(values []float64) Metric {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / (n - 1))

	return Metric{Mean: mean, StdErr: std / math.Sqrt(n)}
}
