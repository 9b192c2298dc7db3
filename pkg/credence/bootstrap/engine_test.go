package bootstrap

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/credence-io/credence/pkg/credence/features"
	"github.com/credence-io/credence/pkg/credence/ingest"
	"github.com/credence-io/credence/pkg/credence/internalerr"
	"github.com/credence-io/credence/pkg/credence/reference"
)

const sampleText = `The committee reviewed the quarterly figures in detail.
Spending rose modestly while revenue held steady across every region.
Analysts expect the pattern to continue through the coming year.
Several members raised questions about the underlying assumptions.`

func testEngine(samples int, seed int64) *Engine {
	return NewEngine(reference.Uniform(), Config{
		Samples: samples,
		Workers: 2,
		Seed:    seed,
		Overuse: features.DefaultOveruseConfig(),
	})
}

func TestRunProducesFiniteStats(t *testing.T) {
	eng := testEngine(50, 7)
	doc := ingest.Normalize(sampleText)

	stats, err := eng.Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Samples != 50 {
		t.Errorf("Samples = %d, want 50", stats.Samples)
	}
	for name, m := range map[string]Metric{
		"entropy":           stats.Entropy,
		"klDivergence":      stats.KLDivergence,
		"avgSentenceLength": stats.AvgSentenceLength,
		"overusedWordCount": stats.OverusedWordCount,
	} {
		if math.IsNaN(m.Mean) || math.IsInf(m.Mean, 0) {
			t.Errorf("%s mean = %f, want finite", name, m.Mean)
		}
		if m.StdErr < 0 || math.IsNaN(m.StdErr) {
			t.Errorf("%s stdErr = %f, want >= 0", name, m.StdErr)
		}
	}
	if stats.Entropy.Mean <= 0 {
		t.Errorf("entropy mean = %f, want > 0 for varied text", stats.Entropy.Mean)
	}
	if stats.AvgSentenceLength.Mean <= 0 {
		t.Errorf("sentence length mean = %f, want > 0", stats.AvgSentenceLength.Mean)
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	doc := ingest.Normalize(sampleText)

	a, err := testEngine(40, 99).Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := testEngine(40, 99).Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if a != b {
		t.Errorf("same seed produced different stats:\n%+v\n%+v", a, b)
	}
}

func TestRunDifferentSeedsDiffer(t *testing.T) {
	doc := ingest.Normalize(sampleText)

	a, _ := testEngine(40, 1).Run(context.Background(), doc)
	b, _ := testEngine(40, 2).Run(context.Background(), doc)

	if a.Entropy == b.Entropy && a.AvgSentenceLength == b.AvgSentenceLength {
		t.Error("different seeds produced identical trial streams")
	}
}

func TestRunRejectsTooFewSamples(t *testing.T) {
	eng := NewEngine(reference.Uniform(), Config{Samples: 1, Workers: 1, Seed: 1})

	_, err := eng.Run(context.Background(), ingest.Normalize(sampleText))
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestRunEmptyDocument(t *testing.T) {
	eng := testEngine(10, 3)

	stats, err := eng.Run(context.Background(), ingest.Normalize(""))
	if err != nil {
		t.Fatalf("Run on empty doc: %v", err)
	}
	if stats.Entropy.Mean != 0 || stats.AvgSentenceLength.Mean != 0 {
		t.Errorf("empty doc stats = %+v, want zero means", stats)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	eng := testEngine(10000, 5)
	doc := ingest.Normalize(strings.Repeat(sampleText+" ", 20))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := eng.Run(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPreviewIncludesTopWords(t *testing.T) {
	eng := testEngine(10, 11)
	doc := ingest.Normalize(sampleText)

	trial := eng.Preview(doc, 11)
	if len(trial.TopWords) == 0 {
		t.Fatal("preview trial should carry a top-word table")
	}
	for i := 1; i < len(trial.TopWords); i++ {
		if trial.TopWords[i].Percent > trial.TopWords[i-1].Percent {
			t.Errorf("top words not sorted by share: %v", trial.TopWords)
		}
	}

	again := eng.Preview(doc, 11)
	if trial.Entropy != again.Entropy {
		t.Error("same preview seed produced different trials")
	}
}

func TestSubsampleCapsWorkingSet(t *testing.T) {
	eng := testEngine(5, 21)
	// Far more qualifying tokens than MaxTrialTokens to exercise the cap.
	var b strings.Builder
	for i := 0; i < MaxTrialTokens+2000; i++ {
		b.WriteString("lengthy wording ")
	}
	doc := ingest.Normalize(b.String())

	stats, err := eng.Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if math.IsNaN(stats.OverusedWordCount.Mean) {
		t.Error("overused count mean should stay defined under subsampling")
	}
}
