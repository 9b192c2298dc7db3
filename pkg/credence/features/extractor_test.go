package features

import (
	"math"
	"reflect"
	"testing"

	"github.com/credence-io/credence/pkg/credence/ingest"
	"github.com/credence-io/credence/pkg/credence/reference"
	"github.com/credence-io/credence/pkg/credence/watchlist"
)

func TestExtractRepetitiveText(t *testing.T) {
	ex := NewExtractor(corpusModel(), watchlist.New([]string{"hoax"}), DefaultOveruseConfig())
	doc := ingest.Normalize("the the the the the.")

	v, d := ex.Extract(doc)

	if v.Entropy != 0 {
		t.Errorf("Entropy = %f, want exactly 0 for a single repeated word", v.Entropy)
	}
	if v.SuspiciousWordCount != 0 {
		t.Errorf("SuspiciousWordCount = %f, want 0", v.SuspiciousWordCount)
	}
	if v.OverusedWordScore != 0 {
		t.Errorf("OverusedWordScore = %f, want 0 (no qualifying words)", v.OverusedWordScore)
	}
	// One sentence of five words: |5 - 17.5| / 10.
	if math.Abs(v.SentenceLengthDeviation-1.25) > 1e-12 {
		t.Errorf("SentenceLengthDeviation = %f, want 1.25", v.SentenceLengthDeviation)
	}
	if len(d.OverusedWords) != 0 || len(d.SuspiciousWords) != 0 {
		t.Errorf("diagnostics should be empty: %+v", d)
	}
}

func TestExtractSuspiciousTerms(t *testing.T) {
	ex := NewExtractor(corpusModel(), watchlist.New([]string{"conspiracy", "hoax"}), DefaultOveruseConfig())
	doc := ingest.Normalize("This conspiracy is a total hoax, they say.")

	v, d := ex.Extract(doc)

	if v.SuspiciousWordCount != 2 {
		t.Errorf("SuspiciousWordCount = %f, want 2", v.SuspiciousWordCount)
	}
	if !reflect.DeepEqual(d.SuspiciousWords, []string{"conspiracy", "hoax"}) {
		t.Errorf("SuspiciousWords = %v", d.SuspiciousWords)
	}
}

func TestExtractOverusedScore(t *testing.T) {
	// Uniform baseline, so the degraded count rule applies: "wonderful"
	// appears six times among five distinct qualifying words, giving a
	// score of 1/5 * 10.
	ex := NewExtractor(reference.Uniform(), watchlist.New(nil), DefaultOveruseConfig())
	doc := ingest.Normalize(
		"Wonderful wonderful wonderful wonderful wonderful wonderful things happen here often")

	v, d := ex.Extract(doc)

	if !reflect.DeepEqual(d.OverusedWords, []string{"wonderful"}) {
		t.Fatalf("OverusedWords = %v, want [wonderful]", d.OverusedWords)
	}
	if math.Abs(v.OverusedWordScore-2.0) > 1e-12 {
		t.Errorf("OverusedWordScore = %f, want 2.0", v.OverusedWordScore)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	ex := NewExtractor(corpusModel(), watchlist.New(nil), DefaultOveruseConfig())

	v, d := ex.Extract(ingest.Normalize(""))

	if v != (Vector{}) {
		t.Errorf("empty document vector = %+v, want zero", v)
	}
	if len(d.OverusedWords) != 0 || len(d.SuspiciousWords) != 0 {
		t.Errorf("empty document diagnostics = %+v, want empty", d)
	}
}

func TestNewExtractorDegradesNilInputs(t *testing.T) {
	ex := NewExtractor(nil, nil, DefaultOveruseConfig())

	// The builtin term list must be active.
	_, d := ex.Extract(ingest.Normalize("a shocking conspiracy"))
	if len(d.SuspiciousWords) == 0 {
		t.Error("nil watchlist should degrade to the builtin terms")
	}
}

func TestVectorValuesOrder(t *testing.T) {
	v := Vector{
		Entropy:                 1,
		KLDivergence:            2,
		OverusedWordScore:       3,
		SuspiciousWordCount:     4,
		SentenceLengthDeviation: 5,
	}

	want := []float64{1, 2, 3, 4, 5}
	if got := v.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
	if len(want) != Dim {
		t.Errorf("Dim = %d, want %d", Dim, len(want))
	}
}
