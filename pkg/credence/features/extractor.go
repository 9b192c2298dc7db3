// Package features turns a normalized document into the fixed numeric
// feature vector the classifier consumes, plus the diagnostic word lists
// shown to callers.
package features

import (
	"math"

	"github.com/credence-io/credence/pkg/credence/ingest"
	"github.com/credence-io/credence/pkg/credence/reference"
	"github.com/credence-io/credence/pkg/credence/textstat"
	"github.com/credence-io/credence/pkg/credence/watchlist"
)

// IdealSentenceLength is the words-per-sentence midpoint the deviation
// feature is measured against.
const IdealSentenceLength = 17.5

// Dim is the feature vector dimensionality.
const Dim = 5

// Vector is the classifier input. Field order is fixed; Values returns
// the same order.
type Vector struct {
	Entropy                 float64
	KLDivergence            float64
	OverusedWordScore       float64
	SuspiciousWordCount     float64
	SentenceLengthDeviation float64
}

// Values returns the vector as an ordered slice for linear algebra.
func (v Vector) Values() []float64 {
	return []float64{
		v.Entropy,
		v.KLDivergence,
		v.OverusedWordScore,
		v.SuspiciousWordCount,
		v.SentenceLengthDeviation,
	}
}

// Diagnostics carries the literal word lists behind the aggregate
// features, for display.
type Diagnostics struct {
	OverusedWords   []string
	SuspiciousWords []string
}

// Extractor computes feature vectors against a fixed reference model and
// suspicious-term list. Stateless apart from those read-only inputs; safe
// for concurrent use.
type Extractor struct {
	calc    *textstat.Calculator
	model   *reference.Model
	terms   *watchlist.List
	overuse OveruseConfig
}

// NewExtractor wires an extractor. A nil model degrades to the uniform
// baseline; a nil list degrades to the builtin terms.
func NewExtractor(model *reference.Model, terms *watchlist.List, overuse OveruseConfig) *Extractor {
	if model == nil {
		model = reference.Uniform()
	}
	if terms == nil {
		terms = watchlist.Builtin()
	}
	return &Extractor{
		calc:    textstat.NewCalculator(textstat.DefaultEpsilon),
		model:   model,
		terms:   terms,
		overuse: overuse,
	}
}

// Extract computes the feature vector and diagnostics for one document.
// Deterministic: no randomness is involved in the single-pass vector.
func (e *Extractor) Extract(doc *ingest.Document) (Vector, Diagnostics) {
	var v Vector
	var d Diagnostics

	v.Entropy = e.calc.Entropy(doc.CleanTokens)
	v.KLDivergence = e.calc.KLDivergence(doc.CleanTokens, nil)

	d.OverusedWords = DetectOverused(doc.FilteredTokens, e.model, e.overuse)
	v.OverusedWordScore = overusedScore(d.OverusedWords, doc.FilteredTokens)

	d.SuspiciousWords = e.terms.FindIn(doc.Tokens)
	v.SuspiciousWordCount = float64(len(d.SuspiciousWords))

	if len(doc.Sentences) > 0 {
		v.SentenceLengthDeviation = math.Abs(doc.AvgSentenceLength()-IdealSentenceLength) / 10
	}

	return v, d
}

// overusedScore is the normalized rate the classifier sees: flagged
// distinct words over vocabulary size, scaled by 10. Distinct from the
// diagnostic list, which is the literal flagged set.
func overusedScore(flagged []string, filtered []string) float64 {
	if len(filtered) == 0 {
		return 0
	}
	vocab := make(map[string]struct{}, len(filtered))
	for _, w := range filtered {
		vocab[w] = struct{}{}
	}
	if len(vocab) == 0 {
		return 0
	}
	return float64(len(flagged)) / float64(len(vocab)) * 10
}
