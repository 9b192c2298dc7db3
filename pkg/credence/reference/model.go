// Package reference holds the expected-English baseline: an immutable
// term→relative-frequency table built once from a large external corpus
// and shared read-only by all requests.
package reference

import (
	"github.com/credence-io/credence/pkg/credence/ingest"
)

// DefaultFrequency is assumed for terms absent from the corpus, keeping
// divisions well-defined instead of blowing up on zero.
const DefaultFrequency = 1e-4

// Source identifies which baseline a model was built from, so degraded
// mode is distinguishable in diagnostics.
type Source string

const (
	// SourceCorpus means the model was built from real corpus counts.
	SourceCorpus Source = "corpus"
	// SourceUniform means no corpus was available and every lookup
	// returns DefaultFrequency.
	SourceUniform Source = "uniform"
)

// Model is the immutable reference word-frequency table.
type Model struct {
	freqs  map[string]float64
	total  int64
	source Source
}

// NewModel builds a model from raw corpus term counts. Terms that do not
// qualify for frequency statistics (non-alphabetic or too short) are
// dropped, and relative frequencies are computed over the qualifying total.
func NewModel(counts map[string]int64) *Model {
	var total int64
	qualified := make(map[string]int64, len(counts))
	for term, n := range counts {
		if n <= 0 || !ingest.QualifiesForFrequency(term) {
			continue
		}
		qualified[term] = n
		total += n
	}

	freqs := make(map[string]float64, len(qualified))
	if total > 0 {
		for term, n := range qualified {
			freqs[term] = float64(n) / float64(total)
		}
	}

	return &Model{freqs: freqs, total: total, source: SourceCorpus}
}

// Uniform returns the degraded model used when no corpus could be loaded.
func Uniform() *Model {
	return &Model{freqs: map[string]float64{}, source: SourceUniform}
}

// Frequency returns the relative corpus frequency of a term, or
// DefaultFrequency when the term is unseen.
func (m *Model) Frequency(term string) float64 {
	if f, ok := m.freqs[term]; ok {
		return f
	}
	return DefaultFrequency
}

// Total returns the corpus's total qualifying-term count; 0 in uniform mode.
func (m *Model) Total() int64 { return m.total }

// Source reports which baseline this model carries.
func (m *Model) Source() Source { return m.source }

// Degraded reports whether the model is the uniform fallback.
func (m *Model) Degraded() bool { return m.source == SourceUniform }

// SubsetPercentages returns, for each word, its corpus frequency expressed
// as a percentage of the summed frequencies of just these words. This is
// the reference column shown next to a document's own top-word table. In
// uniform mode every word gets an equal share.
func (m *Model) SubsetPercentages(words []string) []float64 {
	out := make([]float64, len(words))
	if len(words) == 0 {
		return out
	}

	var sum float64
	for _, w := range words {
		sum += m.Frequency(w)
	}
	if sum == 0 {
		return out
	}
	for i, w := range words {
		out[i] = m.Frequency(w) / sum * 100
	}
	return out
}
