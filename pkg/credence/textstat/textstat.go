// Package textstat computes the information-theoretic statistics used by
// the scoring pipeline: Shannon entropy and smoothed Kullback-Leibler
// divergence over token distributions.
package textstat

import (
	"math"
	"sort"
)

// DefaultEpsilon is the additive smoothing constant applied to both
// distributions before a divergence is computed, avoiding log(0) and
// division by zero.
const DefaultEpsilon = 1e-10

// Calculator computes entropy and divergence with explicit smoothing.
type Calculator struct {
	epsilon float64
}

// NewCalculator creates a calculator with the given smoothing epsilon.
// Non-positive values fall back to DefaultEpsilon.
func NewCalculator(epsilon float64) *Calculator {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Calculator{epsilon: epsilon}
}

// Entropy returns the Shannon entropy in bits of the empirical token
// distribution:
//
//	H = -Σ p·log2(p)
//
// Zero tokens yield 0. Entropy of a single repeated token is exactly 0.
func (c *Calculator) Entropy(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	total := float64(len(tokens))
	var h float64
	for _, n := range counts {
		p := float64(n) / total
		h -= p * math.Log2(p)
	}
	return h
}

// KLDivergence returns the divergence from the empirical distribution of
// tokens to a reference distribution over the same vocabulary:
//
//	D = Σ p·log(p/q)
//
// reference maps vocabulary terms to reference probabilities; terms absent
// from it contribute probability 0 before smoothing. A nil reference means
// uniform over the observed vocabulary — an approximation, not a
// corpus-trained language model, and callers must not treat it as one.
// Both distributions are epsilon-smoothed and renormalized, so the result
// is finite and >= 0 for valid inputs; an empty vocabulary yields 0.
func (c *Calculator) KLDivergence(tokens []string, reference map[string]float64) float64 {
	if len(tokens) == 0 {
		return 0
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	vocab := make([]string, 0, len(counts))
	for term := range counts {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	total := float64(len(tokens))
	p := make([]float64, len(vocab))
	q := make([]float64, len(vocab))
	uniform := 1.0 / float64(len(vocab))

	for i, term := range vocab {
		p[i] = float64(counts[term])/total + c.epsilon
		if reference == nil {
			q[i] = uniform + c.epsilon
		} else {
			q[i] = reference[term] + c.epsilon
		}
	}

	normalize(p)
	normalize(q)

	var d float64
	for i := range p {
		d += p[i] * math.Log(p[i]/q[i])
	}
	return d
}

func normalize(dist []float64) {
	var sum float64
	for _, v := range dist {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range dist {
		dist[i] /= sum
	}
}
