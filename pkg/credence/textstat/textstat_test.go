package textstat

import (
	"math"
	"testing"
)

func TestEntropySingleRepeatedWord(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	tokens := []string{"the", "the", "the", "the", "the"}
	if h := calc.Entropy(tokens); h != 0 {
		t.Errorf("entropy of a single repeated word = %f, want exactly 0", h)
	}
}

func TestEntropyTwoEquiprobableTokens(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	h := calc.Entropy([]string{"alpha", "beta"})
	if math.Abs(h-1.0) > 1e-12 {
		t.Errorf("entropy of two equiprobable tokens = %f, want 1 bit", h)
	}
}

func TestEntropyNonNegative(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	texts := [][]string{
		{"a"},
		{"a", "b", "b", "c", "c", "c"},
		{"x", "y", "z", "x", "y", "z"},
	}
	for _, tokens := range texts {
		if h := calc.Entropy(tokens); h < 0 {
			t.Errorf("entropy(%v) = %f, want >= 0", tokens, h)
		}
	}
}

func TestEntropyEmpty(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	if h := calc.Entropy(nil); h != 0 {
		t.Errorf("entropy of no tokens = %f, want 0", h)
	}
}

func TestKLDivergenceUniformAgainstUniform(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	// Perfectly uniform token distribution against the uniform default
	// reference should be ~0 within smoothing tolerance.
	tokens := []string{"alpha", "beta", "gamma", "delta"}
	if d := calc.KLDivergence(tokens, nil); math.Abs(d) > 1e-6 {
		t.Errorf("divergence of uniform vs uniform = %g, want ~0", d)
	}
}

func TestKLDivergenceNonNegative(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	d := calc.KLDivergence([]string{"a", "a", "a", "b"}, nil)
	if d < 0 {
		t.Errorf("divergence = %f, want >= 0", d)
	}
	if d == 0 {
		t.Error("skewed distribution against uniform should diverge")
	}
}

func TestKLDivergenceExplicitReference(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	tokens := []string{"cats", "cats", "dogs", "dogs"}

	matching := map[string]float64{"cats": 0.5, "dogs": 0.5}
	if d := calc.KLDivergence(tokens, matching); math.Abs(d) > 1e-6 {
		t.Errorf("divergence against identical reference = %g, want ~0", d)
	}

	skewed := map[string]float64{"cats": 0.99, "dogs": 0.01}
	if d := calc.KLDivergence(tokens, skewed); d <= 0 {
		t.Errorf("divergence against skewed reference = %g, want > 0", d)
	}
}

func TestKLDivergenceEmpty(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	if d := calc.KLDivergence(nil, nil); d != 0 {
		t.Errorf("divergence of empty vocabulary = %f, want 0", d)
	}
}

func TestKLDivergenceFinite(t *testing.T) {
	calc := NewCalculator(DefaultEpsilon)

	// A reference missing the entire vocabulary must not produce Inf:
	// smoothing floors the zero probabilities.
	d := calc.KLDivergence([]string{"unseen", "terms"}, map[string]float64{"other": 1})
	if math.IsInf(d, 0) || math.IsNaN(d) {
		t.Errorf("divergence = %f, want finite", d)
	}
}
