// Package classify turns a feature vector into a reliability label with a
// point confidence, and provides the offline calibration that produces the
// decision weights.
package classify

import (
	"math"

	"github.com/credence-io/credence/pkg/credence/features"
)

// Labels for the two decision outcomes.
const (
	LabelReliable   = "Likely Reliable"
	LabelMisleading = "Potentially Misleading"
)

// MaxConfidence caps the reported point confidence.
const MaxConfidence = 0.99

// Weights are the linear decision coefficients in reliability polarity:
// a positive decision value means reliable. Field order matches
// features.Vector.
type Weights struct {
	Entropy                 float64 `yaml:"entropy"`
	KLDivergence            float64 `yaml:"klDivergence"`
	OverusedWordScore       float64 `yaml:"overusedWordScore"`
	SuspiciousWordCount     float64 `yaml:"suspiciousWordCount"`
	SentenceLengthDeviation float64 `yaml:"sentenceLengthDeviation"`
	Intercept               float64 `yaml:"intercept"`
}

// DefaultWeights are the fixed coefficients used when no calibrated model
// is available: higher entropy, lower divergence, fewer overused and
// suspicious words, and near-ideal sentence length all push toward the
// reliable decision.
func DefaultWeights() Weights {
	return Weights{
		Entropy:                 0.80,
		KLDivergence:            -1.85,
		OverusedWordScore:       -1.32,
		SuspiciousWordCount:     -1.03,
		SentenceLengthDeviation: -2.89,
		Intercept:               1.22,
	}
}

// Values returns the coefficients in feature order, without the intercept.
func (w Weights) Values() []float64 {
	return []float64{
		w.Entropy,
		w.KLDivergence,
		w.OverusedWordScore,
		w.SuspiciousWordCount,
		w.SentenceLengthDeviation,
	}
}

// Standardizer is the zero-mean unit-variance transform fit over the
// calibration features. Nil means raw features.
type Standardizer struct {
	Mean []float64 `yaml:"mean"`
	Std  []float64 `yaml:"std"`
}

// Apply standardizes a feature slice. Zero standard deviations are
// floored so constant features do not divide by zero.
func (s *Standardizer) Apply(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		std := s.Std[i]
		if std < 1e-12 {
			std = 1e-12
		}
		out[i] = (v - s.Mean[i]) / std
	}
	return out
}

// Model is the immutable per-process classifier state: decision weights,
// the optional standardizer they were trained with, and the calibration
// threshold kept for diagnostics (already folded into the intercept).
type Model struct {
	Weights   Weights       `yaml:"weights"`
	Scaler    *Standardizer `yaml:"scaler,omitempty"`
	Threshold float64       `yaml:"threshold,omitempty"`
}

// Default returns the model with fixed fallback coefficients over raw
// features.
func Default() *Model {
	return &Model{Weights: DefaultWeights()}
}

// Result is one classification outcome.
type Result struct {
	Label string
	// Confidence derives from the magnitude of the decision value. It is
	// a monotone transform, not a calibrated posterior probability.
	Confidence float64
	// Decision is the raw linear score before the label/confidence
	// transform.
	Decision float64
}

// Classifier is a stateless pure function of (model, feature vector).
// Safe for concurrent use.
type Classifier struct {
	model *Model
}

// NewClassifier wires a classifier; nil model means the default weights.
func NewClassifier(m *Model) *Classifier {
	if m == nil {
		m = Default()
	}
	return &Classifier{model: m}
}

// Classify computes the decision value and derives label and confidence.
// The sign of the decision value selects the label: >= 0 is reliable.
func (c *Classifier) Classify(v features.Vector) Result {
	values := v.Values()
	if c.model.Scaler != nil {
		values = c.model.Scaler.Apply(values)
	}

	decision := c.model.Weights.Intercept
	for i, w := range c.model.Weights.Values() {
		decision += w * values[i]
	}

	label := LabelReliable
	if decision < 0 {
		label = LabelMisleading
	}

	return Result{
		Label:      label,
		Confidence: math.Min(MaxConfidence, 0.5+0.1*math.Abs(decision)),
		Decision:   decision,
	}
}
