package classify

import (
	"fmt"
	"math"
	"sort"

	"github.com/credence-io/credence/pkg/credence/features"
	"github.com/credence-io/credence/pkg/credence/ingest"
	"github.com/credence-io/credence/pkg/credence/internalerr"
)

// Sample is one labeled calibration document.
type Sample struct {
	Text       string
	Unreliable bool
}

// Calibration is the outcome of an offline training run. Accuracy and
// FlaggedPercent are computed on the training set itself; they are
// diagnostics, not a substitute for held-out evaluation.
type Calibration struct {
	Model          *Model
	Accuracy       float64
	FlaggedPercent float64
}

const (
	calibrationEpochs       = 500
	calibrationLearningRate = 0.1

	// flaggedQuantile sets the operating threshold at the 80th percentile
	// of training positive-class probability, deliberately targeting
	// roughly 20% flagged as unreliable regardless of the model's natural
	// separation.
	flaggedQuantile = 0.8
)

// Calibrate fits the linear decision weights from labeled texts: extract
// features, fit a standardizer, run logistic regression on the
// standardized features, then pick the operating threshold at the
// flagged-percentage quantile. The returned model carries weights in
// reliability polarity with the threshold folded into the intercept, so
// the classifier's sign rule applies unchanged.
func Calibrate(samples []Sample, extractor *features.Extractor) (*Calibration, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("%w: calibration needs at least 2 samples, got %d",
			internalerr.ErrInvalidConfig, len(samples))
	}

	vectors := make([][]float64, len(samples))
	labels := make([]float64, len(samples))
	for i, s := range samples {
		v, _ := extractor.Extract(ingest.Normalize(s.Text))
		vectors[i] = v.Values()
		if s.Unreliable {
			labels[i] = 1
		}
	}

	scaler := fitStandardizer(vectors)
	scaled := make([][]float64, len(vectors))
	for i, v := range vectors {
		scaled[i] = scaler.Apply(v)
	}

	w, b := fitLogistic(scaled, labels)

	probs := make([]float64, len(scaled))
	for i, x := range scaled {
		probs[i] = sigmoid(dot(w, x) + b)
	}

	threshold := quantile(probs, flaggedQuantile)

	// Fold: reliable iff P(unreliable) < threshold, i.e.
	// logit(threshold) - (w·x + b) >= 0.
	shift := logit(threshold)
	model := &Model{
		Weights: Weights{
			Entropy:                 -w[0],
			KLDivergence:            -w[1],
			OverusedWordScore:       -w[2],
			SuspiciousWordCount:     -w[3],
			SentenceLengthDeviation: -w[4],
			Intercept:               shift - b,
		},
		Scaler:    scaler,
		Threshold: threshold,
	}

	var correct, flagged int
	for i, p := range probs {
		predicted := 0.0
		if p >= threshold {
			predicted = 1
			flagged++
		}
		if predicted == labels[i] {
			correct++
		}
	}

	return &Calibration{
		Model:          model,
		Accuracy:       float64(correct) / float64(len(samples)),
		FlaggedPercent: float64(flagged) / float64(len(samples)) * 100,
	}, nil
}

func fitStandardizer(vectors [][]float64) *Standardizer {
	dim := features.Dim
	mean := make([]float64, dim)
	std := make([]float64, dim)
	n := float64(len(vectors))

	for _, v := range vectors {
		for i := 0; i < dim; i++ {
			mean[i] += v[i]
		}
	}
	for i := range mean {
		mean[i] /= n
	}

	for _, v := range vectors {
		for i := 0; i < dim; i++ {
			d := v[i] - mean[i]
			std[i] += d * d
		}
	}
	for i := range std {
		std[i] = math.Sqrt(std[i] / n)
	}

	return &Standardizer{Mean: mean, Std: std}
}

// fitLogistic runs full-batch gradient descent on the cross-entropy loss.
// Inputs are standardized, so a fixed learning rate converges fine at this
// scale.
func fitLogistic(xs [][]float64, ys []float64) (weights []float64, bias float64) {
	dim := features.Dim
	weights = make([]float64, dim)
	n := float64(len(xs))

	for epoch := 0; epoch < calibrationEpochs; epoch++ {
		grad := make([]float64, dim)
		var gradB float64
		for i, x := range xs {
			err := sigmoid(dot(weights, x)+bias) - ys[i]
			for j := 0; j < dim; j++ {
				grad[j] += err * x[j]
			}
			gradB += err
		}
		for j := 0; j < dim; j++ {
			weights[j] -= calibrationLearningRate * grad[j] / n
		}
		bias -= calibrationLearningRate * gradB / n
	}

	return weights, bias
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func logit(p float64) float64 {
	const eps = 1e-6
	p = math.Min(math.Max(p, eps), 1-eps)
	return math.Log(p / (1 - p))
}

func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(q * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
