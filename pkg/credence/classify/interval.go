package classify

import (
	"math/rand"
	"sort"
	"time"
)

const (
	// DefaultIntervalTrials is the perturbation count for NoiseInterval.
	DefaultIntervalTrials = 100
	// noiseAmplitude is the half-width of the uniform perturbation.
	noiseAmplitude = 0.05
)

// NoiseInterval reports a 95% interval around a point confidence by
// perturbing it with uniform noise in [-0.05, +0.05], clamping to [0,1]
// and reading the 2.5th and 97.5th percentile of the perturbed values.
//
// This is a synthetic-noise interval around a single point estimate, not
// a bootstrap over resampled data; do not confuse it with the resampling
// engine's statistics. Bounds always satisfy 0 <= lower <= upper <= 1.
func NoiseInterval(confidence float64, trials int, rng *rand.Rand) (lower, upper float64) {
	if trials <= 0 {
		trials = DefaultIntervalTrials
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	samples := make([]float64, trials)
	for i := range samples {
		noise := (rng.Float64()*2 - 1) * noiseAmplitude
		samples[i] = clamp01(confidence + noise)
	}
	sort.Float64s(samples)

	lo := int(0.025 * float64(trials))
	hi := int(0.975 * float64(trials))
	if hi >= trials {
		hi = trials - 1
	}
	return samples[lo], samples[hi]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
