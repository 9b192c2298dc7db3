package features

import (
	"math"
	"sort"

	"github.com/credence-io/credence/pkg/credence/reference"
)

// OveruseConfig parameterizes corpus-relative overuse detection. The same
// configuration is used by the single-pass extractor and the resampling
// engine; divergent inline thresholds are a correctness bug.
type OveruseConfig struct {
	// ZThreshold is the minimum z-score for a word to be statistically
	// anomalous.
	ZThreshold float64
	// MinCount is the raw occurrence count a word must exceed. Both
	// conditions are required, so rare words in long documents are not
	// flagged on z-score alone.
	MinCount int
	// DegradedMinCount flags any word occurring at least this often when
	// no reference model is available.
	DegradedMinCount int
	// LengthNorm is the qualifying-word count at which the variance
	// inflation for short documents bottoms out.
	LengthNorm int
	// SigmaFloor bounds the standard deviation away from zero.
	SigmaFloor float64
}

// DefaultOveruseConfig returns the operating thresholds.
func DefaultOveruseConfig() OveruseConfig {
	return OveruseConfig{
		ZThreshold:       5,
		MinCount:         8,
		DegradedMinCount: 5,
		LengthNorm:       1000,
		SigmaFloor:       1e-4,
	}
}

// DetectOverused returns the distinct words whose observed frequency in
// the filtered token sequence is anomalously high against the reference
// model. With a degraded (uniform) model it falls back to a plain
// occurrence threshold. Results are ordered by descending count, then
// alphabetically.
func DetectOverused(filtered []string, model *reference.Model, cfg OveruseConfig) []string {
	total := len(filtered)
	if total == 0 {
		return nil
	}

	counts := make(map[string]int, total)
	for _, w := range filtered {
		counts[w]++
	}

	var flagged []string
	if model == nil || model.Degraded() {
		for w, n := range counts {
			if n >= cfg.DegradedMinCount {
				flagged = append(flagged, w)
			}
		}
	} else {
		// Inflate expected variance for short documents: fewer
		// qualifying words means noisier empirical frequencies.
		lengthFactor := 1 / math.Sqrt(float64(min(total, cfg.LengthNorm))/float64(cfg.LengthNorm))

		for w, n := range counts {
			observed := float64(n) / float64(total)
			expected := model.Frequency(w)
			sigma := math.Sqrt(expected*(1-expected)/float64(total)) * lengthFactor
			z := (observed - expected) / math.Max(sigma, cfg.SigmaFloor)
			if z > cfg.ZThreshold && n > cfg.MinCount {
				flagged = append(flagged, w)
			}
		}
	}

	sort.Slice(flagged, func(i, j int) bool {
		if counts[flagged[i]] != counts[flagged[j]] {
			return counts[flagged[i]] > counts[flagged[j]]
		}
		return flagged[i] < flagged[j]
	})
	return flagged
}

// CountOverused is DetectOverused when only the count is needed (the
// resampling engine tracks the count per trial, not the words).
func CountOverused(filtered []string, model *reference.Model, cfg OveruseConfig) int {
	return len(DetectOverused(filtered, model, cfg))
}
