package features

import "sort"

// WordFrequency is one row of a document's top-word table.
type WordFrequency struct {
	Word    string  `json:"word"`
	Percent float64 `json:"percent"`
}

// TopWords returns the most frequent words of a filtered token sequence
// with their share of the filtered total, as percentages. Ties break
// alphabetically for deterministic output.
func TopWords(filtered []string, limit int) []WordFrequency {
	if len(filtered) == 0 || limit <= 0 {
		return nil
	}

	counts := make(map[string]int, len(filtered))
	for _, w := range filtered {
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > limit {
		words = words[:limit]
	}

	total := float64(len(filtered))
	out := make([]WordFrequency, len(words))
	for i, w := range words {
		out[i] = WordFrequency{Word: w, Percent: float64(counts[w]) / total * 100}
	}
	return out
}
