// Package ingest turns raw text into the token and sentence views the
// scoring pipeline consumes. A Document is immutable once constructed and
// lives for a single scoring request.
package ingest

// Document holds the derived views of one raw input text.
type Document struct {
	Raw string

	// Tokens is the lower-cased whitespace split of the raw text,
	// punctuation included. Used for word counts and suspicious-term
	// matching.
	Tokens []string

	// CleanTokens is the punctuation-stripped copy of Tokens. Used for
	// the entropy and divergence statistics.
	CleanTokens []string

	// FilteredTokens is the subset of CleanTokens that qualifies for
	// word-frequency statistics (alphabetic, length > MinFrequencyLength).
	FilteredTokens []string

	Sentences       []string
	SentenceLengths []int
}

// TextMetrics summarizes a document for the response record.
type TextMetrics struct {
	WordCount         int     `json:"wordCount"`
	UniqueWordCount   int     `json:"uniqueWordCount"`
	SentenceCount     int     `json:"sentenceCount"`
	AvgSentenceLength float64 `json:"avgSentenceLength"`
}

// Metrics computes the surface statistics of the document. All values are
// zero for empty input.
func (d *Document) Metrics() TextMetrics {
	m := TextMetrics{
		WordCount:     len(d.Tokens),
		SentenceCount: len(d.Sentences),
	}

	seen := make(map[string]struct{}, len(d.Tokens))
	for _, tok := range d.Tokens {
		seen[tok] = struct{}{}
	}
	m.UniqueWordCount = len(seen)
	m.AvgSentenceLength = d.AvgSentenceLength()

	return m
}

// AvgSentenceLength returns the mean words-per-sentence, 0 when the
// document has no sentences.
func (d *Document) AvgSentenceLength() float64 {
	if len(d.SentenceLengths) == 0 {
		return 0
	}
	total := 0
	for _, n := range d.SentenceLengths {
		total += n
	}
	return float64(total) / float64(len(d.SentenceLengths))
}
