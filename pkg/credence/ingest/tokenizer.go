package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MinFrequencyLength is the minimum rune count (exclusive) for a token to
// count toward word-frequency statistics. The same filter is applied in
// every component that computes word frequencies.
const MinFrequencyLength = 3

// Normalize derives the word-level and sentence-level views of a raw text.
// The two views are computed independently: word tokens come from the
// lower-cased text, sentences from the original punctuation.
func Normalize(text string) *Document {
	text = norm.NFC.String(text)

	tokens := strings.Fields(strings.ToLower(text))

	clean := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if c := CleanToken(tok); c != "" {
			clean = append(clean, c)
		}
	}

	sentences := SplitSentences(text)
	lengths := make([]int, len(sentences))
	for i, s := range sentences {
		lengths[i] = len(strings.Fields(s))
	}

	return &Document{
		Raw:             text,
		Tokens:          tokens,
		CleanTokens:     clean,
		FilteredTokens:  FilterForFrequency(clean),
		Sentences:       sentences,
		SentenceLengths: lengths,
	}
}

// CleanToken strips punctuation from a single token, keeping letters,
// digits and underscores. Returns "" when nothing survives.
func CleanToken(tok string) string {
	var b strings.Builder
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// QualifiesForFrequency reports whether a cleaned token counts toward
// word-frequency statistics: purely alphabetic and longer than
// MinFrequencyLength runes.
func QualifiesForFrequency(word string) bool {
	n := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n > MinFrequencyLength
}

// FilterForFrequency keeps the tokens that qualify for word-frequency
// statistics, preserving order and multiplicity.
func FilterForFrequency(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if QualifiesForFrequency(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// SplitSentences splits the original text on runs of terminal punctuation,
// trims each piece and drops empty results.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
