package main

import (
	"math/rand"
	"strings"
	"unicode"
)

var commonWords = []string{
	"the", "to", "and", "of", "a", "in", "is", "that", "for", "it",
	"with", "as", "was", "on", "be", "at", "by", "this", "have", "from",
}

var suspiciousWords = []string{
	"conspiracy", "shocking", "secret", "they", "them", "cover-up",
	"revealed", "truth", "exposed", "incredible",
}

var fillerWords = []string{
	"absolutely", "definitely", "certainly", "obviously", "clearly",
}

// generateArticle builds a synthetic article. Unreliable articles get
// erratic sentence lengths, occasional suspicious vocabulary, and often an
// excessively repeated filler word; reliable ones stay close to
// journalistic sentence lengths.
func generateArticle(rng *rand.Rand, unreliable bool) string {
	sentenceCount := 20 + rng.Intn(31)
	sentences := make([]string, 0, sentenceCount)

	for i := 0; i < sentenceCount; i++ {
		var length int
		if unreliable {
			if rng.Float64() < 0.5 {
				length = 3 + rng.Intn(8)
			} else {
				length = 30 + rng.Intn(21)
			}
		} else {
			length = 12 + rng.Intn(14)
		}

		words := make([]string, 0, length)
		for j := 0; j < length; j++ {
			switch {
			case unreliable && rng.Float64() < 0.1:
				words = append(words, suspiciousWords[rng.Intn(len(suspiciousWords))])
			case rng.Float64() < 0.7:
				words = append(words, commonWords[rng.Intn(len(commonWords))])
			default:
				words = append(words, randomWord(rng))
			}
		}

		words[0] = capitalize(words[0])
		sentences = append(sentences, strings.Join(words, " ")+".")
	}

	if unreliable && rng.Float64() < 0.7 {
		repeat := fillerWords[rng.Intn(len(fillerWords))]
		insertions := 10 + rng.Intn(11)
		for i := 0; i < insertions; i++ {
			idx := rng.Intn(len(sentences))
			words := strings.Fields(sentences[idx])
			pos := rng.Intn(len(words))
			words = append(words[:pos], append([]string{repeat}, words[pos:]...)...)
			sentences[idx] = strings.Join(words, " ")
		}
	}

	return strings.Join(sentences, "\n\n")
}

func randomWord(rng *rand.Rand) string {
	length := 4 + rng.Intn(7)
	b := make([]byte, length)
	for i := range b {
		b[i] = byte('a' + rng.Intn(26))
	}
	return string(b)
}

func capitalize(w string) string {
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
