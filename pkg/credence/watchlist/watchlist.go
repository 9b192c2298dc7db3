// Package watchlist manages the suspicious-term list supplied by an
// external source and matches it against document tokens.
package watchlist

import "strings"

// builtinTerms is the minimal fallback used when no external list could
// be loaded. Degraded mode, not a hard failure.
var builtinTerms = []string{
	"conspiracy", "shocking", "secret", "hoax", "fraud",
	"fake news", "cover-up", "exposed", "truth revealed",
}

// List is an ordered, lower-cased suspicious-term list, read-only after
// construction.
type List struct {
	terms    []string
	degraded bool
}

// New builds a list from externally supplied terms, preserving order.
func New(terms []string) *List {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return &List{terms: out}
}

// Builtin returns the hardcoded fallback list.
func Builtin() *List {
	return &List{terms: builtinTerms, degraded: true}
}

// Terms returns the ordered term list.
func (l *List) Terms() []string { return l.terms }

// Degraded reports whether this is the builtin fallback list.
func (l *List) Degraded() bool { return l.degraded }

// FindIn returns the terms that appear as a substring of any token,
// case-insensitive. Substring matching is deliberate: it catches
// "shockingly" for "shocking". Tokens are expected lower-cased already;
// matching lower-cases defensively anyway.
func (l *List) FindIn(tokens []string) []string {
	var found []string
	for _, term := range l.terms {
		for _, tok := range tokens {
			if strings.Contains(strings.ToLower(tok), term) {
				found = append(found, term)
				break
			}
		}
	}
	return found
}
