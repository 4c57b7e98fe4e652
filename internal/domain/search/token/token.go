// Package token implements the lexical primitives of product search:
// normalization, stop-word removal, suffix stemming, synonym expansion, and
// pairwise token similarity. All lookup tables are process-wide and immutable
// after package init, so every function here is safe for concurrent use.
package token

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Set is a deduplicated collection of normalized tokens. Insertion order is
// never semantically meaningful; membership and overlap are what matter.
type Set map[string]struct{}

// NewSet creates a Set from the given tokens.
func NewSet(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add inserts a token. Empty strings are ignored.
func (s Set) Add(t string) {
	if t != "" {
		s[t] = struct{}{}
	}
}

// AddAll inserts every token from other.
func (s Set) AddAll(other Set) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Has reports membership.
func (s Set) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// Len returns the number of distinct tokens.
func (s Set) Len() int { return len(s) }

// Values returns the tokens in sorted order for deterministic output.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// stopWords are dropped during tokenization.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "for": {}, "by": {}, "with": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "this": {}, "that": {}, "those": {}, "these": {},
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Tokenize turns free text into normalized tokens: lowercase, NFKD
// normalization, punctuation replaced by spaces, split on whitespace runs,
// stop words dropped. Any input yields a (possibly empty) token list, never
// an error.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	normalized := norm.NFKD.String(strings.ToLower(text))
	cleaned := nonWord.ReplaceAllString(normalized, " ")

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, t := range fields {
		if _, stop := stopWords[t]; !stop {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// BuildSet tokenizes every part and expands each token into its equivalence
// class (token + stem + synonyms), collecting everything into one Set.
func BuildSet(parts ...string) Set {
	set := Set{}
	for _, part := range parts {
		for _, t := range Tokenize(part) {
			set.AddAll(Expand(t))
		}
	}
	return set
}
