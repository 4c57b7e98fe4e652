package token

import "strings"

// Similarity scoring constants. Containment is asymmetric: a query token
// found inside a longer document token is worth more than the reverse.
const (
	containsScore    = 0.85
	containedScore   = 0.75
	editSimThreshold = 0.4
)

// Similarity returns a score in [0,1] for how closely tokens a and b match.
// Exact match is 1. Substring containment (for tokens longer than three
// characters) scores a fixed value. Otherwise the normalized edit-distance
// ratio applies, with anything at or below the threshold treated as no match
// rather than a small positive score.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if len(a) > 3 && strings.Contains(b, a) {
		return containsScore
	}
	if len(b) > 3 && strings.Contains(a, b) {
		return containedScore
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	sim := 1 - float64(levenshtein(a, b))/float64(maxLen)
	if sim > editSimThreshold {
		return sim
	}
	return 0
}

// levenshtein computes the classic edit distance with unit costs for
// insertion, deletion, and substitution. Two-row DP; tokens are short so the
// O(len(a)*len(b)) cost is negligible.
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
