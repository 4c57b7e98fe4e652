package token

import "strings"

// synonymGroups are fixed sets of interchangeable retail terms. Groups are
// symmetric and non-overlapping: a word belongs to at most one group.
var synonymGroups = [][]string{
	{"phone", "mobile", "smartphone", "cellphone", "handset"},
	{"laptop", "notebook", "computer", "macbook", "ultrabook"},
	{"tv", "television", "smarttv", "smart-tv"},
	{"shoe", "shoes", "sneaker", "sneakers", "footwear"},
	{"dress", "gown", "apparel", "clothing", "outfit"},
	{"bag", "backpack", "handbag", "satchel", "tote"},
	{"watch", "timepiece", "smartwatch", "wristwatch"},
	{"earphone", "earphones", "earbud", "earbuds", "headphone", "headphones"},
	{"camera", "dslr", "mirrorless"},
	{"fridge", "refrigerator", "cooler"},
	{"ac", "airconditioner", "air-conditioner"},
	{"washer", "washingmachine", "laundry"},
}

// synonymLookup is the reverse index word -> siblings, built once at init.
var synonymLookup = buildSynonymLookup(synonymGroups)

func buildSynonymLookup(groups [][]string) map[string][]string {
	lookup := make(map[string][]string)
	for _, group := range groups {
		for _, word := range group {
			siblings := make([]string, 0, len(group)-1)
			for _, candidate := range group {
				if candidate != word {
					siblings = append(siblings, candidate)
				}
			}
			lookup[word] = append(lookup[word], siblings...)
		}
	}
	return lookup
}

// stemSuffixes are tried in priority order; the first suffix whose removal
// leaves a stem of at least three characters wins.
var stemSuffixes = []string{"ing", "ers", "er", "ies", "ied", "s"}

// Stem strips a single common suffix from tokens longer than three
// characters. A crude heuristic, not a linguistic stemmer: false stems are
// tolerated because matching is fuzzy downstream.
func Stem(t string) string {
	if len(t) <= 3 {
		return t
	}
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(t, suffix) {
			stem := t[:len(t)-len(suffix)]
			if len(stem) >= 3 {
				return stem
			}
		}
	}
	return t
}

// Expand returns the tokens treated as equivalent to t for matching: t
// itself, its stem, and any synonym-group siblings.
func Expand(t string) Set {
	expansions := NewSet(t)
	if stem := Stem(t); stem != t {
		expansions.Add(stem)
	}
	for _, synonym := range synonymLookup[t] {
		expansions.Add(synonym)
	}
	return expansions
}
