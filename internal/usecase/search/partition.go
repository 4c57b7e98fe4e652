package search

// Partition is the two-tier split of the ranked candidates. Totals count the
// full tier before truncation so callers can detect "more available".
type Partition struct {
	Primary      []Scored
	Extras       []Scored
	TotalPrimary int
	TotalExtras  int
	PrimaryLimit int
	ExtrasLimit  int
}

// partitionRanked classifies each already-sorted candidate as primary or
// extras and applies the independent size caps.
func partitionRanked(ranked []Scored, limit int, pol Policy) Partition {
	var primary, extras []Scored
	for _, entry := range ranked {
		if isPrimary(&entry, pol) {
			primary = append(primary, entry)
		} else {
			extras = append(extras, entry)
		}
	}

	part := Partition{
		TotalPrimary: len(primary),
		TotalExtras:  len(extras),
		PrimaryLimit: limit,
		ExtrasLimit:  pol.SecondaryLimit,
	}
	if len(primary) > limit {
		primary = primary[:limit]
	}
	if len(extras) > pol.SecondaryLimit {
		extras = extras[:pol.SecondaryLimit]
	}
	part.Primary = primary
	part.Extras = extras
	return part
}

// isPrimary applies the confidence rules in order: strong similarity alone,
// the similarity+score pair, a boost-dominated score, or a strong-field
// overlap with moderate similarity and a real boost.
func isPrimary(s *Scored, pol Policy) bool {
	if s.Similarity >= pol.PrimarySimilarity {
		return true
	}
	if s.Similarity >= pol.PrimaryPairSimilarity && s.Score >= pol.PrimaryPairScore {
		return true
	}
	if s.Score >= pol.PrimaryScore {
		return true
	}
	if hasStrongField(s.MatchSummary) &&
		s.Similarity >= pol.StrongFieldSimilarity &&
		s.Boost >= pol.StrongFieldBoost {
		return true
	}
	return false
}

func hasStrongField(summary []string) bool {
	for _, field := range summary {
		if _, ok := strongFields[field]; ok {
			return true
		}
	}
	return false
}
