package search

// Policy is the ranking threshold and boost table. The default values are
// hand-tuned; they materially change recall/precision behavior, so they are
// configurable but should not be altered casually.
type Policy struct {
	// SecondaryFloor discards candidates scoring below it as noise.
	SecondaryFloor float64
	// SecondaryLimit caps the extras tier.
	SecondaryLimit int

	// Primary classification thresholds.
	PrimarySimilarity     float64 // similarity alone qualifies
	PrimaryPairSimilarity float64 // similarity half of the pair rule
	PrimaryPairScore      float64 // score half of the pair rule
	PrimaryScore          float64 // score alone qualifies (boost-dominated)
	StrongFieldSimilarity float64 // similarity floor for the strong-field rule
	StrongFieldBoost      float64 // boost floor for the strong-field rule

	// OverlapSimilarity is the pairwise threshold for "semantic overlap"
	// used by boosts and the match summary.
	OverlapSimilarity float64

	// Boost weights.
	TagBoost               float64
	CategoryBoost          float64
	BrandBoost             float64
	VariantMatchSimilarity float64 // pair threshold for counting variant matches
	VariantBoostStep       float64 // per-pair increment
	VariantBoostCap        float64 // variant boost ceiling
	ExactTagBoost          float64
}

// DefaultPolicy returns the production ranking policy.
func DefaultPolicy() Policy {
	return Policy{
		SecondaryFloor:        0.15,
		SecondaryLimit:        10,
		PrimarySimilarity:     0.65,
		PrimaryPairSimilarity: 0.35,
		PrimaryPairScore:      0.45,
		PrimaryScore:          0.55,
		StrongFieldSimilarity: 0.315,
		StrongFieldBoost:      0.1,
		OverlapSimilarity:     0.75,

		TagBoost:               0.12,
		CategoryBoost:          0.08,
		BrandBoost:             0.06,
		VariantMatchSimilarity: 0.8,
		VariantBoostStep:       0.05,
		VariantBoostCap:        0.20,
		ExactTagBoost:          0.05,
	}
}
