package model

// Tier is the qualitative quality label assigned to a final score.
// Tiers are ordered: Stub < StubPlus < Start < Advanced < Good < Featured.
type Tier int

// Quality tiers, lowest to highest.
const (
	// TierStub marks an article that is little more than a placeholder.
	TierStub Tier = iota

	// TierStubPlus marks a stub that has started to grow.
	TierStubPlus

	// TierStart marks an article with basic coverage but clear gaps.
	TierStart

	// TierAdvanced marks a reasonably developed article.
	TierAdvanced

	// TierGood marks an article close to the wiki's "good article" bar.
	TierGood

	// TierFeatured marks an article at the highest editorial standard.
	TierFeatured
)

// tierThreshold pairs a tier with the minimum total score that earns it.
type tierThreshold struct {
	tier Tier
	min  int
}

// tierThresholds is ordered by descending minimum score. TierFor walks it
// top-down and returns the first tier whose minimum the score meets.
var tierThresholds = []tierThreshold{
	{TierFeatured, 90},
	{TierGood, 80},
	{TierAdvanced, 65},
	{TierStart, 50},
	{TierStubPlus, 30},
	{TierStub, 0},
}

// TierFor maps a total score (0-100) to its quality tier.
func TierFor(total int) Tier {
	for _, t := range tierThresholds {
		if total >= t.min {
			return t.tier
		}
	}
	return TierStub
}

// String returns the tier's machine-readable label.
func (t Tier) String() string {
	switch t {
	case TierFeatured:
		return "featured"
	case TierGood:
		return "good"
	case TierAdvanced:
		return "advanced"
	case TierStart:
		return "start"
	case TierStubPlus:
		return "stub-plus"
	case TierStub:
		return "stub"
	default:
		return "unknown"
	}
}

// Label returns the tier's human-readable report label.
func (t Tier) Label() string {
	switch t {
	case TierFeatured:
		return "Featured article"
	case TierGood:
		return "Good article"
	case TierAdvanced:
		return "Advanced article"
	case TierStart:
		return "Start-class article"
	case TierStubPlus:
		return "Developed stub"
	case TierStub:
		return "Stub"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as
// their string labels in JSON reports.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so stored results
// round-trip through JSON. Unknown labels map to TierStub rather than
// erroring, so a result written by a newer version still loads.
func (t *Tier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "featured":
		*t = TierFeatured
	case "good":
		*t = TierGood
	case "advanced":
		*t = TierAdvanced
	case "start":
		*t = TierStart
	case "stub-plus":
		*t = TierStubPlus
	default:
		*t = TierStub
	}
	return nil
}
