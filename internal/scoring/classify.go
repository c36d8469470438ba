package scoring

import "sort"

// RiskLevel is the ordinal risk tier: low < medium < high.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// rank orders risk levels for comparisons; unknown levels sort last.
func (l RiskLevel) rank() int {
	switch l {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	}
	return 3
}

// Threshold is one classification band. The configured set must partition
// [ScoreFloor, ScoreCeiling] into contiguous bands ordered by MinScore.
type Threshold struct {
	Level             RiskLevel `json:"level"`
	Label             string    `json:"label"`
	MinScore          float64   `json:"min_score"`
	MaxScore          float64   `json:"max_score"`
	SupervisionPeriod string    `json:"supervision_period"`
}

// Global score domain. The lowest band's floor and the highest band's
// ceiling are pinned to these and are not independently editable.
const (
	ScoreFloor   = 0
	ScoreCeiling = 100
)

// Classify maps a score onto its risk band. A score always resolves to
// exactly one band: out-of-domain scores clamp to the nearest boundary
// band instead of failing. Thresholds are assumed validated; they are
// sorted defensively so callers may pass them in storage order.
func Classify(score float64, thresholds []Threshold) Threshold {
	if len(thresholds) == 0 {
		return Threshold{}
	}

	sorted := make([]Threshold, len(thresholds))
	copy(sorted, thresholds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinScore < sorted[j].MinScore })

	if score < sorted[0].MinScore {
		return sorted[0]
	}
	for _, t := range sorted {
		if score >= t.MinScore && score <= t.MaxScore {
			return t
		}
	}
	return sorted[len(sorted)-1]
}

// ValidateThresholds enforces the configuration invariant before save:
// sorted by MinScore the bands must be internally ordered, contiguous and
// non-overlapping, cover exactly [ScoreFloor, ScoreCeiling], and climb
// through the risk levels in order. Any violation rejects the whole set.
func ValidateThresholds(thresholds []Threshold) error {
	if len(thresholds) == 0 {
		return configErrorf("at least one threshold is required")
	}

	sorted := make([]Threshold, len(thresholds))
	copy(sorted, thresholds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinScore < sorted[j].MinScore })

	for _, t := range sorted {
		if t.MaxScore < t.MinScore {
			return configErrorf("threshold %q has max score %v below min score %v", t.Label, t.MaxScore, t.MinScore)
		}
	}

	if sorted[0].MinScore != ScoreFloor {
		return configErrorf("lowest threshold must start at %d, got %v", ScoreFloor, sorted[0].MinScore)
	}
	if sorted[len(sorted)-1].MaxScore != ScoreCeiling {
		return configErrorf("highest threshold must end at %d, got %v", ScoreCeiling, sorted[len(sorted)-1].MaxScore)
	}

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.MinScore < prev.MaxScore {
			return configErrorf("thresholds %q and %q overlap (%v < %v)", prev.Label, cur.Label, cur.MinScore, prev.MaxScore)
		}
		if cur.MinScore > prev.MaxScore {
			return configErrorf("gap between thresholds %q and %q (%v to %v)", prev.Label, cur.Label, prev.MaxScore, cur.MinScore)
		}
		if cur.Level.rank() <= prev.Level.rank() {
			return configErrorf("threshold levels must increase with score, %q does not follow %q", cur.Level, prev.Level)
		}
	}

	return nil
}
