package config

import "github.com/m-mizutani/goerr/v2"

// DimensionWeights are the relative weights of the risk dimensions. Each
// dimension contributes its ordinal position (normalized to 0..100) times its
// weight; maturity contributes as a deduction.
type DimensionWeights struct {
	DataSensitivity    float64
	Autonomy           float64
	UserImpact         float64
	RegulatoryExposure float64
	Maturity           float64
}

// TierThresholds map a 0..100 score onto risk tiers. Boundaries are
// inclusive on the lower side: score >= Regulated is REGULATED,
// score >= High is HIGH, score >= Medium is MEDIUM, else LOW.
type TierThresholds struct {
	Medium    int
	High      int
	Regulated int
}

// ScoringConfig is the pluggable policy table of the risk scorer. The scorer
// itself never changes when the table does.
type ScoringConfig struct {
	Weights    DimensionWeights
	Thresholds TierThresholds
}

// Validate checks weights and threshold ordering
func (c *ScoringConfig) Validate() error {
	w := c.Weights
	if w.DataSensitivity < 0 || w.Autonomy < 0 || w.UserImpact < 0 || w.RegulatoryExposure < 0 || w.Maturity < 0 {
		return goerr.New("dimension weights must be non-negative")
	}
	if w.DataSensitivity+w.Autonomy+w.UserImpact+w.RegulatoryExposure == 0 {
		return goerr.New("at least one risk dimension must carry weight")
	}
	t := c.Thresholds
	if t.Medium <= 0 || t.Medium >= t.High || t.High >= t.Regulated || t.Regulated > 100 {
		return goerr.New("tier thresholds must satisfy 0 < medium < high < regulated <= 100",
			goerr.V("medium", t.Medium), goerr.V("high", t.High), goerr.V("regulated", t.Regulated))
	}
	return nil
}
