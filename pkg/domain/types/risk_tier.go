package types

import "github.com/m-mizutani/goerr/v2"

// RiskTier is the discrete risk classification of an assessment.
// Tiers are strictly ordered: LOW < MEDIUM < HIGH < REGULATED.
type RiskTier string

const (
	RiskTierLow       RiskTier = "LOW"
	RiskTierMedium    RiskTier = "MEDIUM"
	RiskTierHigh      RiskTier = "HIGH"
	RiskTierRegulated RiskTier = "REGULATED"
)

var riskTierOrder = map[RiskTier]int{
	RiskTierLow:       0,
	RiskTierMedium:    1,
	RiskTierHigh:      2,
	RiskTierRegulated: 3,
}

// Validate checks if the RiskTier is one of the defined tiers
func (t RiskTier) Validate() error {
	if _, ok := riskTierOrder[t]; !ok {
		return goerr.New("invalid risk tier", goerr.V("tier", t))
	}
	return nil
}

// Order returns the position of the tier in the LOW..REGULATED ordering.
// Unknown tiers sort before LOW.
func (t RiskTier) Order() int {
	if o, ok := riskTierOrder[t]; ok {
		return o
	}
	return -1
}

// AtLeast reports whether t is equal to or stricter than other
func (t RiskTier) AtLeast(other RiskTier) bool {
	return t.Order() >= other.Order()
}

// String returns the string representation of RiskTier
func (t RiskTier) String() string {
	return string(t)
}
