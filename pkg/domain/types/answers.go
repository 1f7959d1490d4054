package types

import "github.com/m-mizutani/goerr/v2"

// SensitivityLevel is the ordinal classification of data handled by a product
type SensitivityLevel string

const (
	SensitivityPublic       SensitivityLevel = "public"
	SensitivityInternal     SensitivityLevel = "internal"
	SensitivityConfidential SensitivityLevel = "confidential"
	SensitivityRegulated    SensitivityLevel = "regulated"
)

var sensitivityOrder = map[SensitivityLevel]int{
	SensitivityPublic:       0,
	SensitivityInternal:     1,
	SensitivityConfidential: 2,
	SensitivityRegulated:    3,
}

// Validate checks if the SensitivityLevel is valid
func (l SensitivityLevel) Validate() error {
	if _, ok := sensitivityOrder[l]; !ok {
		return goerr.New("invalid sensitivity level", goerr.V("level", l))
	}
	return nil
}

// Ordinal returns the position of the level in the public..regulated ordering.
// Unknown values map to 0 so that malformed answers degrade to the baseline.
func (l SensitivityLevel) Ordinal() int {
	return sensitivityOrder[l]
}

// AutonomyLevel is how independently an AI product acts
type AutonomyLevel string

const (
	AutonomyAssistive    AutonomyLevel = "assistive"
	AutonomySuggestive   AutonomyLevel = "suggestive"
	AutonomySupervised   AutonomyLevel = "supervised"
	AutonomyFullAutonomy AutonomyLevel = "autonomous"
)

var autonomyOrder = map[AutonomyLevel]int{
	AutonomyAssistive:    0,
	AutonomySuggestive:   1,
	AutonomySupervised:   2,
	AutonomyFullAutonomy: 3,
}

// Validate checks if the AutonomyLevel is valid
func (l AutonomyLevel) Validate() error {
	if _, ok := autonomyOrder[l]; !ok {
		return goerr.New("invalid autonomy level", goerr.V("level", l))
	}
	return nil
}

// Ordinal returns the position of the level in the assistive..autonomous
// ordering. Unknown values map to 0.
func (l AutonomyLevel) Ordinal() int {
	return autonomyOrder[l]
}

// ImpactLevel is the ordinal severity of consequences a product can have
// for its users
type ImpactLevel string

const (
	ImpactMinimal     ImpactLevel = "minimal"
	ImpactModerate    ImpactLevel = "moderate"
	ImpactSignificant ImpactLevel = "significant"
	ImpactCritical    ImpactLevel = "critical"
)

var impactOrder = map[ImpactLevel]int{
	ImpactMinimal:     0,
	ImpactModerate:    1,
	ImpactSignificant: 2,
	ImpactCritical:    3,
}

// Validate checks if the ImpactLevel is valid
func (l ImpactLevel) Validate() error {
	if _, ok := impactOrder[l]; !ok {
		return goerr.New("invalid impact level", goerr.V("level", l))
	}
	return nil
}

// Ordinal returns the position of the level in the minimal..critical ordering.
// Unknown values map to 0.
func (l ImpactLevel) Ordinal() int {
	return impactOrder[l]
}

// Audience identifies who is exposed to a product
type Audience string

const (
	AudienceInternal Audience = "internal"
	AudienceExternal Audience = "external"
	AudiencePublic   Audience = "public"
)

// Validate checks if the Audience is valid
func (a Audience) Validate() error {
	switch a {
	case AudienceInternal, AudienceExternal, AudiencePublic:
		return nil
	}
	return goerr.New("invalid audience", goerr.V("audience", a))
}

// OrgSize is the rough size band of an organization
type OrgSize string

const (
	OrgSizeSmall      OrgSize = "small"
	OrgSizeMedium     OrgSize = "medium"
	OrgSizeLarge      OrgSize = "large"
	OrgSizeEnterprise OrgSize = "enterprise"
)

// Validate checks if the OrgSize is valid
func (s OrgSize) Validate() error {
	switch s {
	case OrgSizeSmall, OrgSizeMedium, OrgSizeLarge, OrgSizeEnterprise:
		return nil
	}
	return goerr.New("invalid org size", goerr.V("size", s))
}
