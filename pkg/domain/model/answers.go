package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/types"
)

// Answers are modeled as one typed struct per questionnaire step rather than
// an open key-value map, so the scorer can match on them exhaustively.
// A nil step means the step was never answered; scoring treats it as the
// baseline for that step instead of failing.

// OrgProfileAnswers is step 1 of the organization questionnaire
type OrgProfileAnswers struct {
	Industry string
	Size     types.OrgSize
	Region   string
}

// OrgAIUsageAnswers is step 2: how the organization uses AI
type OrgAIUsageAnswers struct {
	UseCases             []string
	BuildsModels         bool
	UsesThirdPartyModels bool
}

// OrgDataGovernanceAnswers is step 3: organization data handling
type OrgDataGovernanceAnswers struct {
	HandlesPersonalData bool
	Classification      types.SensitivityLevel
	RetentionPolicy     bool
}

// OrgMaturityAnswers is step 4: existing governance practices.
// Mature practices lower the aggregate risk score.
type OrgMaturityAnswers struct {
	HasAIPolicy         bool
	HasIncidentResponse bool
	TrainsStaff         bool
}

// OrgAnswers is the answer snapshot of one organization assessment
type OrgAnswers struct {
	Profile        *OrgProfileAnswers
	AIUsage        *OrgAIUsageAnswers
	DataGovernance *OrgDataGovernanceAnswers
	Maturity       *OrgMaturityAnswers
}

// Validate rejects enum values outside their defined sets. Empty values
// stand for unanswered questions and pass.
func (a *OrgAnswers) Validate() error {
	if p := a.Profile; p != nil && p.Size != "" {
		if err := p.Size.Validate(); err != nil {
			return goerr.Wrap(types.ErrInvalidInput, "invalid organization size", goerr.V("size", p.Size))
		}
	}
	if dg := a.DataGovernance; dg != nil && dg.Classification != "" {
		if err := dg.Classification.Validate(); err != nil {
			return goerr.Wrap(types.ErrInvalidInput, "invalid data classification", goerr.V("classification", dg.Classification))
		}
	}
	return nil
}

// ProductOverviewAnswers is step 1 of the product questionnaire
type ProductOverviewAnswers struct {
	Description string
	Audience    types.Audience
}

// ProductDataAnswers is step 2: what data the product touches
type ProductDataAnswers struct {
	Sensitivity       types.SensitivityLevel
	PersonalData      bool
	SpecialCategories bool
}

// ProductAutonomyAnswers is step 3: how independently the product acts
type ProductAutonomyAnswers struct {
	Level          types.AutonomyLevel
	HumanOversight bool
}

// ProductImpactAnswers is step 4: consequences for users
type ProductImpactAnswers struct {
	UserImpact       types.ImpactLevel
	VulnerableGroups bool
	LegalEffects     bool
}

// ProductRegulatoryAnswers is step 5: regulatory exposure
type ProductRegulatoryAnswers struct {
	Regimes    []string
	EUHighRisk bool
}

// ProductAnswers is the answer snapshot of one product assessment
type ProductAnswers struct {
	Overview   *ProductOverviewAnswers
	Data       *ProductDataAnswers
	Autonomy   *ProductAutonomyAnswers
	Impact     *ProductImpactAnswers
	Regulatory *ProductRegulatoryAnswers
}

// Validate rejects enum values outside their defined sets. Empty values
// stand for unanswered questions and pass.
func (a *ProductAnswers) Validate() error {
	if o := a.Overview; o != nil && o.Audience != "" {
		if err := o.Audience.Validate(); err != nil {
			return goerr.Wrap(types.ErrInvalidInput, "invalid audience", goerr.V("audience", o.Audience))
		}
	}
	if d := a.Data; d != nil && d.Sensitivity != "" {
		if err := d.Sensitivity.Validate(); err != nil {
			return goerr.Wrap(types.ErrInvalidInput, "invalid data sensitivity", goerr.V("sensitivity", d.Sensitivity))
		}
	}
	if au := a.Autonomy; au != nil && au.Level != "" {
		if err := au.Level.Validate(); err != nil {
			return goerr.Wrap(types.ErrInvalidInput, "invalid autonomy level", goerr.V("level", au.Level))
		}
	}
	if i := a.Impact; i != nil && i.UserImpact != "" {
		if err := i.UserImpact.Validate(); err != nil {
			return goerr.Wrap(types.ErrInvalidInput, "invalid user impact", goerr.V("impact", i.UserImpact))
		}
	}
	return nil
}
