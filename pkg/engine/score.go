package engine

import (
	"math"
	"sort"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/model/config"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// Risk tags derived from answers. They drive which catalog controls a mapped
// result pulls in.
const (
	TagPrivacy      = "privacy"
	TagAutonomy     = "autonomy"
	TagSafety       = "safety"
	TagTransparency = "transparency"
	TagRegulatory   = "regulatory"
	TagGovernance   = "governance"
)

// Scored is the output of the risk scorer: the aggregate score, the tier it
// falls into, and the risk tags derived from the answer content.
type Scored struct {
	Score int
	Tier  types.RiskTier
	Tags  []string
}

// dimensions holds the per-dimension values on a 0..100 scale before
// weighting. Maturity counts as a deduction.
type dimensions struct {
	dataSensitivity    float64
	autonomy           float64
	userImpact         float64
	regulatoryExposure float64
	maturity           float64
}

// ScoreOrg scores an organization answer snapshot. It is a pure function of
// its inputs: unanswered steps contribute their baseline, never an error.
func ScoreOrg(answers model.OrgAnswers, cfg *config.ScoringConfig) Scored {
	var d dimensions
	tags := map[string]bool{TagGovernance: true}

	if dg := answers.DataGovernance; dg != nil {
		d.dataSensitivity = ordinalScale(dg.Classification.Ordinal())
		if dg.HandlesPersonalData {
			d.dataSensitivity = clamp(d.dataSensitivity + 10)
			d.regulatoryExposure += 50
			tags[TagPrivacy] = true
		}
		if !dg.RetentionPolicy {
			d.regulatoryExposure += 20
		}
		if dg.Classification.Ordinal() >= types.SensitivityConfidential.Ordinal() {
			tags[TagPrivacy] = true
		}
	}

	if u := answers.AIUsage; u != nil {
		switch {
		case u.BuildsModels:
			d.autonomy = 70
		case u.UsesThirdPartyModels:
			d.autonomy = 40
		default:
			d.autonomy = 10
		}
		d.autonomy = clamp(d.autonomy + float64(len(u.UseCases))*5)
		if d.autonomy >= 50 {
			tags[TagAutonomy] = true
		}
		if u.UsesThirdPartyModels {
			tags[TagTransparency] = true
		}
	}

	if p := answers.Profile; p != nil {
		switch p.Size {
		case types.OrgSizeSmall:
			d.userImpact = 25
		case types.OrgSizeMedium:
			d.userImpact = 50
		case types.OrgSizeLarge:
			d.userImpact = 75
		case types.OrgSizeEnterprise:
			d.userImpact = 100
		}
	}

	if m := answers.Maturity; m != nil {
		credit := 0
		if m.HasAIPolicy {
			credit++
		}
		if m.HasIncidentResponse {
			credit++
		}
		if m.TrainsStaff {
			credit++
		}
		d.maturity = float64(credit) / 3 * 100
	}

	d.regulatoryExposure = clamp(d.regulatoryExposure)
	if d.regulatoryExposure >= 50 {
		tags[TagRegulatory] = true
	}

	return finalize(d, tags, cfg)
}

// ScoreProduct scores a product answer snapshot. Organization answers feed
// the maturity deduction so that a well-governed org lowers product risk.
func ScoreProduct(org model.OrgAnswers, product model.ProductAnswers, cfg *config.ScoringConfig) Scored {
	var d dimensions
	tags := map[string]bool{}

	if data := product.Data; data != nil {
		d.dataSensitivity = ordinalScale(data.Sensitivity.Ordinal())
		if data.PersonalData {
			d.dataSensitivity = clamp(d.dataSensitivity + 10)
			tags[TagPrivacy] = true
		}
		if data.SpecialCategories {
			d.dataSensitivity = clamp(d.dataSensitivity + 20)
			tags[TagPrivacy] = true
		}
		if data.Sensitivity.Ordinal() >= types.SensitivityConfidential.Ordinal() {
			tags[TagPrivacy] = true
		}
	}

	if a := product.Autonomy; a != nil {
		d.autonomy = ordinalScale(a.Level.Ordinal())
		if !a.HumanOversight {
			d.autonomy = clamp(d.autonomy + 15)
			tags[TagAutonomy] = true
		}
		if a.Level.Ordinal() >= types.AutonomySupervised.Ordinal() {
			tags[TagAutonomy] = true
		}
		if a.Level.Ordinal() >= types.AutonomySuggestive.Ordinal() {
			tags[TagTransparency] = true
		}
	}

	if i := product.Impact; i != nil {
		d.userImpact = ordinalScale(i.UserImpact.Ordinal())
		if i.VulnerableGroups {
			d.userImpact = clamp(d.userImpact + 10)
			tags[TagSafety] = true
		}
		if i.LegalEffects {
			d.userImpact = clamp(d.userImpact + 15)
			tags[TagRegulatory] = true
		}
		if i.UserImpact.Ordinal() >= types.ImpactSignificant.Ordinal() {
			tags[TagSafety] = true
		}
	}

	if o := product.Overview; o != nil {
		if o.Audience == types.AudienceExternal || o.Audience == types.AudiencePublic {
			d.userImpact = clamp(d.userImpact + 10)
			tags[TagTransparency] = true
		}
	}

	if r := product.Regulatory; r != nil {
		d.regulatoryExposure = math.Min(float64(len(r.Regimes))*25, 75)
		if r.EUHighRisk {
			d.regulatoryExposure = clamp(d.regulatoryExposure + 25)
		}
		if len(r.Regimes) > 0 || r.EUHighRisk {
			tags[TagRegulatory] = true
		}
	}

	if m := org.Maturity; m != nil {
		credit := 0
		if m.HasAIPolicy {
			credit++
		}
		if m.HasIncidentResponse {
			credit++
		}
		if m.TrainsStaff {
			credit++
		}
		d.maturity = float64(credit) / 3 * 100
	}
	if len(tags) == 0 {
		tags[TagGovernance] = true
	}

	return finalize(d, tags, cfg)
}

// TierOf maps a 0..100 score onto a tier. Thresholds are inclusive on the
// lower side: a score exactly at a boundary belongs to the higher tier.
func TierOf(score int, t config.TierThresholds) types.RiskTier {
	switch {
	case score >= t.Regulated:
		return types.RiskTierRegulated
	case score >= t.High:
		return types.RiskTierHigh
	case score >= t.Medium:
		return types.RiskTierMedium
	default:
		return types.RiskTierLow
	}
}

func finalize(d dimensions, tags map[string]bool, cfg *config.ScoringConfig) Scored {
	w := cfg.Weights
	weightSum := w.DataSensitivity + w.Autonomy + w.UserImpact + w.RegulatoryExposure
	weighted := w.DataSensitivity*d.dataSensitivity +
		w.Autonomy*d.autonomy +
		w.UserImpact*d.userImpact +
		w.RegulatoryExposure*d.regulatoryExposure -
		w.Maturity*d.maturity
	score := int(math.Round(clamp(weighted / weightSum)))

	sorted := make([]string, 0, len(tags))
	for tag := range tags {
		sorted = append(sorted, tag)
	}
	sort.Strings(sorted)

	return Scored{
		Score: score,
		Tier:  TierOf(score, cfg.Thresholds),
		Tags:  sorted,
	}
}

// ordinalScale maps a 0..3 ordinal onto the 0..100 scale
func ordinalScale(ordinal int) float64 {
	return float64(ordinal) / 3 * 100
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
