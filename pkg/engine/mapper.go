package engine

import (
	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// MaxLevelForTier decides how deep into the catalog's implementation levels
// a tier reaches: low-risk assessments get foundational controls only, high
// and regulated tiers pull in the advanced set as well.
func MaxLevelForTier(tier types.RiskTier) types.ControlLevel {
	switch tier {
	case types.RiskTierLow:
		return types.LevelFoundational
	case types.RiskTierMedium:
		return types.LevelIntermediate
	default:
		return types.LevelAdvanced
	}
}

// MapControls selects the controls applicable to a scored assessment:
// scope must match (BOTH matches either side), implementation level is
// bounded by the tier, and the control must share at least one derived risk
// tag. Output is ordered by control ID ascending.
func MapControls(scope types.ControlScope, scored Scored, cat *catalog.Catalog) []*model.Control {
	return cat.Controls(catalog.ControlFilter{
		Scope:    scope,
		MaxLevel: MaxLevelForTier(scored.Tier),
		RiskTags: scored.Tags,
	})
}
