package engine

import (
	"fmt"
	"strings"

	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// GenerateInput carries everything the artifact generator needs. The
// generator is pure: identical input yields an identical result, and no
// wall-clock content leaks into the artifacts.
type GenerateInput struct {
	EntityType types.AuditEntityType
	EntityID   string
	Subject    string // organization or product name, used in draft text
	Scored     Scored
	Controls   []*model.Control
	Catalog    *catalog.Catalog
}

// Generate composes the full derived result: governance blueprint, policy
// drafts for gap functions, and the initial implementation checklist.
// ComputedAt is left zero; it is storage metadata set at persist time.
func Generate(in GenerateInput) *model.AssessmentResult {
	blueprint := buildBlueprint(in.Controls, in.Catalog)

	controlIDs := make([]types.ControlID, len(in.Controls))
	for i, ctrl := range in.Controls {
		controlIDs[i] = ctrl.ID
	}

	return &model.AssessmentResult{
		EntityType:   in.EntityType,
		EntityID:     in.EntityID,
		RiskScore:    in.Scored.Score,
		RiskTier:     in.Scored.Tier,
		ControlIDs:   controlIDs,
		Blueprint:    blueprint,
		PolicyDrafts: buildPolicyDrafts(in.Subject, in.Scored.Tier, blueprint),
		Checklist:    buildChecklist(in.Controls),
	}
}

// buildBlueprint annotates the whole taxonomy with coverage by the mapped
// controls. A subcategory is covered when at least one applicable control
// references it; categories and functions aggregate their children.
func buildBlueprint(controls []*model.Control, cat *catalog.Catalog) model.Blueprint {
	refs := make(map[string][]types.ControlID)
	for _, ctrl := range controls {
		for _, ref := range ctrl.Refs {
			refs[ref] = append(refs[ref], ctrl.ID)
		}
	}

	functions := cat.Functions()
	out := model.Blueprint{Functions: make([]model.BlueprintFunction, 0, len(functions))}
	for _, fn := range functions {
		bf := model.BlueprintFunction{
			Code:       fn.Code,
			Name:       fn.Name,
			Categories: make([]model.BlueprintCategory, 0, len(fn.Categories)),
		}
		for _, tc := range fn.Categories {
			bc := model.BlueprintCategory{
				Code:          tc.Code,
				Name:          tc.Name,
				Subcategories: make([]model.BlueprintSubcategory, 0, len(tc.Subcategories)),
			}
			covered := 0
			for _, sub := range tc.Subcategories {
				bs := model.BlueprintSubcategory{
					Code:       sub.Code,
					Name:       sub.Name,
					Status:     model.CoverageGap,
					ControlIDs: refs[sub.Code],
				}
				if len(bs.ControlIDs) > 0 {
					bs.Status = model.CoverageCovered
					covered++
				}
				bc.Subcategories = append(bc.Subcategories, bs)
			}
			bc.Status = aggregateStatus(covered, len(bc.Subcategories))
			bf.Categories = append(bf.Categories, bc)
		}
		bf.Status = aggregateFunctionStatus(bf.Categories)
		out.Functions = append(out.Functions, bf)
	}
	return out
}

func aggregateStatus(covered, total int) model.CoverageStatus {
	switch {
	case total == 0 || covered == 0:
		return model.CoverageGap
	case covered == total:
		return model.CoverageCovered
	default:
		return model.CoveragePartial
	}
}

func aggregateFunctionStatus(categories []model.BlueprintCategory) model.CoverageStatus {
	if len(categories) == 0 {
		return model.CoverageGap
	}
	covered, gaps := 0, 0
	for _, cat := range categories {
		switch cat.Status {
		case model.CoverageCovered:
			covered++
		case model.CoverageGap:
			gaps++
		}
	}
	switch {
	case covered == len(categories):
		return model.CoverageCovered
	case gaps == len(categories):
		return model.CoverageGap
	default:
		return model.CoveragePartial
	}
}

// buildPolicyDrafts emits one skeletal draft per taxonomy function that is
// not fully covered, in taxonomy order. Drafts are boilerplate text
// parameterized by assessment facts, not an authoring subsystem.
func buildPolicyDrafts(subject string, tier types.RiskTier, blueprint model.Blueprint) []model.PolicyDraft {
	drafts := make([]model.PolicyDraft, 0, len(blueprint.Functions))
	for _, fn := range blueprint.Functions {
		if fn.Status == model.CoverageCovered {
			continue
		}

		gaps := make([]string, 0, len(fn.Categories))
		for _, cat := range fn.Categories {
			if cat.Status != model.CoverageCovered {
				gaps = append(gaps, fmt.Sprintf("%s (%s)", cat.Name, cat.Code))
			}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "# %s Policy for %s\n\n", fn.Name, subject)
		fmt.Fprintf(&b, "This assessment was classified at the %s risk tier. ", tier)
		fmt.Fprintf(&b, "The following %s areas require attention:\n\n", fn.Name)
		for _, gap := range gaps {
			fmt.Fprintf(&b, "- %s\n", gap)
		}
		b.WriteString("\nDefine ownership, review cadence, and acceptance criteria for each area above.\n")

		drafts = append(drafts, model.PolicyDraft{
			Key:   fn.Code,
			Title: fmt.Sprintf("%s Policy", fn.Name),
			Body:  b.String(),
		})
	}
	return drafts
}

var checklistPhases = []struct {
	key   string
	title string
	level types.ControlLevel
}{
	{key: "immediate", title: "Immediate", level: types.LevelFoundational},
	{key: "short-term", title: "Short-term", level: types.LevelIntermediate},
	{key: "ongoing", title: "Ongoing", level: types.LevelAdvanced},
}

// buildChecklist groups mapped controls into implementation phases by their
// level. Every item starts incomplete. All three phases are always present
// so that checklist patches keep a stable shape.
func buildChecklist(controls []*model.Control) model.Checklist {
	checklist := model.Checklist{Phases: make([]model.ChecklistPhase, 0, len(checklistPhases))}
	for _, phase := range checklistPhases {
		p := model.ChecklistPhase{Key: phase.key, Title: phase.title}
		for _, ctrl := range controls {
			if ctrl.Level != phase.level {
				continue
			}
			p.Items = append(p.Items, model.ChecklistItem{
				ControlID: ctrl.ID,
				Title:     ctrl.Name,
			})
		}
		checklist.Phases = append(checklist.Phases, p)
	}
	return checklist
}
