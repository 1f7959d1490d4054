package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/types"
)

// CoverageStatus describes how well mapped controls cover a taxonomy node
type CoverageStatus string

const (
	CoverageCovered CoverageStatus = "covered"
	CoveragePartial CoverageStatus = "partial"
	CoverageGap     CoverageStatus = "gap"
)

// BlueprintSubcategory is the coverage of one taxonomy leaf
type BlueprintSubcategory struct {
	Code       string
	Name       string
	Status     CoverageStatus
	ControlIDs []types.ControlID
}

// BlueprintCategory aggregates subcategory coverage
type BlueprintCategory struct {
	Code          string
	Name          string
	Status        CoverageStatus
	Subcategories []BlueprintSubcategory
}

// BlueprintFunction aggregates category coverage for a top-level function
type BlueprintFunction struct {
	Code       string
	Name       string
	Status     CoverageStatus
	Categories []BlueprintCategory
}

// Blueprint is the governance blueprint: the full taxonomy annotated with
// coverage by the mapped controls. It carries no timestamps; those belong to
// the audit trail.
type Blueprint struct {
	Functions []BlueprintFunction
}

// PolicyDraft is a skeletal policy document keyed to one governance concern
type PolicyDraft struct {
	Key   string // taxonomy function code the draft addresses
	Title string
	Body  string
}

// ChecklistItem is one actionable step derived from a mapped control
type ChecklistItem struct {
	ControlID types.ControlID
	Title     string
	Done      bool
}

// ChecklistPhase is an ordered group of checklist items
type ChecklistPhase struct {
	Key   string // "immediate", "short-term", "ongoing"
	Title string
	Items []ChecklistItem
}

// Checklist is the implementation checklist of a result. It is the only part
// of a result that can be replaced without a recompute.
type Checklist struct {
	Phases []ChecklistPhase
}

// Validate rejects malformed checklist payloads before any store mutation
func (c *Checklist) Validate() error {
	if len(c.Phases) == 0 {
		return goerr.Wrap(types.ErrInvalidInput, "checklist must contain at least one phase")
	}
	for i, phase := range c.Phases {
		if phase.Key == "" {
			return goerr.Wrap(types.ErrInvalidInput, "checklist phase key is required", goerr.V("index", i))
		}
		for j, item := range phase.Items {
			if item.Title == "" {
				return goerr.Wrap(types.ErrInvalidInput, "checklist item title is required",
					goerr.V("phase", phase.Key), goerr.V("index", j))
			}
		}
	}
	return nil
}

// AssessmentResult is the single derived record of an assessment. It is
// created or wholesale replaced by a recompute; only the checklist can be
// patched independently.
type AssessmentResult struct {
	EntityType   types.AuditEntityType
	EntityID     string
	RiskScore    int // 0..100
	RiskTier     types.RiskTier
	ControlIDs   []types.ControlID
	Blueprint    Blueprint
	PolicyDrafts []PolicyDraft
	Checklist    Checklist
	ComputedAt   time.Time // storage metadata, not artifact content
}
