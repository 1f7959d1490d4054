package catalog

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// Catalog is the read-only governance reference data: the three-level
// taxonomy and the control catalog. It is built once at process start and
// passed explicitly into the scorer and mapper so they stay pure.
type Catalog struct {
	functions     []model.TaxonomyFunction
	controls      []*model.Control
	controlByID   map[types.ControlID]*model.Control
	subcategories map[string]model.TaxonomySubcategory
}

// New validates the reference data, orders it by sort keys and control IDs,
// and indexes cross references. Controls referencing unknown taxonomy
// subcategories are rejected.
func New(functions []model.TaxonomyFunction, controls []*model.Control) (*Catalog, error) {
	c := &Catalog{
		functions:     make([]model.TaxonomyFunction, len(functions)),
		controls:      make([]*model.Control, 0, len(controls)),
		controlByID:   make(map[types.ControlID]*model.Control, len(controls)),
		subcategories: make(map[string]model.TaxonomySubcategory),
	}
	copy(c.functions, functions)

	seen := make(map[string]bool)
	for i := range c.functions {
		fn := &c.functions[i]
		if err := fn.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid taxonomy function")
		}
		if seen[fn.Code] {
			return nil, goerr.New("duplicate taxonomy function code", goerr.V("code", fn.Code))
		}
		seen[fn.Code] = true

		for j := range fn.Categories {
			cat := &fn.Categories[j]
			if seen[cat.Code] {
				return nil, goerr.New("duplicate taxonomy category code", goerr.V("code", cat.Code))
			}
			seen[cat.Code] = true
			for _, sub := range cat.Subcategories {
				if seen[sub.Code] {
					return nil, goerr.New("duplicate taxonomy subcategory code", goerr.V("code", sub.Code))
				}
				seen[sub.Code] = true
				c.subcategories[sub.Code] = sub
			}
			sort.SliceStable(cat.Subcategories, func(a, b int) bool {
				return cat.Subcategories[a].SortKey < cat.Subcategories[b].SortKey
			})
		}
		sort.SliceStable(fn.Categories, func(a, b int) bool {
			return fn.Categories[a].SortKey < fn.Categories[b].SortKey
		})
	}
	sort.SliceStable(c.functions, func(a, b int) bool {
		return c.functions[a].SortKey < c.functions[b].SortKey
	})

	for _, ctrl := range controls {
		if err := ctrl.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid control")
		}
		if _, exists := c.controlByID[ctrl.ID]; exists {
			return nil, goerr.New("duplicate control ID", goerr.V("id", ctrl.ID))
		}
		for _, ref := range ctrl.Refs {
			if _, ok := c.subcategories[ref]; !ok {
				return nil, goerr.New("control references unknown taxonomy subcategory",
					goerr.V("id", ctrl.ID), goerr.V("ref", ref))
			}
		}
		c.controlByID[ctrl.ID] = ctrl
		c.controls = append(c.controls, ctrl)
	}
	sort.Slice(c.controls, func(a, b int) bool {
		return c.controls[a].ID < c.controls[b].ID
	})

	return c, nil
}

// Functions returns the ordered taxonomy. The returned slice is shared
// reference data and must not be modified.
func (c *Catalog) Functions() []model.TaxonomyFunction {
	return c.functions
}

// Control looks up a single control by ID
func (c *Catalog) Control(id types.ControlID) (*model.Control, bool) {
	ctrl, ok := c.controlByID[id]
	return ctrl, ok
}

// HasSubcategory reports whether the given code is a known taxonomy leaf
func (c *Catalog) HasSubcategory(code string) bool {
	_, ok := c.subcategories[code]
	return ok
}

// ControlFilter narrows a catalog query. All dimensions are optional and
// conjunctive when present.
type ControlFilter struct {
	Scope    types.ControlScope // zero value matches every scope
	Type     types.ControlType  // zero value matches every type
	MaxLevel types.ControlLevel // zero value matches every level
	RiskTags []string           // matches controls sharing at least one tag
}

// Controls returns the controls matching the filter, ordered by control ID
// ascending. The ordering is stable across calls so that recomputes with
// unchanged inputs produce byte-identical output.
func (c *Catalog) Controls(filter ControlFilter) []*model.Control {
	matched := make([]*model.Control, 0, len(c.controls))
	for _, ctrl := range c.controls {
		if filter.Scope != "" && !ctrl.Scope.Matches(filter.Scope) {
			continue
		}
		if filter.Type != "" && ctrl.Type != filter.Type {
			continue
		}
		if filter.MaxLevel != 0 && ctrl.Level > filter.MaxLevel {
			continue
		}
		if !ctrl.HasAnyTag(filter.RiskTags) {
			continue
		}
		matched = append(matched, ctrl)
	}
	return matched
}
