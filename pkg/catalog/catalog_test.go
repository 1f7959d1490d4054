package catalog_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

func testFunctions() []model.TaxonomyFunction {
	return []model.TaxonomyFunction{
		{
			Code: "MAP", Name: "Map", SortKey: 2,
			Categories: []model.TaxonomyCategory{
				{
					Code: "MAP 1", Name: "Context", SortKey: 1,
					Subcategories: []model.TaxonomySubcategory{
						{Code: "MAP 1.2", Name: "Risks identified", SortKey: 2},
						{Code: "MAP 1.1", Name: "Systems inventoried", SortKey: 1},
					},
				},
			},
		},
		{
			Code: "GOVERN", Name: "Govern", SortKey: 1,
			Categories: []model.TaxonomyCategory{
				{
					Code: "GOVERN 1", Name: "Policies", SortKey: 1,
					Subcategories: []model.TaxonomySubcategory{
						{Code: "GOVERN 1.1", Name: "AI policy exists", SortKey: 1},
					},
				},
			},
		},
	}
}

func testControls() []*model.Control {
	return []*model.Control{
		{
			ID: "AIG-002", Name: "Inventory AI systems", Scope: types.ScopeOrg,
			Type: types.ControlTypeProcess, Level: types.LevelIntermediate,
			RiskTags: []string{"governance"}, Refs: []string{"MAP 1.1"},
		},
		{
			ID: "AIG-001", Name: "Establish AI policy", Scope: types.ScopeBoth,
			Type: types.ControlTypePolicy, Level: types.LevelFoundational,
			RiskTags: []string{"governance", "privacy"}, Refs: []string{"GOVERN 1.1"},
		},
		{
			ID: "AIG-003", Name: "Log model decisions", Scope: types.ScopeProduct,
			Type: types.ControlTypeTechnical, Level: types.LevelAdvanced,
			RiskTags: []string{"transparency"}, Refs: []string{"MAP 1.2"},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("orders taxonomy by sort key", func(t *testing.T) {
		cat, err := catalog.New(testFunctions(), testControls())
		gt.NoError(t, err).Required()

		functions := cat.Functions()
		gt.Array(t, functions).Length(2)
		gt.Value(t, functions[0].Code).Equal("GOVERN")
		gt.Value(t, functions[1].Code).Equal("MAP")

		subs := functions[1].Categories[0].Subcategories
		gt.Value(t, subs[0].Code).Equal("MAP 1.1")
		gt.Value(t, subs[1].Code).Equal("MAP 1.2")
	})

	t.Run("orders controls by ID", func(t *testing.T) {
		cat, err := catalog.New(testFunctions(), testControls())
		gt.NoError(t, err).Required()

		controls := cat.Controls(catalog.ControlFilter{})
		gt.Array(t, controls).Length(3)
		gt.Value(t, controls[0].ID).Equal(types.ControlID("AIG-001"))
		gt.Value(t, controls[2].ID).Equal(types.ControlID("AIG-003"))
	})

	t.Run("rejects duplicate control ID", func(t *testing.T) {
		controls := testControls()
		controls = append(controls, &model.Control{
			ID: "AIG-001", Name: "Duplicate", Scope: types.ScopeOrg,
			Type: types.ControlTypePolicy, Level: types.LevelFoundational,
			RiskTags: []string{"governance"},
		})
		_, err := catalog.New(testFunctions(), controls)
		gt.Error(t, err)
	})

	t.Run("rejects duplicate taxonomy code", func(t *testing.T) {
		functions := testFunctions()
		functions[1].Categories[0].Subcategories[0].Code = "MAP 1.2"
		_, err := catalog.New(functions, nil)
		gt.Error(t, err)
	})

	t.Run("rejects reference to unknown subcategory", func(t *testing.T) {
		controls := []*model.Control{{
			ID: "AIG-010", Name: "Dangling ref", Scope: types.ScopeOrg,
			Type: types.ControlTypePolicy, Level: types.LevelFoundational,
			RiskTags: []string{"governance"}, Refs: []string{"MEASURE 9.9"},
		}}
		_, err := catalog.New(testFunctions(), controls)
		gt.Error(t, err)
	})

	t.Run("rejects invalid control fields", func(t *testing.T) {
		controls := []*model.Control{{
			ID: "AIG-011", Name: "Bad scope", Scope: "GLOBAL",
			Type: types.ControlTypePolicy, Level: types.LevelFoundational,
			RiskTags: []string{"governance"},
		}}
		_, err := catalog.New(testFunctions(), controls)
		gt.Error(t, err)
	})

	t.Run("input slice mutation does not leak", func(t *testing.T) {
		functions := testFunctions()
		cat, err := catalog.New(functions, testControls())
		gt.NoError(t, err).Required()

		functions[0].Code = "MUTATED"
		gt.Value(t, cat.Functions()[1].Code).Equal("MAP")
	})
}

func TestControls(t *testing.T) {
	cat, err := catalog.New(testFunctions(), testControls())
	gt.NoError(t, err).Required()

	t.Run("empty filter matches everything", func(t *testing.T) {
		gt.Array(t, cat.Controls(catalog.ControlFilter{})).Length(3)
	})

	t.Run("scope BOTH matches either side", func(t *testing.T) {
		org := cat.Controls(catalog.ControlFilter{Scope: types.ScopeOrg})
		gt.Array(t, org).Length(2) // AIG-001 (BOTH) and AIG-002 (ORG)

		product := cat.Controls(catalog.ControlFilter{Scope: types.ScopeProduct})
		gt.Array(t, product).Length(2) // AIG-001 (BOTH) and AIG-003 (PRODUCT)
	})

	t.Run("max level bounds the selection", func(t *testing.T) {
		controls := cat.Controls(catalog.ControlFilter{MaxLevel: types.LevelIntermediate})
		gt.Array(t, controls).Length(2)
		for _, ctrl := range controls {
			gt.Bool(t, ctrl.Level <= types.LevelIntermediate).True()
		}
	})

	t.Run("risk tags match any", func(t *testing.T) {
		controls := cat.Controls(catalog.ControlFilter{RiskTags: []string{"privacy", "transparency"}})
		gt.Array(t, controls).Length(2)
		gt.Value(t, controls[0].ID).Equal(types.ControlID("AIG-001"))
		gt.Value(t, controls[1].ID).Equal(types.ControlID("AIG-003"))
	})

	t.Run("dimensions are conjunctive", func(t *testing.T) {
		controls := cat.Controls(catalog.ControlFilter{
			Scope:    types.ScopeProduct,
			Type:     types.ControlTypeTechnical,
			MaxLevel: types.LevelAdvanced,
			RiskTags: []string{"transparency"},
		})
		gt.Array(t, controls).Length(1)
		gt.Value(t, controls[0].ID).Equal(types.ControlID("AIG-003"))
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		controls := cat.Controls(catalog.ControlFilter{Type: types.ControlTypeDocumentation})
		gt.Array(t, controls).Length(0)
	})
}

func TestControlLookup(t *testing.T) {
	cat, err := catalog.New(testFunctions(), testControls())
	gt.NoError(t, err).Required()

	ctrl, ok := cat.Control("AIG-002")
	gt.Bool(t, ok).True()
	gt.Value(t, ctrl.Name).Equal("Inventory AI systems")

	_, ok = cat.Control("AIG-999")
	gt.Bool(t, ok).False()

	gt.Bool(t, cat.HasSubcategory("MAP 1.1")).True()
	gt.Bool(t, cat.HasSubcategory("MAP 9.9")).False()
}
