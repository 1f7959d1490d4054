package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/model/config"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/repository/memory"
	"github.com/govern-lab/aegis/pkg/usecase"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	functions := []model.TaxonomyFunction{
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
		{
			Code: "MEASURE", Name: "Measure", SortKey: 2,
			Categories: []model.TaxonomyCategory{
				{
					Code: "MEASURE 1", Name: "Evaluation", SortKey: 1,
					Subcategories: []model.TaxonomySubcategory{
						{Code: "MEASURE 1.1", Name: "Risks tracked", SortKey: 1},
					},
				},
			},
		},
	}

	controls := []*model.Control{
		{
			ID: "AIG-001", Name: "Establish AI policy", Scope: types.ScopeBoth,
			Type: types.ControlTypePolicy, Level: types.LevelFoundational,
			RiskTags: []string{"governance"}, Refs: []string{"GOVERN 1.1"},
		},
		{
			ID: "AIG-002", Name: "Assess privacy impact", Scope: types.ScopeProduct,
			Type: types.ControlTypeProcess, Level: types.LevelIntermediate,
			RiskTags: []string{"privacy"}, Refs: []string{"MEASURE 1.1"},
		},
		{
			ID: "AIG-003", Name: "Continuous risk review", Scope: types.ScopeOrg,
			Type: types.ControlTypeDocumentation, Level: types.LevelAdvanced,
			RiskTags: []string{"governance", "regulatory"}, Refs: []string{"MEASURE 1.1"},
		},
	}

	cat, err := catalog.New(functions, controls)
	gt.NoError(t, err).Required()
	return cat
}

func testScoring() *config.ScoringConfig {
	return &config.ScoringConfig{
		Weights: config.DimensionWeights{
			DataSensitivity:    1.0,
			Autonomy:           1.0,
			UserImpact:         1.0,
			RegulatoryExposure: 1.0,
			Maturity:           0.5,
		},
		Thresholds: config.TierThresholds{Medium: 25, High: 50, Regulated: 75},
	}
}

func newTestUseCases(t *testing.T) (*usecase.UseCases, interfaces.Repository) {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo, testCatalog(t), testScoring())
	return uc, repo
}
