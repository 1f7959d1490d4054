package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/usecase"
)

func setupOrgWithProduct(t *testing.T, uc *usecase.UseCases) (*model.OrgAssessment, *model.ProductAssessment) {
	t.Helper()
	ctx := context.Background()

	org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
	gt.NoError(t, err).Required()
	product, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Support Chatbot")
	gt.NoError(t, err).Required()
	return org, product
}

func TestRecomputeOrg(t *testing.T) {
	t.Run("first compute stores result and computed entry", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()
		org, _ := setupOrgWithProduct(t, uc)

		result, err := uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, result.EntityType).Equal(types.EntityOrgAssessment)
		gt.Value(t, result.EntityID).Equal(org.ID.String())
		gt.Bool(t, result.ComputedAt.IsZero()).False()

		entries, _, err := repo.Audit().List(ctx, types.EntityOrgAssessment, org.ID.String())
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2) // created, computed
		gt.Value(t, entries[0].Action).Equal(types.ActionComputed)
	})

	t.Run("unchanged answers yield an identical result", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, _ := setupOrgWithProduct(t, uc)

		first, err := uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()
		second, err := uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()

		gt.Number(t, second.RiskScore).Equal(first.RiskScore)
		gt.Value(t, second.RiskTier).Equal(first.RiskTier)
		gt.Array(t, second.ControlIDs).Equal(first.ControlIDs)
		gt.Value(t, second.Blueprint).Equal(first.Blueprint)
		gt.Value(t, second.PolicyDrafts).Equal(first.PolicyDrafts)
		gt.Value(t, second.Checklist).Equal(first.Checklist)
	})

	t.Run("later computes record recomputed entries", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()
		org, _ := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()
		_, err = uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()

		entries, _, err := repo.Audit().List(ctx, types.EntityOrgAssessment, org.ID.String())
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3)
		gt.Value(t, entries[0].Action).Equal(types.ActionRecomputed)
		gt.Value(t, entries[1].Action).Equal(types.ActionComputed)
	})

	t.Run("recomputes every child product", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)
		second, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Scoring Model")
		gt.NoError(t, err).Required()

		_, err = uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()

		for _, id := range []string{product.ID.String(), second.ID.String()} {
			result, err := repo.Result().Get(ctx, types.EntityProductAssessment, id)
			gt.NoError(t, err).Required()
			gt.Value(t, result.EntityID).Equal(id)
		}
	})

	t.Run("foreign owner gets ErrNotFound", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, _ := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeOrg(ctx, "user-2", org.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}

func TestRecomputeProduct(t *testing.T) {
	t.Run("product tier reflects its answers", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)

		_, err := uc.Assessment.UpdateProductAnswers(ctx, "user-1", org.ID, product.ID, model.ProductAnswers{
			Data: &model.ProductDataAnswers{
				Sensitivity:       types.SensitivityRegulated,
				PersonalData:      true,
				SpecialCategories: true,
			},
			Autonomy: &model.ProductAutonomyAnswers{Level: types.AutonomyFullAutonomy},
			Impact:   &model.ProductImpactAnswers{UserImpact: types.ImpactCritical, LegalEffects: true},
			Regulatory: &model.ProductRegulatoryAnswers{
				Regimes:    []string{"EU AI Act"},
				EUHighRisk: true,
			},
		})
		gt.NoError(t, err).Required()

		result, err := uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, result.RiskTier.AtLeast(types.RiskTierHigh)).True()
		gt.Bool(t, len(result.ControlIDs) > 0).True()
	})

	t.Run("wrong org path gets ErrNotFound", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		_, product := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeProduct(ctx, "user-1", types.NewOrgAssessmentID(), product.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}

func TestGetResults(t *testing.T) {
	t.Run("uncomputed assessment returns ErrNotYetComputed", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)

		_, err := uc.Result.GetOrgResult(ctx, "user-1", org.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()

		_, err = uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()
	})

	t.Run("ownership is checked before result lookup", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, _ := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()

		// Not ErrNotYetComputed: the caller must not learn the result exists
		_, err = uc.Result.GetOrgResult(ctx, "user-2", org.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("org policy drafts are served from the stored result", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, _ := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()

		drafts, err := uc.Result.GetOrgPolicyDrafts(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()
		// Baseline answers leave taxonomy gaps, so drafts exist
		gt.Bool(t, len(drafts) > 0).True()
	})
}

func TestPatchProductChecklist(t *testing.T) {
	t.Run("patch survives until the next recompute", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()

		result, err := uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()

		patched := result.Checklist
		patched.Phases[0].Items[0].Done = true
		gt.NoError(t, uc.Result.PatchProductChecklist(ctx, "user-1", org.ID, product.ID, patched)).Required()

		stored, err := uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.Checklist.Phases[0].Items[0].Done).True()

		// Recompute resets the checklist wholesale
		_, err = uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()
		reset, err := uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, reset.Checklist.Phases[0].Items[0].Done).False()
	})

	t.Run("patch records a checklist_patched entry", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()
		result, err := uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Result.PatchProductChecklist(ctx, "user-1", org.ID, product.ID, result.Checklist)).Required()

		entries, _, err := repo.Audit().List(ctx, types.EntityProductAssessment, product.ID.String())
		gt.NoError(t, err).Required()
		gt.Value(t, entries[0].Action).Equal(types.ActionChecklistPatched)
	})

	t.Run("patch before first compute returns ErrNotYetComputed", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)

		checklist := model.Checklist{Phases: []model.ChecklistPhase{{Key: "immediate", Title: "Immediate"}}}
		err := uc.Result.PatchProductChecklist(ctx, "user-1", org.ID, product.ID, checklist)
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()
	})

	t.Run("malformed checklist is rejected before any write", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()

		err = uc.Result.PatchProductChecklist(ctx, "user-1", org.ID, product.ID, model.Checklist{})
		gt.Bool(t, errors.Is(err, types.ErrInvalidInput)).True()
	})

	t.Run("concurrent recompute and patch never mix states", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()
		baseline, err := uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()

		patched := baseline.Checklist
		for i := range patched.Phases {
			for j := range patched.Phases[i].Items {
				patched.Phases[i].Items[j].Done = true
			}
		}

		for i := 0; i < 20; i++ {
			var wg sync.WaitGroup
			var recomputeErr, patchErr error
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, recomputeErr = uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
			}()
			go func() {
				defer wg.Done()
				patchErr = uc.Result.PatchProductChecklist(ctx, "user-1", org.ID, product.ID, patched)
			}()
			wg.Wait()
			gt.NoError(t, recomputeErr).Required()
			gt.NoError(t, patchErr).Required()

			// The two writes are serialized, so every item carries the same
			// Done flag: all true when the patch landed last, all false when
			// the recompute did. A mix would mean a patch over a stale record.
			stored, err := uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
			gt.NoError(t, err).Required()
			done := stored.Checklist.Phases[0].Items[0].Done
			for _, phase := range stored.Checklist.Phases {
				for _, item := range phase.Items {
					gt.Bool(t, item.Done == done).True()
				}
			}
		}
	})

	t.Run("foreign owner cannot patch", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		org, product := setupOrgWithProduct(t, uc)

		_, err := uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()
		result, err := uc.Result.GetProductResult(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()

		err = uc.Result.PatchProductChecklist(ctx, "user-2", org.ID, product.ID, result.Checklist)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}
