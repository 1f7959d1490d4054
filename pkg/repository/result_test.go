package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/repository/firestore"
	"github.com/govern-lab/aegis/pkg/repository/memory"
)

func newTestResult(entityType types.AuditEntityType, entityID string) *model.AssessmentResult {
	return &model.AssessmentResult{
		EntityType: entityType,
		EntityID:   entityID,
		RiskScore:  42,
		RiskTier:   types.RiskTierMedium,
		ControlIDs: []types.ControlID{"AIG-001", "AIG-002"},
		Blueprint: model.Blueprint{
			Functions: []model.BlueprintFunction{
				{Code: "GOVERN", Name: "Govern", Status: model.CoveragePartial},
			},
		},
		PolicyDrafts: []model.PolicyDraft{
			{Key: "MAP", Title: "Map Policy", Body: "draft body"},
		},
		Checklist: model.Checklist{
			Phases: []model.ChecklistPhase{
				{Key: "immediate", Title: "Immediate", Items: []model.ChecklistItem{
					{ControlID: "AIG-001", Title: "Establish AI policy"},
				}},
			},
		},
		ComputedAt: time.Now().UTC(),
	}
}

func runResultRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const actor = types.UserID("user-1")

	t.Run("Get before first compute returns ErrNotYetComputed", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Result().Get(ctx, types.EntityOrgAssessment, uuid.NewString())
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()
	})

	t.Run("Replace stores the result with its audit entry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entityID := uuid.NewString()

		result := newTestResult(types.EntityOrgAssessment, entityID)
		entry := model.NewAuditEntry(types.EntityOrgAssessment, entityID, types.ActionComputed, actor)
		gt.NoError(t, repo.Result().Replace(ctx, result, entry)).Required()

		stored, err := repo.Result().Get(ctx, types.EntityOrgAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Number(t, stored.RiskScore).Equal(42)
		gt.Value(t, stored.RiskTier).Equal(types.RiskTierMedium)
		gt.Array(t, stored.ControlIDs).Length(2)

		entries, cursor, err := repo.Audit().List(ctx, types.EntityOrgAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Action).Equal(types.ActionComputed)
		gt.Value(t, entries[0].Actor).Equal(actor)
		gt.Value(t, cursor).Equal(types.AuditEntryID(""))
	})

	t.Run("Replace discards the prior result wholesale", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entityID := uuid.NewString()

		first := newTestResult(types.EntityProductAssessment, entityID)
		gt.NoError(t, repo.Result().Replace(ctx, first,
			model.NewAuditEntry(types.EntityProductAssessment, entityID, types.ActionComputed, actor))).Required()

		second := newTestResult(types.EntityProductAssessment, entityID)
		second.RiskScore = 80
		second.RiskTier = types.RiskTierRegulated
		second.PolicyDrafts = nil
		gt.NoError(t, repo.Result().Replace(ctx, second,
			model.NewAuditEntry(types.EntityProductAssessment, entityID, types.ActionRecomputed, actor))).Required()

		stored, err := repo.Result().Get(ctx, types.EntityProductAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Number(t, stored.RiskScore).Equal(80)
		gt.Array(t, stored.PolicyDrafts).Length(0)

		entries, _, err := repo.Audit().List(ctx, types.EntityProductAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2)
		gt.Value(t, entries[0].Action).Equal(types.ActionRecomputed)
		gt.Value(t, entries[1].Action).Equal(types.ActionComputed)
	})

	t.Run("PatchChecklist replaces only the checklist", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entityID := uuid.NewString()

		result := newTestResult(types.EntityProductAssessment, entityID)
		gt.NoError(t, repo.Result().Replace(ctx, result,
			model.NewAuditEntry(types.EntityProductAssessment, entityID, types.ActionComputed, actor))).Required()

		patched := result.Checklist
		patched.Phases[0].Items[0].Done = true
		gt.NoError(t, repo.Result().PatchChecklist(ctx, types.EntityProductAssessment, entityID, patched,
			model.NewAuditEntry(types.EntityProductAssessment, entityID, types.ActionChecklistPatched, actor))).Required()

		stored, err := repo.Result().Get(ctx, types.EntityProductAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.Checklist.Phases[0].Items[0].Done).True()
		// Everything else stays as computed
		gt.Number(t, stored.RiskScore).Equal(42)
		gt.Array(t, stored.PolicyDrafts).Length(1)

		entries, _, err := repo.Audit().List(ctx, types.EntityProductAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2)
		gt.Value(t, entries[0].Action).Equal(types.ActionChecklistPatched)
	})

	t.Run("mutating a returned result leaves the store untouched", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entityID := uuid.NewString()

		result := newTestResult(types.EntityProductAssessment, entityID)
		gt.NoError(t, repo.Result().Replace(ctx, result,
			model.NewAuditEntry(types.EntityProductAssessment, entityID, types.ActionComputed, actor))).Required()

		got, err := repo.Result().Get(ctx, types.EntityProductAssessment, entityID)
		gt.NoError(t, err).Required()
		got.Checklist.Phases[0].Items[0].Done = true
		got.Blueprint.Functions[0].Status = model.CoverageGap
		got.ControlIDs[0] = "AIG-999"
		got.PolicyDrafts[0].Body = "rewritten"

		stored, err := repo.Result().Get(ctx, types.EntityProductAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.Checklist.Phases[0].Items[0].Done).False()
		gt.Value(t, stored.Blueprint.Functions[0].Status).Equal(model.CoveragePartial)
		gt.Value(t, stored.ControlIDs[0]).Equal(types.ControlID("AIG-001"))
		gt.Value(t, stored.PolicyDrafts[0].Body).Equal("draft body")
	})

	t.Run("mutating write inputs after the call leaves the store untouched", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entityID := uuid.NewString()

		result := newTestResult(types.EntityProductAssessment, entityID)
		gt.NoError(t, repo.Result().Replace(ctx, result,
			model.NewAuditEntry(types.EntityProductAssessment, entityID, types.ActionComputed, actor))).Required()
		result.Checklist.Phases[0].Items[0].Done = true

		checklist := model.Checklist{
			Phases: []model.ChecklistPhase{
				{Key: "immediate", Title: "Immediate", Items: []model.ChecklistItem{
					{ControlID: "AIG-001", Title: "Establish AI policy"},
				}},
			},
		}
		gt.NoError(t, repo.Result().PatchChecklist(ctx, types.EntityProductAssessment, entityID, checklist,
			model.NewAuditEntry(types.EntityProductAssessment, entityID, types.ActionChecklistPatched, actor))).Required()
		checklist.Phases[0].Items[0].Done = true

		stored, err := repo.Result().Get(ctx, types.EntityProductAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.Checklist.Phases[0].Items[0].Done).False()
	})

	t.Run("PatchChecklist before first compute returns ErrNotYetComputed", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entityID := uuid.NewString()

		checklist := model.Checklist{Phases: []model.ChecklistPhase{{Key: "immediate", Title: "Immediate"}}}
		err := repo.Result().PatchChecklist(ctx, types.EntityProductAssessment, entityID, checklist,
			model.NewAuditEntry(types.EntityProductAssessment, entityID, types.ActionChecklistPatched, actor))
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()

		// The rejected patch leaves no audit trace
		entries, _, err := repo.Audit().List(ctx, types.EntityProductAssessment, entityID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entityID := uuid.NewString()

		result := newTestResult(types.EntityOrgAssessment, entityID)
		gt.NoError(t, repo.Result().Replace(ctx, result,
			model.NewAuditEntry(types.EntityOrgAssessment, entityID, types.ActionComputed, actor))).Required()

		gt.NoError(t, repo.Result().Delete(ctx, types.EntityOrgAssessment, entityID)).Required()
		_, err := repo.Result().Get(ctx, types.EntityOrgAssessment, entityID)
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()

		// Deleting again is not an error
		gt.NoError(t, repo.Result().Delete(ctx, types.EntityOrgAssessment, entityID))
	})

	t.Run("entity types do not collide", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		entityID := uuid.NewString()

		orgResult := newTestResult(types.EntityOrgAssessment, entityID)
		gt.NoError(t, repo.Result().Replace(ctx, orgResult,
			model.NewAuditEntry(types.EntityOrgAssessment, entityID, types.ActionComputed, actor))).Required()

		_, err := repo.Result().Get(ctx, types.EntityProductAssessment, entityID)
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()
	})
}

func TestResultRepository_Memory(t *testing.T) {
	runResultRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestResultRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runResultRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
