package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

func TestCreateOrg(t *testing.T) {
	t.Run("creates org with trimmed name and audit entry", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "  Acme Corp  ")
		gt.NoError(t, err).Required()
		gt.Value(t, org.Name).Equal("Acme Corp")
		gt.Value(t, org.OwnerID).Equal(types.UserID("user-1"))

		entries, _, err := repo.Audit().List(ctx, types.EntityOrgAssessment, org.ID.String())
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Action).Equal(types.ActionCreated)
		gt.Value(t, entries[0].Actor).Equal(types.UserID("user-1"))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		_, err := uc.Assessment.CreateOrg(ctx, "user-1", "   ")
		gt.Bool(t, errors.Is(err, types.ErrInvalidInput)).True()
	})
}

func TestListOrgs(t *testing.T) {
	t.Run("uncomputed assessments carry a nil summary", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()

		overviews, err := uc.Assessment.ListOrgs(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Array(t, overviews).Length(1)
		gt.Value(t, overviews[0].ID).Equal(org.ID)
		gt.Value(t, overviews[0].Result).Nil()
	})

	t.Run("computed assessments carry score and tier", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()
		product, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Chatbot")
		gt.NoError(t, err).Required()

		_, err = uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()

		overviews, err := uc.Assessment.ListOrgs(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Array(t, overviews).Length(1)
		gt.Value(t, overviews[0].Result).NotNil()
		gt.Value(t, overviews[0].Result.RiskTier).Equal(types.RiskTierLow)
		gt.Array(t, overviews[0].Products).Length(1)
		gt.Value(t, overviews[0].Products[0].ID).Equal(product.ID)
		gt.Value(t, overviews[0].Products[0].Result).NotNil()
	})

	t.Run("owners do not see each other's orgs", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		_, err := uc.Assessment.CreateOrg(ctx, "user-1", "Mine")
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.CreateOrg(ctx, "user-2", "Theirs")
		gt.NoError(t, err).Required()

		overviews, err := uc.Assessment.ListOrgs(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Array(t, overviews).Length(1)
		gt.Value(t, overviews[0].Name).Equal("Mine")
	})
}

func TestUpdateOrgAnswers(t *testing.T) {
	t.Run("replaces answers and triggers a recompute", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()

		updated, err := uc.Assessment.UpdateOrgAnswers(ctx, "user-1", org.ID, model.OrgAnswers{
			DataGovernance: &model.OrgDataGovernanceAnswers{HandlesPersonalData: true},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, updated.Answers.DataGovernance.HandlesPersonalData).True()

		// The update left a fresh result behind
		result, err := repo.Result().Get(ctx, types.EntityOrgAssessment, org.ID.String())
		gt.NoError(t, err).Required()
		gt.Bool(t, result.ComputedAt.IsZero()).False()

		entries, _, err := repo.Audit().List(ctx, types.EntityOrgAssessment, org.ID.String())
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3) // created, updated, computed
		gt.Value(t, entries[0].Action).Equal(types.ActionComputed)
		gt.Value(t, entries[1].Action).Equal(types.ActionUpdated)
		gt.Value(t, entries[2].Action).Equal(types.ActionCreated)
	})

	t.Run("recomputes child products as well", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()
		product, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Chatbot")
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.UpdateOrgAnswers(ctx, "user-1", org.ID, model.OrgAnswers{})
		gt.NoError(t, err).Required()

		_, err = repo.Result().Get(ctx, types.EntityProductAssessment, product.ID.String())
		gt.NoError(t, err)
	})

	t.Run("unknown org returns ErrNotFound", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		_, err := uc.Assessment.UpdateOrgAnswers(ctx, "user-1", types.NewOrgAssessmentID(), model.OrgAnswers{})
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("creates product under an owned org", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()

		product, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Support Chatbot")
		gt.NoError(t, err).Required()
		gt.Value(t, product.OrgID).Equal(org.ID)
		gt.Value(t, product.Name).Equal("Support Chatbot")

		entries, _, err := repo.Audit().List(ctx, types.EntityProductAssessment, product.ID.String())
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Action).Equal(types.ActionCreated)
	})

	t.Run("foreign org behaves like a missing one", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.CreateProduct(ctx, "user-2", org.ID, "Chatbot")
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("rejects empty name", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "")
		gt.Bool(t, errors.Is(err, types.ErrInvalidInput)).True()
	})
}

func TestDeleteOrg(t *testing.T) {
	t.Run("removes the org, its result, and records deletion", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()
		_, err = uc.Result.RecomputeOrg(ctx, "user-1", org.ID)
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Assessment.DeleteOrg(ctx, "user-1", org.ID)).Required()

		_, err = uc.Assessment.GetOrg(ctx, "user-1", org.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
		_, err = repo.Result().Get(ctx, types.EntityOrgAssessment, org.ID.String())
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()

		// The trail survives the record: created, computed, deleted
		entries, _, err := repo.Audit().List(ctx, types.EntityOrgAssessment, org.ID.String())
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3)
		gt.Value(t, entries[0].Action).Equal(types.ActionDeleted)
	})

	t.Run("rejects deletion while products remain", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()
		product, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Chatbot")
		gt.NoError(t, err).Required()

		err = uc.Assessment.DeleteOrg(ctx, "user-1", org.ID)
		gt.Bool(t, errors.Is(err, types.ErrHasProducts)).True()

		// After removing the product the org can go
		gt.NoError(t, uc.Assessment.DeleteProduct(ctx, "user-1", org.ID, product.ID)).Required()
		gt.NoError(t, uc.Assessment.DeleteOrg(ctx, "user-1", org.ID))
	})

	t.Run("foreign owner cannot delete", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()

		err = uc.Assessment.DeleteOrg(ctx, "user-2", org.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("removes the product and its result", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()
		product, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Chatbot")
		gt.NoError(t, err).Required()
		_, err = uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Assessment.DeleteProduct(ctx, "user-1", org.ID, product.ID)).Required()

		_, err = repo.Result().Get(ctx, types.EntityProductAssessment, product.ID.String())
		gt.Bool(t, errors.Is(err, types.ErrNotYetComputed)).True()
	})
}

func TestListAudit(t *testing.T) {
	t.Run("requires ownership of the assessment", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()
		product, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Chatbot")
		gt.NoError(t, err).Required()

		_, _, err = uc.Audit.ListProductAudit(ctx, "user-2", org.ID, product.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("pages through the product trail", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		org, err := uc.Assessment.CreateOrg(ctx, "user-1", "Acme Corp")
		gt.NoError(t, err).Required()
		product, err := uc.Assessment.CreateProduct(ctx, "user-1", org.ID, "Chatbot")
		gt.NoError(t, err).Required()
		_, err = uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()
		_, err = uc.Result.RecomputeProduct(ctx, "user-1", org.ID, product.ID)
		gt.NoError(t, err).Required()

		first, cursor, err := uc.Audit.ListProductAudit(ctx, "user-1", org.ID, product.ID,
			interfaces.WithAuditLimit(2))
		gt.NoError(t, err).Required()
		gt.Array(t, first).Length(2)
		gt.Value(t, cursor).NotEqual(types.AuditEntryID(""))

		rest, next, err := uc.Audit.ListProductAudit(ctx, "user-1", org.ID, product.ID,
			interfaces.WithAuditCursor(cursor))
		gt.NoError(t, err).Required()
		gt.Array(t, rest).Length(1) // created
		gt.Value(t, rest[0].Action).Equal(types.ActionCreated)
		gt.Value(t, next).Equal(types.AuditEntryID(""))
	})
}
