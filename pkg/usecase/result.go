package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/model/config"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/engine"
)

// ResultUseCase orchestrates result computation and retrieval: load the
// answer snapshot, score it, map controls, generate artifacts, and persist
// the whole record together with its audit entry.
type ResultUseCase struct {
	repo    interfaces.Repository
	catalog *catalog.Catalog
	scoring *config.ScoringConfig
	locker  *entityLocker
}

func NewResultUseCase(repo interfaces.Repository, cat *catalog.Catalog, scoring *config.ScoringConfig, locker *entityLocker) *ResultUseCase {
	return &ResultUseCase{
		repo:    repo,
		catalog: cat,
		scoring: scoring,
		locker:  locker,
	}
}

// RecomputeOrg recomputes the organization result and fans out to every
// product under it. The org's own governance maturity feeds each product
// score, so a changed org snapshot invalidates all product results at once.
func (uc *ResultUseCase) RecomputeOrg(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID) (*model.AssessmentResult, error) {
	// A disconnecting client must not leave the org recomputed but its
	// products stale
	ctx = context.WithoutCancel(ctx)

	org, err := uc.repo.OrgAssessment().Get(ctx, ownerID, orgID)
	if err != nil {
		return nil, err
	}

	result, err := uc.computeOrg(ctx, org)
	if err != nil {
		return nil, err
	}

	products, err := uc.repo.ProductAssessment().ListByOrg(ctx, ownerID, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list products for recompute", goerr.V("org_id", orgID))
	}

	var eg errgroup.Group
	for _, product := range products {
		eg.Go(func() error {
			_, err := uc.computeProduct(ctx, org, product)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to recompute products", goerr.V("org_id", orgID))
	}

	return result, nil
}

// RecomputeProduct recomputes one product result from the current org and
// product snapshots
func (uc *ResultUseCase) RecomputeProduct(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, productID types.ProductAssessmentID) (*model.AssessmentResult, error) {
	ctx = context.WithoutCancel(ctx)

	org, err := uc.repo.OrgAssessment().Get(ctx, ownerID, orgID)
	if err != nil {
		return nil, err
	}
	product, err := uc.repo.ProductAssessment().Get(ctx, ownerID, orgID, productID)
	if err != nil {
		return nil, err
	}

	return uc.computeProduct(ctx, org, product)
}

func (uc *ResultUseCase) computeOrg(ctx context.Context, org *model.OrgAssessment) (*model.AssessmentResult, error) {
	scored := engine.ScoreOrg(org.Answers, uc.scoring)
	controls := engine.MapControls(types.ScopeOrg, scored, uc.catalog)

	result := engine.Generate(engine.GenerateInput{
		EntityType: types.EntityOrgAssessment,
		EntityID:   org.ID.String(),
		Subject:    org.Name,
		Scored:     scored,
		Controls:   controls,
		Catalog:    uc.catalog,
	})

	return uc.store(ctx, result, org.OwnerID)
}

func (uc *ResultUseCase) computeProduct(ctx context.Context, org *model.OrgAssessment, product *model.ProductAssessment) (*model.AssessmentResult, error) {
	scored := engine.ScoreProduct(org.Answers, product.Answers, uc.scoring)
	controls := engine.MapControls(types.ScopeProduct, scored, uc.catalog)

	result := engine.Generate(engine.GenerateInput{
		EntityType: types.EntityProductAssessment,
		EntityID:   product.ID.String(),
		Subject:    product.Name,
		Scored:     scored,
		Controls:   controls,
		Catalog:    uc.catalog,
	})

	return uc.store(ctx, result, product.OwnerID)
}

// store persists a freshly generated result. The audit action distinguishes
// the first computation from later ones, so the existence of a prior result
// is checked under the same per-assessment lock that guards the write.
func (uc *ResultUseCase) store(ctx context.Context, result *model.AssessmentResult, actor types.UserID) (*model.AssessmentResult, error) {
	unlock := uc.locker.Lock(result.EntityType, result.EntityID)
	defer unlock()

	action := types.ActionRecomputed
	if _, err := uc.repo.Result().Get(ctx, result.EntityType, result.EntityID); err != nil {
		if !errors.Is(err, types.ErrNotYetComputed) {
			return nil, err
		}
		action = types.ActionComputed
	}

	result.ComputedAt = time.Now().UTC()
	entry := model.NewAuditEntry(result.EntityType, result.EntityID, action, actor)
	if err := uc.repo.Result().Replace(ctx, result, entry); err != nil {
		return nil, goerr.Wrap(err, "failed to store result",
			goerr.V("entity_type", result.EntityType), goerr.V("entity_id", result.EntityID))
	}

	return result, nil
}

// GetOrgResult retrieves the stored org result after an ownership check
func (uc *ResultUseCase) GetOrgResult(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID) (*model.AssessmentResult, error) {
	if _, err := uc.repo.OrgAssessment().Get(ctx, ownerID, orgID); err != nil {
		return nil, err
	}
	return uc.repo.Result().Get(ctx, types.EntityOrgAssessment, orgID.String())
}

// GetProductResult retrieves the stored product result after an ownership check
func (uc *ResultUseCase) GetProductResult(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, productID types.ProductAssessmentID) (*model.AssessmentResult, error) {
	if _, err := uc.repo.ProductAssessment().Get(ctx, ownerID, orgID, productID); err != nil {
		return nil, err
	}
	return uc.repo.Result().Get(ctx, types.EntityProductAssessment, productID.String())
}

// GetOrgPolicyDrafts returns the policy drafts of the stored org result
func (uc *ResultUseCase) GetOrgPolicyDrafts(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID) ([]model.PolicyDraft, error) {
	result, err := uc.GetOrgResult(ctx, ownerID, orgID)
	if err != nil {
		return nil, err
	}
	return result.PolicyDrafts, nil
}

// PatchProductChecklist replaces the checklist of an existing product result.
// The rest of the result is untouched; a concurrent recompute on the same
// assessment is serialized by the per-assessment lock.
func (uc *ResultUseCase) PatchProductChecklist(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, productID types.ProductAssessmentID, checklist model.Checklist) error {
	if err := checklist.Validate(); err != nil {
		return err
	}
	if _, err := uc.repo.ProductAssessment().Get(ctx, ownerID, orgID, productID); err != nil {
		return err
	}

	unlock := uc.locker.Lock(types.EntityProductAssessment, productID.String())
	defer unlock()

	entry := model.NewAuditEntry(types.EntityProductAssessment, productID.String(), types.ActionChecklistPatched, ownerID)
	return uc.repo.Result().PatchChecklist(ctx, types.EntityProductAssessment, productID.String(), checklist, entry)
}

// deleteResult drops the stored result of an assessment. Used by the
// assessment layer when the assessment itself is removed.
func (uc *ResultUseCase) deleteResult(ctx context.Context, entityType types.AuditEntityType, entityID string) error {
	unlock := uc.locker.Lock(entityType, entityID)
	defer unlock()
	return uc.repo.Result().Delete(ctx, entityType, entityID)
}
