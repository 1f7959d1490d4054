package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/utils/logging"
)

// AssessmentUseCase manages the lifecycle of org and product assessments.
// Answer updates trigger a synchronous recompute so that stored results never
// trail the snapshot they were derived from.
type AssessmentUseCase struct {
	repo   interfaces.Repository
	result *ResultUseCase
}

func NewAssessmentUseCase(repo interfaces.Repository, result *ResultUseCase) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:   repo,
		result: result,
	}
}

// ResultSummary is the condensed view of a stored result used in listings
type ResultSummary struct {
	RiskScore  int
	RiskTier   types.RiskTier
	ComputedAt time.Time
}

// ProductOverview is one product row in an org listing
type ProductOverview struct {
	ID        types.ProductAssessmentID
	Name      string
	CreatedAt time.Time
	Result    *ResultSummary // nil until first computation
}

// OrgOverview is one org row in a listing, with its products attached
type OrgOverview struct {
	ID        types.OrgAssessmentID
	Name      string
	CreatedAt time.Time
	Result    *ResultSummary // nil until first computation
	Products  []ProductOverview
}

// CreateOrg stores a new organization assessment with an empty answer
// snapshot and records the creation in the audit trail
func (uc *AssessmentUseCase) CreateOrg(ctx context.Context, ownerID types.UserID, name string) (*model.OrgAssessment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(types.ErrInvalidInput, "organization name is required")
	}

	now := time.Now().UTC()
	org := &model.OrgAssessment{
		ID:        types.NewOrgAssessmentID(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := uc.repo.OrgAssessment().Create(ctx, org)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create org assessment", goerr.V("name", name))
	}

	uc.appendAudit(ctx, model.NewAuditEntry(types.EntityOrgAssessment, created.ID.String(), types.ActionCreated, ownerID))
	return created, nil
}

// GetOrg retrieves an org assessment owned by the caller
func (uc *AssessmentUseCase) GetOrg(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID) (*model.OrgAssessment, error) {
	return uc.repo.OrgAssessment().Get(ctx, ownerID, orgID)
}

// ListOrgs returns the caller's org assessments with their products and
// result summaries. Assessments that were never computed carry a nil summary.
func (uc *AssessmentUseCase) ListOrgs(ctx context.Context, ownerID types.UserID) ([]OrgOverview, error) {
	orgs, err := uc.repo.OrgAssessment().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list org assessments")
	}

	overviews := make([]OrgOverview, 0, len(orgs))
	for _, org := range orgs {
		ov := OrgOverview{
			ID:        org.ID,
			Name:      org.Name,
			CreatedAt: org.CreatedAt,
		}

		summary, err := uc.resultSummary(ctx, types.EntityOrgAssessment, org.ID.String())
		if err != nil {
			return nil, err
		}
		ov.Result = summary

		products, err := uc.repo.ProductAssessment().ListByOrg(ctx, ownerID, org.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list products", goerr.V("org_id", org.ID))
		}
		for _, product := range products {
			po := ProductOverview{
				ID:        product.ID,
				Name:      product.Name,
				CreatedAt: product.CreatedAt,
			}
			summary, err := uc.resultSummary(ctx, types.EntityProductAssessment, product.ID.String())
			if err != nil {
				return nil, err
			}
			po.Result = summary
			ov.Products = append(ov.Products, po)
		}

		overviews = append(overviews, ov)
	}

	return overviews, nil
}

func (uc *AssessmentUseCase) resultSummary(ctx context.Context, entityType types.AuditEntityType, entityID string) (*ResultSummary, error) {
	result, err := uc.repo.Result().Get(ctx, entityType, entityID)
	if err != nil {
		if errors.Is(err, types.ErrNotYetComputed) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get result summary",
			goerr.V("entity_type", entityType), goerr.V("entity_id", entityID))
	}
	return &ResultSummary{
		RiskScore:  result.RiskScore,
		RiskTier:   result.RiskTier,
		ComputedAt: result.ComputedAt,
	}, nil
}

// UpdateOrgAnswers replaces the org answer snapshot and recomputes the org
// result together with every product result under it
func (uc *AssessmentUseCase) UpdateOrgAnswers(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, answers model.OrgAnswers) (*model.OrgAssessment, error) {
	if err := answers.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.OrgAssessment().UpdateAnswers(ctx, ownerID, orgID, answers)
	if err != nil {
		return nil, err
	}

	uc.appendAudit(ctx, model.NewAuditEntry(types.EntityOrgAssessment, orgID.String(), types.ActionUpdated, ownerID))

	if _, err := uc.result.RecomputeOrg(ctx, ownerID, orgID); err != nil {
		return nil, goerr.Wrap(err, "failed to recompute after answer update", goerr.V("org_id", orgID))
	}
	return updated, nil
}

// CreateProduct stores a new product assessment under an org the caller
// owns. A missing or foreign parent org fails with types.ErrNotFound.
func (uc *AssessmentUseCase) CreateProduct(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, name string) (*model.ProductAssessment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(types.ErrInvalidInput, "product name is required")
	}

	if _, err := uc.repo.OrgAssessment().Get(ctx, ownerID, orgID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.ProductAssessment{
		ID:        types.NewProductAssessmentID(),
		OrgID:     orgID,
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := uc.repo.ProductAssessment().Create(ctx, product)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create product assessment",
			goerr.V("org_id", orgID), goerr.V("name", name))
	}

	uc.appendAudit(ctx, model.NewAuditEntry(types.EntityProductAssessment, created.ID.String(), types.ActionCreated, ownerID))
	return created, nil
}

// GetProduct retrieves a product assessment owned by the caller
func (uc *AssessmentUseCase) GetProduct(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, productID types.ProductAssessmentID) (*model.ProductAssessment, error) {
	return uc.repo.ProductAssessment().Get(ctx, ownerID, orgID, productID)
}

// UpdateProductAnswers replaces the product answer snapshot and recomputes
// its result
func (uc *AssessmentUseCase) UpdateProductAnswers(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, productID types.ProductAssessmentID, answers model.ProductAnswers) (*model.ProductAssessment, error) {
	if err := answers.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.ProductAssessment().UpdateAnswers(ctx, ownerID, orgID, productID, answers)
	if err != nil {
		return nil, err
	}

	uc.appendAudit(ctx, model.NewAuditEntry(types.EntityProductAssessment, productID.String(), types.ActionUpdated, ownerID))

	if _, err := uc.result.RecomputeProduct(ctx, ownerID, orgID, productID); err != nil {
		return nil, goerr.Wrap(err, "failed to recompute after answer update", goerr.V("product_id", productID))
	}
	return updated, nil
}

// DeleteOrg removes an org assessment and its result. Deletion is rejected
// with types.ErrHasProducts while product assessments still exist under it;
// the caller removes those first.
func (uc *AssessmentUseCase) DeleteOrg(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID) error {
	if _, err := uc.repo.OrgAssessment().Get(ctx, ownerID, orgID); err != nil {
		return err
	}

	products, err := uc.repo.ProductAssessment().ListByOrg(ctx, ownerID, orgID)
	if err != nil {
		return goerr.Wrap(err, "failed to list products", goerr.V("org_id", orgID))
	}
	if len(products) > 0 {
		return goerr.Wrap(types.ErrHasProducts, "organization still has product assessments",
			goerr.V("org_id", orgID), goerr.V("count", len(products)))
	}

	if err := uc.repo.OrgAssessment().Delete(ctx, ownerID, orgID); err != nil {
		return err
	}
	if err := uc.result.deleteResult(ctx, types.EntityOrgAssessment, orgID.String()); err != nil {
		return goerr.Wrap(err, "failed to delete org result", goerr.V("org_id", orgID))
	}

	uc.appendAudit(ctx, model.NewAuditEntry(types.EntityOrgAssessment, orgID.String(), types.ActionDeleted, ownerID))
	return nil
}

// DeleteProduct removes a product assessment together with its result
func (uc *AssessmentUseCase) DeleteProduct(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, productID types.ProductAssessmentID) error {
	if err := uc.repo.ProductAssessment().Delete(ctx, ownerID, orgID, productID); err != nil {
		return err
	}
	if err := uc.result.deleteResult(ctx, types.EntityProductAssessment, productID.String()); err != nil {
		return goerr.Wrap(err, "failed to delete product result", goerr.V("product_id", productID))
	}

	uc.appendAudit(ctx, model.NewAuditEntry(types.EntityProductAssessment, productID.String(), types.ActionDeleted, ownerID))
	return nil
}

// appendAudit records a lifecycle entry. Audit failures never fail the
// primary mutation; they are logged and dropped.
func (uc *AssessmentUseCase) appendAudit(ctx context.Context, entry *model.AuditEntry) {
	if err := uc.repo.Audit().Append(ctx, entry); err != nil {
		logging.From(ctx).Error("failed to append audit entry",
			"entity_type", entry.EntityType, "entity_id", entry.EntityID, "action", entry.Action, "error", err)
	}
}
