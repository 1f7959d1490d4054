package usecase

import (
	"context"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// AuditUseCase exposes paginated read access to the audit trail
type AuditUseCase struct {
	repo interfaces.Repository
}

func NewAuditUseCase(repo interfaces.Repository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// ListProductAudit returns one newest-first page of the product's audit
// trail. Ownership is checked before touching the trail so that a foreign
// product ID leaks nothing, not even an empty page.
func (uc *AuditUseCase) ListProductAudit(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, productID types.ProductAssessmentID, opts ...interfaces.ListAuditOption) ([]*model.AuditEntry, types.AuditEntryID, error) {
	if _, err := uc.repo.ProductAssessment().Get(ctx, ownerID, orgID, productID); err != nil {
		return nil, "", err
	}
	return uc.repo.Audit().List(ctx, types.EntityProductAssessment, productID.String(), opts...)
}

// ListOrgAudit returns one newest-first page of the org's audit trail
func (uc *AuditUseCase) ListOrgAudit(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, opts ...interfaces.ListAuditOption) ([]*model.AuditEntry, types.AuditEntryID, error) {
	if _, err := uc.repo.OrgAssessment().Get(ctx, ownerID, orgID); err != nil {
		return nil, "", err
	}
	return uc.repo.Audit().List(ctx, types.EntityOrgAssessment, orgID.String(), opts...)
}
