package interfaces

import (
	"context"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// OrgAssessmentRepository defines data access for organization assessments.
// Every read and write is scoped by the owner's user ID; a record owned by
// someone else behaves exactly like a missing record (types.ErrNotFound).
type OrgAssessmentRepository interface {
	// Create stores a new org assessment with a pre-assigned ID
	Create(ctx context.Context, a *model.OrgAssessment) (*model.OrgAssessment, error)

	// Get retrieves an org assessment owned by the given user
	Get(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID) (*model.OrgAssessment, error)

	// List retrieves all org assessments owned by the given user, ordered by
	// creation time ascending
	List(ctx context.Context, ownerID types.UserID) ([]*model.OrgAssessment, error)

	// UpdateAnswers replaces the answer snapshot of an org assessment
	UpdateAnswers(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID, answers model.OrgAnswers) (*model.OrgAssessment, error)

	// Delete removes an org assessment. The caller is responsible for the
	// child-product policy; the repository does not cascade.
	Delete(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID) error
}

// ProductAssessmentRepository defines data access for product assessments
type ProductAssessmentRepository interface {
	// Create stores a new product assessment with a pre-assigned ID
	Create(ctx context.Context, p *model.ProductAssessment) (*model.ProductAssessment, error)

	// Get retrieves a product assessment owned by the given user under the
	// given org assessment
	Get(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID) (*model.ProductAssessment, error)

	// ListByOrg retrieves all product assessments under an org assessment,
	// ordered by creation time ascending
	ListByOrg(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID) ([]*model.ProductAssessment, error)

	// UpdateAnswers replaces the answer snapshot of a product assessment
	UpdateAnswers(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID, answers model.ProductAnswers) (*model.ProductAssessment, error)

	// Delete removes a product assessment
	Delete(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID) error
}
