package interfaces

import (
	"context"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// ResultRepository defines data access for derived assessment results.
// Writes pair the result mutation with its audit entry inside one logical
// transaction: a reader never observes one without the other.
type ResultRepository interface {
	// Get retrieves the stored result for an assessment. Returns
	// types.ErrNotYetComputed if the assessment has never been computed.
	Get(ctx context.Context, entityType types.AuditEntityType, entityID string) (*model.AssessmentResult, error)

	// Replace atomically replaces the whole result record and appends the
	// given audit entry. The prior result, if any, is discarded in full.
	Replace(ctx context.Context, result *model.AssessmentResult, entry *model.AuditEntry) error

	// PatchChecklist atomically replaces only the checklist field of an
	// existing result and appends the given audit entry. Returns
	// types.ErrNotYetComputed if no result exists.
	PatchChecklist(ctx context.Context, entityType types.AuditEntityType, entityID string, checklist model.Checklist, entry *model.AuditEntry) error

	// Delete removes the result of an assessment. Missing results are not an
	// error; deletion is idempotent.
	Delete(ctx context.Context, entityType types.AuditEntityType, entityID string) error
}
