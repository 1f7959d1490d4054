package interfaces

import (
	"context"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// MaxAuditPageSize is the hard cap on one audit page; requested limits above
// it are clamped, never rejected.
const MaxAuditPageSize = 100

// AuditRepository defines append-only access to the audit trail
type AuditRepository interface {
	// Append stores a new immutable entry. Entries are never updated or
	// deleted afterwards.
	Append(ctx context.Context, entry *model.AuditEntry) error

	// List returns entries for one entity ordered newest-first, optionally
	// filtered and paginated. nextCursor is empty iff no further entries
	// exist; otherwise it equals the ID of the last returned entry and is an
	// exclusive starting point for the next page.
	List(ctx context.Context, entityType types.AuditEntityType, entityID string, opts ...ListAuditOption) (entries []*model.AuditEntry, nextCursor types.AuditEntryID, err error)
}

// ListAuditOption configures an audit List call
type ListAuditOption func(*ListAuditOptions)

// ListAuditOptions holds the resolved options of one List call
type ListAuditOptions struct {
	Action types.AuditAction
	Cursor types.AuditEntryID
	Limit  int
}

// WithAuditAction filters entries to one action label
func WithAuditAction(action types.AuditAction) ListAuditOption {
	return func(o *ListAuditOptions) {
		o.Action = action
	}
}

// WithAuditCursor resumes listing strictly after the given entry ID
func WithAuditCursor(cursor types.AuditEntryID) ListAuditOption {
	return func(o *ListAuditOptions) {
		o.Cursor = cursor
	}
}

// WithAuditLimit caps the page size. Values above MaxAuditPageSize are
// clamped; zero or negative values fall back to the maximum.
func WithAuditLimit(limit int) ListAuditOption {
	return func(o *ListAuditOptions) {
		o.Limit = limit
	}
}

// ResolveAuditOptions applies the options and clamps the limit
func ResolveAuditOptions(opts []ListAuditOption) ListAuditOptions {
	resolved := ListAuditOptions{Limit: MaxAuditPageSize}
	for _, opt := range opts {
		opt(&resolved)
	}
	if resolved.Limit <= 0 || resolved.Limit > MaxAuditPageSize {
		resolved.Limit = MaxAuditPageSize
	}
	return resolved
}
