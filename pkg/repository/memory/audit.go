package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

type auditRepository struct {
	mu      *sync.RWMutex
	entries []*model.AuditEntry
}

func newAuditRepository(mu *sync.RWMutex) *auditRepository {
	return &auditRepository{mu: mu}
}

// copyEntry creates a copy of an audit entry. Entries hold only scalar
// fields, so a struct copy is already complete.
func copyEntry(e *model.AuditEntry) *model.AuditEntry {
	cloned := *e
	return &cloned
}

// appendLocked stores an entry while the shared mutex is already held by a
// result write
func (r *auditRepository) appendLocked(entry *model.AuditEntry) {
	r.entries = append(r.entries, copyEntry(entry))
}

func (r *auditRepository) Append(ctx context.Context, entry *model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appendLocked(entry)
	return nil
}

func (r *auditRepository) List(ctx context.Context, entityType types.AuditEntityType, entityID string, opts ...interfaces.ListAuditOption) ([]*model.AuditEntry, types.AuditEntryID, error) {
	resolved := interfaces.ResolveAuditOptions(opts)

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Entry IDs are time-ordered, so descending ID order is newest-first and
	// entries appended after a page was issued never fall inside it.
	matched := make([]*model.AuditEntry, 0)
	for _, entry := range r.entries {
		if entry.EntityType != entityType || entry.EntityID != entityID {
			continue
		}
		if resolved.Action != "" && entry.Action != resolved.Action {
			continue
		}
		if resolved.Cursor != "" && entry.ID >= resolved.Cursor {
			continue
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	var nextCursor types.AuditEntryID
	if len(matched) > resolved.Limit {
		matched = matched[:resolved.Limit]
		nextCursor = matched[len(matched)-1].ID
	}

	page := make([]*model.AuditEntry, len(matched))
	for i, entry := range matched {
		page[i] = copyEntry(entry)
	}

	return page, nextCursor, nil
}
