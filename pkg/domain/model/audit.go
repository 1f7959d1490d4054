package model

import (
	"time"

	"github.com/govern-lab/aegis/pkg/domain/types"
)

// AuditEntry is one immutable record of a mutating action. Entries are never
// updated or deleted; retrieval is newest-first and the entry ID serves as
// the pagination cursor.
type AuditEntry struct {
	ID         types.AuditEntryID
	EntityType types.AuditEntityType
	EntityID   string
	Action     types.AuditAction
	Actor      types.UserID
	CreatedAt  time.Time
}

// NewAuditEntry builds an entry with a fresh time-ordered ID
func NewAuditEntry(entityType types.AuditEntityType, entityID string, action types.AuditAction, actor types.UserID) *AuditEntry {
	return &AuditEntry{
		ID:         types.NewAuditEntryID(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		CreatedAt:  time.Now().UTC(),
	}
}
