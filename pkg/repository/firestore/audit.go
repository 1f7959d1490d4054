package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// auditDoc is the Firestore document representation of model.AuditEntry.
// The ID is duplicated as a field so queries can order and resume on it.
type auditDoc struct {
	ID         string    `firestore:"ID"`
	EntityType string    `firestore:"EntityType"`
	EntityID   string    `firestore:"EntityID"`
	Action     string    `firestore:"Action"`
	Actor      string    `firestore:"Actor"`
	CreatedAt  time.Time `firestore:"CreatedAt"`
}

func toAuditDoc(e *model.AuditEntry) *auditDoc {
	return &auditDoc{
		ID:         e.ID.String(),
		EntityType: e.EntityType.String(),
		EntityID:   e.EntityID,
		Action:     e.Action.String(),
		Actor:      e.Actor.String(),
		CreatedAt:  e.CreatedAt,
	}
}

func fromAuditDoc(d *auditDoc) *model.AuditEntry {
	return &model.AuditEntry{
		ID:         types.AuditEntryID(d.ID),
		EntityType: types.AuditEntityType(d.EntityType),
		EntityID:   d.EntityID,
		Action:     types.AuditAction(d.Action),
		Actor:      types.UserID(d.Actor),
		CreatedAt:  d.CreatedAt,
	}
}

type auditRepository struct {
	client *firestore.Client
}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{client: client}
}

func (r *auditRepository) Append(ctx context.Context, entry *model.AuditEntry) error {
	doc := r.client.Collection(collectionAudit).Doc(entry.ID.String())
	if _, err := doc.Create(ctx, toAuditDoc(entry)); err != nil {
		return goerr.Wrap(err, "failed to append audit entry", goerr.V("id", entry.ID))
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, entityType types.AuditEntityType, entityID string, opts ...interfaces.ListAuditOption) ([]*model.AuditEntry, types.AuditEntryID, error) {
	resolved := interfaces.ResolveAuditOptions(opts)

	// Entry IDs are UUIDv7, so descending ID order is newest-first and the
	// cursor resumes strictly after an already-seen entry.
	query := r.client.Collection(collectionAudit).
		Where("EntityType", "==", entityType.String()).
		Where("EntityID", "==", entityID).
		OrderBy("ID", firestore.Desc)
	if resolved.Action != "" {
		query = query.Where("Action", "==", resolved.Action.String())
	}
	if resolved.Cursor != "" {
		query = query.StartAfter(resolved.Cursor.String())
	}
	// One extra row tells us whether another page exists
	query = query.Limit(resolved.Limit + 1)

	iter := query.Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.AuditEntry, 0, resolved.Limit)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", goerr.Wrap(err, "failed to iterate audit entries")
		}

		var d auditDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, "", goerr.Wrap(err, "failed to unmarshal audit entry")
		}
		entries = append(entries, fromAuditDoc(&d))
	}

	var nextCursor types.AuditEntryID
	if len(entries) > resolved.Limit {
		entries = entries[:resolved.Limit]
		nextCursor = entries[len(entries)-1].ID
	}

	return entries, nextCursor, nil
}
