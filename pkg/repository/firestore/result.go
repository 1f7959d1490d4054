package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// resultDoc is the Firestore document representation of
// model.AssessmentResult. The nested artifact structs serialize as-is.
type resultDoc struct {
	EntityType   string              `firestore:"EntityType"`
	EntityID     string              `firestore:"EntityID"`
	RiskScore    int                 `firestore:"RiskScore"`
	RiskTier     string              `firestore:"RiskTier"`
	ControlIDs   []string            `firestore:"ControlIDs"`
	Blueprint    model.Blueprint     `firestore:"Blueprint"`
	PolicyDrafts []model.PolicyDraft `firestore:"PolicyDrafts"`
	Checklist    model.Checklist     `firestore:"Checklist"`
	ComputedAt   time.Time           `firestore:"ComputedAt"`
}

func toResultDoc(res *model.AssessmentResult) *resultDoc {
	controlIDs := make([]string, len(res.ControlIDs))
	for i, id := range res.ControlIDs {
		controlIDs[i] = id.String()
	}
	return &resultDoc{
		EntityType:   res.EntityType.String(),
		EntityID:     res.EntityID,
		RiskScore:    res.RiskScore,
		RiskTier:     res.RiskTier.String(),
		ControlIDs:   controlIDs,
		Blueprint:    res.Blueprint,
		PolicyDrafts: res.PolicyDrafts,
		Checklist:    res.Checklist,
		ComputedAt:   res.ComputedAt,
	}
}

func fromResultDoc(d *resultDoc) *model.AssessmentResult {
	controlIDs := make([]types.ControlID, len(d.ControlIDs))
	for i, id := range d.ControlIDs {
		controlIDs[i] = types.ControlID(id)
	}
	return &model.AssessmentResult{
		EntityType:   types.AuditEntityType(d.EntityType),
		EntityID:     d.EntityID,
		RiskScore:    d.RiskScore,
		RiskTier:     types.RiskTier(d.RiskTier),
		ControlIDs:   controlIDs,
		Blueprint:    d.Blueprint,
		PolicyDrafts: d.PolicyDrafts,
		Checklist:    d.Checklist,
		ComputedAt:   d.ComputedAt,
	}
}

type resultRepository struct {
	client *firestore.Client
}

func newResultRepository(client *firestore.Client) *resultRepository {
	return &resultRepository{client: client}
}

func (r *resultRepository) doc(entityType types.AuditEntityType, entityID string) *firestore.DocumentRef {
	return r.client.Collection(collectionResults).Doc(fmt.Sprintf("%s:%s", entityType, entityID))
}

func (r *resultRepository) auditDoc(entry *model.AuditEntry) *firestore.DocumentRef {
	return r.client.Collection(collectionAudit).Doc(entry.ID.String())
}

func (r *resultRepository) Get(ctx context.Context, entityType types.AuditEntityType, entityID string) (*model.AssessmentResult, error) {
	snap, err := r.doc(entityType, entityID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotYetComputed, "no result stored for assessment",
				goerr.V("entity_type", entityType), goerr.V("entity_id", entityID))
		}
		return nil, goerr.Wrap(err, "failed to get assessment result", goerr.V("entity_id", entityID))
	}

	var d resultDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment result", goerr.V("entity_id", entityID))
	}

	return fromResultDoc(&d), nil
}

// Replace commits the whole-record result replace and the audit append in
// one Firestore transaction; on failure neither write is retained.
func (r *resultRepository) Replace(ctx context.Context, result *model.AssessmentResult, entry *model.AuditEntry) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(r.doc(result.EntityType, result.EntityID), toResultDoc(result)); err != nil {
			return err
		}
		return tx.Set(r.auditDoc(entry), toAuditDoc(entry))
	})
	if err != nil {
		return goerr.Wrap(err, "failed to replace assessment result",
			goerr.V("entity_type", result.EntityType), goerr.V("entity_id", result.EntityID))
	}
	return nil
}

func (r *resultRepository) PatchChecklist(ctx context.Context, entityType types.AuditEntityType, entityID string, checklist model.Checklist, entry *model.AuditEntry) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(r.doc(entityType, entityID))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotYetComputed, "cannot patch checklist before first compute",
					goerr.V("entity_type", entityType), goerr.V("entity_id", entityID))
			}
			return err
		}

		var d resultDoc
		if err := snap.DataTo(&d); err != nil {
			return err
		}
		d.Checklist = checklist

		if err := tx.Set(r.doc(entityType, entityID), &d); err != nil {
			return err
		}
		return tx.Set(r.auditDoc(entry), toAuditDoc(entry))
	})
	if err != nil {
		// The sentinel chain from inside the transaction is preserved so
		// callers can still match types.ErrNotYetComputed.
		return err
	}
	return nil
}

func (r *resultRepository) Delete(ctx context.Context, entityType types.AuditEntityType, entityID string) error {
	if _, err := r.doc(entityType, entityID).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment result", goerr.V("entity_id", entityID))
	}
	return nil
}
