package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// orgDoc is the Firestore document representation of model.OrgAssessment
type orgDoc struct {
	ID        string           `firestore:"ID"`
	OwnerID   string           `firestore:"OwnerID"`
	Name      string           `firestore:"Name"`
	Answers   model.OrgAnswers `firestore:"Answers"`
	CreatedAt time.Time        `firestore:"CreatedAt"`
	UpdatedAt time.Time        `firestore:"UpdatedAt"`
}

func toOrgDoc(a *model.OrgAssessment) *orgDoc {
	return &orgDoc{
		ID:        a.ID.String(),
		OwnerID:   a.OwnerID.String(),
		Name:      a.Name,
		Answers:   a.Answers,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromOrgDoc(d *orgDoc) *model.OrgAssessment {
	return &model.OrgAssessment{
		ID:        types.OrgAssessmentID(d.ID),
		OwnerID:   types.UserID(d.OwnerID),
		Name:      d.Name,
		Answers:   d.Answers,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type orgRepository struct {
	client *firestore.Client
}

func newOrgRepository(client *firestore.Client) *orgRepository {
	return &orgRepository{client: client}
}

func (r *orgRepository) doc(id types.OrgAssessmentID) *firestore.DocumentRef {
	return r.client.Collection(collectionOrgs).Doc(id.String())
}

func (r *orgRepository) Create(ctx context.Context, a *model.OrgAssessment) (*model.OrgAssessment, error) {
	now := time.Now().UTC()
	created := *a
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.doc(created.ID).Create(ctx, toOrgDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create org assessment", goerr.V("id", created.ID))
	}

	return &created, nil
}

// getOwned fetches the doc and enforces ownership. Foreign records surface
// as types.ErrNotFound, never as a permission error.
func (r *orgRepository) getOwned(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID) (*model.OrgAssessment, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "org assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get org assessment", goerr.V("id", id))
	}

	var d orgDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal org assessment", goerr.V("id", id))
	}

	org := fromOrgDoc(&d)
	if org.OwnerID != ownerID {
		return nil, goerr.Wrap(types.ErrNotFound, "org assessment not found", goerr.V("id", id))
	}
	return org, nil
}

func (r *orgRepository) Get(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID) (*model.OrgAssessment, error) {
	return r.getOwned(ctx, ownerID, id)
}

func (r *orgRepository) List(ctx context.Context, ownerID types.UserID) ([]*model.OrgAssessment, error) {
	iter := r.client.Collection(collectionOrgs).
		Where("OwnerID", "==", ownerID.String()).
		Documents(ctx)
	defer iter.Stop()

	orgs := make([]*model.OrgAssessment, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate org assessments")
		}

		var d orgDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal org assessment")
		}
		orgs = append(orgs, fromOrgDoc(&d))
	}
	sort.Slice(orgs, func(i, j int) bool {
		if orgs[i].CreatedAt.Equal(orgs[j].CreatedAt) {
			return orgs[i].ID < orgs[j].ID
		}
		return orgs[i].CreatedAt.Before(orgs[j].CreatedAt)
	})

	return orgs, nil
}

func (r *orgRepository) UpdateAnswers(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID, answers model.OrgAnswers) (*model.OrgAssessment, error) {
	existing, err := r.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	existing.Answers = answers
	existing.UpdatedAt = time.Now().UTC()

	if _, err := r.doc(id).Set(ctx, toOrgDoc(existing)); err != nil {
		return nil, goerr.Wrap(err, "failed to update org assessment answers", goerr.V("id", id))
	}

	return existing, nil
}

func (r *orgRepository) Delete(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID) error {
	if _, err := r.getOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if _, err := r.doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete org assessment", goerr.V("id", id))
	}
	return nil
}

// productDoc is the Firestore document representation of model.ProductAssessment
type productDoc struct {
	ID        string               `firestore:"ID"`
	OrgID     string               `firestore:"OrgID"`
	OwnerID   string               `firestore:"OwnerID"`
	Name      string               `firestore:"Name"`
	Answers   model.ProductAnswers `firestore:"Answers"`
	CreatedAt time.Time            `firestore:"CreatedAt"`
	UpdatedAt time.Time            `firestore:"UpdatedAt"`
}

func toProductDoc(p *model.ProductAssessment) *productDoc {
	return &productDoc{
		ID:        p.ID.String(),
		OrgID:     p.OrgID.String(),
		OwnerID:   p.OwnerID.String(),
		Name:      p.Name,
		Answers:   p.Answers,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromProductDoc(d *productDoc) *model.ProductAssessment {
	return &model.ProductAssessment{
		ID:        types.ProductAssessmentID(d.ID),
		OrgID:     types.OrgAssessmentID(d.OrgID),
		OwnerID:   types.UserID(d.OwnerID),
		Name:      d.Name,
		Answers:   d.Answers,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type productRepository struct {
	client *firestore.Client
}

func newProductRepository(client *firestore.Client) *productRepository {
	return &productRepository{client: client}
}

func (r *productRepository) doc(id types.ProductAssessmentID) *firestore.DocumentRef {
	return r.client.Collection(collectionProducts).Doc(id.String())
}

func (r *productRepository) Create(ctx context.Context, p *model.ProductAssessment) (*model.ProductAssessment, error) {
	now := time.Now().UTC()
	created := *p
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.doc(created.ID).Create(ctx, toProductDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create product assessment", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *productRepository) getOwned(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID) (*model.ProductAssessment, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "product assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get product assessment", goerr.V("id", id))
	}

	var d productDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal product assessment", goerr.V("id", id))
	}

	product := fromProductDoc(&d)
	if product.OwnerID != ownerID || product.OrgID != orgID {
		return nil, goerr.Wrap(types.ErrNotFound, "product assessment not found", goerr.V("id", id))
	}
	return product, nil
}

func (r *productRepository) Get(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID) (*model.ProductAssessment, error) {
	return r.getOwned(ctx, ownerID, orgID, id)
}

func (r *productRepository) ListByOrg(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID) ([]*model.ProductAssessment, error) {
	iter := r.client.Collection(collectionProducts).
		Where("OwnerID", "==", ownerID.String()).
		Where("OrgID", "==", orgID.String()).
		Documents(ctx)
	defer iter.Stop()

	products := make([]*model.ProductAssessment, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate product assessments")
		}

		var d productDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal product assessment")
		}
		products = append(products, fromProductDoc(&d))
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})

	return products, nil
}

func (r *productRepository) UpdateAnswers(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID, answers model.ProductAnswers) (*model.ProductAssessment, error) {
	existing, err := r.getOwned(ctx, ownerID, orgID, id)
	if err != nil {
		return nil, err
	}

	existing.Answers = answers
	existing.UpdatedAt = time.Now().UTC()

	if _, err := r.doc(id).Set(ctx, toProductDoc(existing)); err != nil {
		return nil, goerr.Wrap(err, "failed to update product assessment answers", goerr.V("id", id))
	}

	return existing, nil
}

func (r *productRepository) Delete(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID) error {
	if _, err := r.getOwned(ctx, ownerID, orgID, id); err != nil {
		return err
	}

	if _, err := r.doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete product assessment", goerr.V("id", id))
	}
	return nil
}
