package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

type orgRepository struct {
	mu   sync.RWMutex
	orgs map[types.OrgAssessmentID]*model.OrgAssessment
}

func newOrgRepository() *orgRepository {
	return &orgRepository{
		orgs: make(map[types.OrgAssessmentID]*model.OrgAssessment),
	}
}

// copyOrgAnswers creates a deep copy of an org answer snapshot. Each step is
// a pointer, so a plain struct copy would alias the stored steps.
func copyOrgAnswers(a model.OrgAnswers) model.OrgAnswers {
	cloned := model.OrgAnswers{}
	if a.Profile != nil {
		p := *a.Profile
		cloned.Profile = &p
	}
	if a.AIUsage != nil {
		u := *a.AIUsage
		if a.AIUsage.UseCases != nil {
			u.UseCases = make([]string, len(a.AIUsage.UseCases))
			copy(u.UseCases, a.AIUsage.UseCases)
		}
		cloned.AIUsage = &u
	}
	if a.DataGovernance != nil {
		dg := *a.DataGovernance
		cloned.DataGovernance = &dg
	}
	if a.Maturity != nil {
		m := *a.Maturity
		cloned.Maturity = &m
	}
	return cloned
}

// copyOrg creates a deep copy of an org assessment
func copyOrg(a *model.OrgAssessment) *model.OrgAssessment {
	cloned := *a
	cloned.Answers = copyOrgAnswers(a.Answers)
	return &cloned
}

func (r *orgRepository) Create(ctx context.Context, a *model.OrgAssessment) (*model.OrgAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orgs[a.ID]; exists {
		return nil, goerr.New("org assessment already exists", goerr.V("id", a.ID))
	}

	now := time.Now().UTC()
	created := copyOrg(a)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.orgs[created.ID] = created
	return copyOrg(created), nil
}

func (r *orgRepository) Get(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID) (*model.OrgAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	org, exists := r.orgs[id]
	if !exists || org.OwnerID != ownerID {
		// Foreign ownership is indistinguishable from absence
		return nil, goerr.Wrap(types.ErrNotFound, "org assessment not found", goerr.V("id", id))
	}

	return copyOrg(org), nil
}

func (r *orgRepository) List(ctx context.Context, ownerID types.UserID) ([]*model.OrgAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orgs := make([]*model.OrgAssessment, 0)
	for _, org := range r.orgs {
		if org.OwnerID != ownerID {
			continue
		}
		orgs = append(orgs, copyOrg(org))
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
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.orgs[id]
	if !exists || existing.OwnerID != ownerID {
		return nil, goerr.Wrap(types.ErrNotFound, "org assessment not found", goerr.V("id", id))
	}

	updated := copyOrg(existing)
	updated.Answers = answers
	updated.UpdatedAt = time.Now().UTC()

	r.orgs[id] = updated
	return copyOrg(updated), nil
}

func (r *orgRepository) Delete(ctx context.Context, ownerID types.UserID, id types.OrgAssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.orgs[id]
	if !exists || existing.OwnerID != ownerID {
		return goerr.Wrap(types.ErrNotFound, "org assessment not found", goerr.V("id", id))
	}

	delete(r.orgs, id)
	return nil
}

type productRepository struct {
	mu       sync.RWMutex
	products map[types.ProductAssessmentID]*model.ProductAssessment
}

func newProductRepository() *productRepository {
	return &productRepository{
		products: make(map[types.ProductAssessmentID]*model.ProductAssessment),
	}
}

// copyProductAnswers creates a deep copy of a product answer snapshot
func copyProductAnswers(a model.ProductAnswers) model.ProductAnswers {
	cloned := model.ProductAnswers{}
	if a.Overview != nil {
		o := *a.Overview
		cloned.Overview = &o
	}
	if a.Data != nil {
		d := *a.Data
		cloned.Data = &d
	}
	if a.Autonomy != nil {
		au := *a.Autonomy
		cloned.Autonomy = &au
	}
	if a.Impact != nil {
		i := *a.Impact
		cloned.Impact = &i
	}
	if a.Regulatory != nil {
		reg := *a.Regulatory
		if a.Regulatory.Regimes != nil {
			reg.Regimes = make([]string, len(a.Regulatory.Regimes))
			copy(reg.Regimes, a.Regulatory.Regimes)
		}
		cloned.Regulatory = &reg
	}
	return cloned
}

// copyProduct creates a deep copy of a product assessment
func copyProduct(p *model.ProductAssessment) *model.ProductAssessment {
	cloned := *p
	cloned.Answers = copyProductAnswers(p.Answers)
	return &cloned
}

func (r *productRepository) Create(ctx context.Context, p *model.ProductAssessment) (*model.ProductAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[p.ID]; exists {
		return nil, goerr.New("product assessment already exists", goerr.V("id", p.ID))
	}

	now := time.Now().UTC()
	created := copyProduct(p)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.products[created.ID] = created
	return copyProduct(created), nil
}

func (r *productRepository) match(p *model.ProductAssessment, ownerID types.UserID, orgID types.OrgAssessmentID) bool {
	return p.OwnerID == ownerID && p.OrgID == orgID
}

func (r *productRepository) Get(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID) (*model.ProductAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists || !r.match(product, ownerID, orgID) {
		return nil, goerr.Wrap(types.ErrNotFound, "product assessment not found", goerr.V("id", id))
	}

	return copyProduct(product), nil
}

func (r *productRepository) ListByOrg(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID) ([]*model.ProductAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*model.ProductAssessment, 0)
	for _, product := range r.products {
		if !r.match(product, ownerID, orgID) {
			continue
		}
		products = append(products, copyProduct(product))
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
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.products[id]
	if !exists || !r.match(existing, ownerID, orgID) {
		return nil, goerr.Wrap(types.ErrNotFound, "product assessment not found", goerr.V("id", id))
	}

	updated := copyProduct(existing)
	updated.Answers = answers
	updated.UpdatedAt = time.Now().UTC()

	r.products[id] = updated
	return copyProduct(updated), nil
}

func (r *productRepository) Delete(ctx context.Context, ownerID types.UserID, orgID types.OrgAssessmentID, id types.ProductAssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.products[id]
	if !exists || !r.match(existing, ownerID, orgID) {
		return goerr.Wrap(types.ErrNotFound, "product assessment not found", goerr.V("id", id))
	}

	delete(r.products, id)
	return nil
}
