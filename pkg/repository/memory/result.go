package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/model"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

type resultKey struct {
	entityType types.AuditEntityType
	entityID   string
}

// resultRepository shares its mutex with the audit repository: the
// {replace result, append audit} pair commits under a single lock so
// readers never observe one half without the other.
type resultRepository struct {
	mu      *sync.RWMutex
	results map[resultKey]*model.AssessmentResult
	audit   *auditRepository
}

func newResultRepository(mu *sync.RWMutex, audit *auditRepository) *resultRepository {
	return &resultRepository{
		mu:      mu,
		results: make(map[resultKey]*model.AssessmentResult),
		audit:   audit,
	}
}

func copyControlIDs(ids []types.ControlID) []types.ControlID {
	if ids == nil {
		return nil
	}
	cloned := make([]types.ControlID, len(ids))
	copy(cloned, ids)
	return cloned
}

// copyBlueprint creates a deep copy of a blueprint
func copyBlueprint(b model.Blueprint) model.Blueprint {
	if b.Functions == nil {
		return model.Blueprint{}
	}
	functions := make([]model.BlueprintFunction, len(b.Functions))
	for i, fn := range b.Functions {
		cloned := fn
		cloned.Categories = make([]model.BlueprintCategory, len(fn.Categories))
		for j, cat := range fn.Categories {
			clonedCat := cat
			clonedCat.Subcategories = make([]model.BlueprintSubcategory, len(cat.Subcategories))
			for k, sub := range cat.Subcategories {
				clonedSub := sub
				clonedSub.ControlIDs = copyControlIDs(sub.ControlIDs)
				clonedCat.Subcategories[k] = clonedSub
			}
			cloned.Categories[j] = clonedCat
		}
		functions[i] = cloned
	}
	return model.Blueprint{Functions: functions}
}

// copyChecklist creates a deep copy of a checklist
func copyChecklist(c model.Checklist) model.Checklist {
	if c.Phases == nil {
		return model.Checklist{}
	}
	phases := make([]model.ChecklistPhase, len(c.Phases))
	for i, phase := range c.Phases {
		cloned := phase
		cloned.Items = make([]model.ChecklistItem, len(phase.Items))
		copy(cloned.Items, phase.Items)
		phases[i] = cloned
	}
	return model.Checklist{Phases: phases}
}

// copyResult creates a deep copy of a result so callers can never reach the
// stored record through a returned one
func copyResult(res *model.AssessmentResult) *model.AssessmentResult {
	cloned := *res
	cloned.ControlIDs = copyControlIDs(res.ControlIDs)
	cloned.Blueprint = copyBlueprint(res.Blueprint)
	cloned.Checklist = copyChecklist(res.Checklist)
	if res.PolicyDrafts != nil {
		cloned.PolicyDrafts = make([]model.PolicyDraft, len(res.PolicyDrafts))
		copy(cloned.PolicyDrafts, res.PolicyDrafts)
	}
	return &cloned
}

func (r *resultRepository) Get(ctx context.Context, entityType types.AuditEntityType, entityID string) (*model.AssessmentResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, exists := r.results[resultKey{entityType, entityID}]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotYetComputed, "no result stored for assessment",
			goerr.V("entity_type", entityType), goerr.V("entity_id", entityID))
	}

	return copyResult(res), nil
}

func (r *resultRepository) Replace(ctx context.Context, result *model.AssessmentResult, entry *model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[resultKey{result.EntityType, result.EntityID}] = copyResult(result)
	r.audit.appendLocked(entry)
	return nil
}

func (r *resultRepository) PatchChecklist(ctx context.Context, entityType types.AuditEntityType, entityID string, checklist model.Checklist, entry *model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.results[resultKey{entityType, entityID}]
	if !exists {
		return goerr.Wrap(types.ErrNotYetComputed, "cannot patch checklist before first compute",
			goerr.V("entity_type", entityType), goerr.V("entity_id", entityID))
	}

	patched := copyResult(existing)
	patched.Checklist = copyChecklist(checklist)

	r.results[resultKey{entityType, entityID}] = patched
	r.audit.appendLocked(entry)
	return nil
}

func (r *resultRepository) Delete(ctx context.Context, entityType types.AuditEntityType, entityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.results, resultKey{entityType, entityID})
	return nil
}
