package memory

import (
	"sync"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-process repository backend used for development and
// tests. Results and the audit trail share one mutex so that a result
// replace and its audit append are observable together, mirroring the
// transaction boundary of the durable backend.
type Memory struct {
	org     *orgRepository
	product *productRepository
	result  *resultRepository
	audit   *auditRepository
	tokens  *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	mu := &sync.RWMutex{}
	auditRepo := newAuditRepository(mu)
	resultRepo := newResultRepository(mu, auditRepo)

	return &Memory{
		org:     newOrgRepository(),
		product: newProductRepository(),
		result:  resultRepo,
		audit:   auditRepo,
		tokens:  newTokenStore(),
	}
}

func (m *Memory) OrgAssessment() interfaces.OrgAssessmentRepository {
	return m.org
}

func (m *Memory) ProductAssessment() interfaces.ProductAssessmentRepository {
	return m.product
}

func (m *Memory) Result() interfaces.ResultRepository {
	return m.result
}

func (m *Memory) Audit() interfaces.AuditRepository {
	return m.audit
}

func (m *Memory) Close() error {
	return nil
}
