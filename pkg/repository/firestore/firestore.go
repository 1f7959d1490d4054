package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
)

const (
	collectionOrgs     = "org_assessments"
	collectionProducts = "product_assessments"
	collectionResults  = "assessment_results"
	collectionAudit    = "audit_log"
	collectionTokens   = "tokens"
)

// Firestore is the durable repository backend
type Firestore struct {
	client  *firestore.Client
	org     *orgRepository
	product *productRepository
	result  *resultRepository
	audit   *auditRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	return &Firestore{
		client:  client,
		org:     newOrgRepository(client),
		product: newProductRepository(client),
		result:  newResultRepository(client),
		audit:   newAuditRepository(client),
	}, nil
}

func (f *Firestore) OrgAssessment() interfaces.OrgAssessmentRepository {
	return f.org
}

func (f *Firestore) ProductAssessment() interfaces.ProductAssessmentRepository {
	return f.product
}

func (f *Firestore) Result() interfaces.ResultRepository {
	return f.result
}

func (f *Firestore) Audit() interfaces.AuditRepository {
	return f.audit
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
