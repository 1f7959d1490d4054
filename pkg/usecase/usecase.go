package usecase

import (
	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model/config"
)

type UseCases struct {
	repo       interfaces.Repository
	Assessment *AssessmentUseCase
	Result     *ResultUseCase
	Audit      *AuditUseCase
	Auth       AuthUseCaseInterface
}

type Option func(*UseCases)

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// New wires the use cases around one repository, the loaded reference
// catalog, and the scoring policy table.
func New(repo interfaces.Repository, cat *catalog.Catalog, scoring *config.ScoringConfig, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	locker := newEntityLocker()
	uc.Result = NewResultUseCase(repo, cat, scoring, locker)
	uc.Assessment = NewAssessmentUseCase(repo, uc.Result)
	uc.Audit = NewAuditUseCase(repo)

	return uc
}
