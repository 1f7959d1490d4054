package usecase

import (
	"sync"

	"github.com/govern-lab/aegis/pkg/domain/types"
)

// entityLocker serializes mutations per assessment. A recompute and a
// checklist patch racing on the same assessment is a read-modify-write
// hazard: a patch based on a pre-recompute result would silently discard the
// freshly generated checklist baseline. Different assessments never contend.
type entityLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEntityLocker() *entityLocker {
	return &entityLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the per-assessment mutex and returns its unlock function
func (l *entityLocker) Lock(entityType types.AuditEntityType, entityID string) func() {
	key := entityType.String() + ":" + entityID

	l.mu.Lock()
	lock, exists := l.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
