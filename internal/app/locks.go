package app

import (
	"sync"

	"github.com/google/uuid"
)

// ProjectLocks serializes read-modify-write sequences per project inside
// this process. Storage-level compare-and-swap covers other replicas.
type ProjectLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*projectLock
}

type projectLock struct {
	mu   sync.Mutex
	refs int
}

func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{locks: make(map[uuid.UUID]*projectLock)}
}

// Lock blocks until the project's lock is held and returns its release func
func (l *ProjectLocks) Lock(projectID uuid.UUID) func() {
	l.mu.Lock()
	pl, ok := l.locks[projectID]
	if !ok {
		pl = &projectLock{}
		l.locks[projectID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()

	return func() {
		pl.mu.Unlock()

		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, projectID)
		}
		l.mu.Unlock()
	}
}

// Len returns the number of projects with a held or awaited lock
func (l *ProjectLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
