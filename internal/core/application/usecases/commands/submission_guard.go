package commands

import (
	"sync"

	"storefront/internal/core/domain/model/kernel"
)

// SubmissionGuard refuses a second submission for a session while one is
// running in this process. The submitting flag stored on the session covers
// the other replicas.
type SubmissionGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
}

func NewSubmissionGuard() *SubmissionGuard {
	return &SubmissionGuard{running: make(map[string]struct{})}
}

func (g *SubmissionGuard) TryAcquire(sessionID kernel.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := sessionID.String()
	if _, ok := g.running[key]; ok {
		return false
	}
	g.running[key] = struct{}{}
	return true
}

func (g *SubmissionGuard) Release(sessionID kernel.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, sessionID.String())
}
