package commands

import (
	"context"
	"sync"

	"storefront/internal/core/domain/model/kernel"
)

type trackedQuote struct {
	seq    uint64
	cancel context.CancelFunc
}

// QuoteTracker keeps at most one in-flight delivery quote per session in this
// process. Tracking a new quote cancels the previous one.
type QuoteTracker struct {
	mu       sync.Mutex
	inFlight map[string]trackedQuote
}

func NewQuoteTracker() *QuoteTracker {
	return &QuoteTracker{inFlight: make(map[string]trackedQuote)}
}

// Track derives a cancellable context for the quote with sequence seq. The
// returned release func must be called once the quote has finished.
func (t *QuoteTracker) Track(ctx context.Context, sessionID kernel.UUID, seq uint64) (context.Context, func()) {
	quoteCtx, cancel := context.WithCancel(ctx)
	key := sessionID.String()

	t.mu.Lock()
	if previous, ok := t.inFlight[key]; ok {
		previous.cancel()
	}
	t.inFlight[key] = trackedQuote{seq: seq, cancel: cancel}
	t.mu.Unlock()

	release := func() {
		cancel()
		t.mu.Lock()
		defer t.mu.Unlock()
		if current, ok := t.inFlight[key]; ok && current.seq == seq {
			delete(t.inFlight, key)
		}
	}
	return quoteCtx, release
}

// Cancel stops the in-flight quote of a session, if any.
func (t *QuoteTracker) Cancel(sessionID kernel.UUID) {
	key := sessionID.String()

	t.mu.Lock()
	defer t.mu.Unlock()
	if current, ok := t.inFlight[key]; ok {
		current.cancel()
		delete(t.inFlight, key)
	}
}

// InFlight reports how many quotes are running.
func (t *QuoteTracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inFlight)
}
