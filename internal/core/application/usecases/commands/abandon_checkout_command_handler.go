package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// AbandonCheckoutCommandHandler closes a session on the shopper's request.
// Any quote still running is cancelled and its late result is ignored.
type AbandonCheckoutCommandHandler struct {
	sessions ports.SessionRepository
	tracker  *QuoteTracker
}

func NewAbandonCheckoutCommandHandler(sessions ports.SessionRepository, tracker *QuoteTracker) AbandonCheckoutCommandHandler {
	return AbandonCheckoutCommandHandler{
		sessions: sessions,
		tracker:  tracker,
	}
}

func (h *AbandonCheckoutCommandHandler) Handle(ctx context.Context, cmd SessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	h.tracker.Cancel(session.ID())
	session.Abandon()

	return h.sessions.Save(ctx, session)
}
