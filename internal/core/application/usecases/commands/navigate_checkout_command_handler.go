package commands

import (
	"context"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/ports"
)

// NavigateCheckoutCommandHandler applies Next or Back to a session. Moving
// forward runs the gate of the step being left; a failed gate leaves the
// session unchanged and is returned as *checkout.StepValidationError.
type NavigateCheckoutCommandHandler struct {
	sessions ports.SessionRepository
	flow     checkout.Flow
	tracker  *QuoteTracker
}

func NewNavigateCheckoutCommandHandler(
	sessions ports.SessionRepository,
	flow checkout.Flow,
	tracker *QuoteTracker,
) NavigateCheckoutCommandHandler {
	return NavigateCheckoutCommandHandler{
		sessions: sessions,
		flow:     flow,
		tracker:  tracker,
	}
}

// Handle returns the step the session is on afterwards.
func (h *NavigateCheckoutCommandHandler) Handle(ctx context.Context, cmd NavigateCheckoutCommand) (checkout.Step, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return "", err
	}

	switch cmd.Direction() {
	case DirectionBack:
		pendingBefore := session.IsQuotePending()
		if err = h.flow.Back(session); err != nil {
			return "", err
		}
		if pendingBefore && !session.IsQuotePending() {
			h.tracker.Cancel(session.ID())
		}
	default:
		if err = h.flow.Next(session); err != nil {
			return "", err
		}
	}

	if err = h.sessions.Save(ctx, session); err != nil {
		return "", err
	}

	return session.CurrentStep(), nil
}
