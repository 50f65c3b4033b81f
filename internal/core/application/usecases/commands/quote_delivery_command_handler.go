package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// ErrQuoteSuperseded is returned when a newer request, an address change, a
// step back or an abandon overtook the quote.
var ErrQuoteSuperseded = errors.New("delivery quote was superseded")

// QuoteDeliveryCommandHandler prices delivery for the session's current
// address. The session is saved as pending before the collaborator is called
// and reloaded afterwards, so a result only lands if its ticket is still the
// latest one.
type QuoteDeliveryCommandHandler struct {
	sessions ports.SessionRepository
	pricer   services.DeliveryPricer
	tracker  *QuoteTracker
	logger   *slog.Logger
}

func NewQuoteDeliveryCommandHandler(
	sessions ports.SessionRepository,
	pricer services.DeliveryPricer,
	tracker *QuoteTracker,
	logger *slog.Logger,
) QuoteDeliveryCommandHandler {
	return QuoteDeliveryCommandHandler{
		sessions: sessions,
		pricer:   pricer,
		tracker:  tracker,
		logger:   logger.With("component", "QuoteDeliveryCommandHandler"),
	}
}

func (h *QuoteDeliveryCommandHandler) Handle(ctx context.Context, cmd SessionCommand) (delivery.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return delivery.Quote{}, err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return delivery.Quote{}, err
	}

	ticket, err := session.BeginQuote()
	if err != nil {
		return delivery.Quote{}, err
	}
	if err = h.sessions.Save(ctx, session); err != nil {
		return delivery.Quote{}, err
	}

	quoteCtx, release := h.tracker.Track(ctx, session.ID(), ticket.Seq)
	quote, quoteErr := h.pricer.Quote(quoteCtx, services.QuoteRequest{
		StoreID:     session.Store().ID(),
		Policy:      session.Store().Policy(),
		Origin:      session.Store().Origin(),
		Destination: ticket.Destination,
		Subtotal:    session.Subtotal(),
	})
	release()

	if errors.Is(quoteErr, context.Canceled) && ctx.Err() == nil {
		return delivery.Quote{}, ErrQuoteSuperseded
	}

	// The session may have moved on while the collaborator was answering. The
	// caller may be gone too; the pending mark is settled either way.
	storeCtx := context.WithoutCancel(ctx)
	latest, err := h.sessions.Get(storeCtx, cmd.SessionID())
	if err != nil {
		return delivery.Quote{}, err
	}

	if quoteErr != nil {
		if latest.FailQuote(ticket) {
			if err = h.sessions.Save(storeCtx, latest); err != nil {
				h.logger.ErrorContext(ctx, "failed to clear pending quote",
					"sessionID", latest.ID().String(), "error", err)
			}
		}
		if ctx.Err() != nil {
			return delivery.Quote{}, ctx.Err()
		}
		return delivery.Quote{}, quoteErr
	}

	if !latest.ApplyQuote(ticket, quote) {
		h.logger.InfoContext(ctx, "discarding stale delivery quote",
			"sessionID", latest.ID().String(), "seq", ticket.Seq)
		return delivery.Quote{}, ErrQuoteSuperseded
	}
	if err = h.sessions.Save(storeCtx, latest); err != nil {
		return delivery.Quote{}, err
	}

	return quote, nil
}
