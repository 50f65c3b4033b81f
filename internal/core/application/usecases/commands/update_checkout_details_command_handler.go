package commands

import (
	"context"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// UpdateCheckoutDetailsCommandHandler stores shopper input on the session.
// Delivery modes that need no destination are quoted right away, so the
// shopper never waits for a flat or manual quote. A change that alters the
// route already walked, such as switching to delivery on Confirm, moves the
// session back to the first step of the new route the shopper has not passed.
type UpdateCheckoutDetailsCommandHandler struct {
	sessions ports.SessionRepository
	flow     checkout.Flow
	pricer   services.DeliveryPricer
	tracker  *QuoteTracker
}

func NewUpdateCheckoutDetailsCommandHandler(
	sessions ports.SessionRepository,
	flow checkout.Flow,
	pricer services.DeliveryPricer,
	tracker *QuoteTracker,
) UpdateCheckoutDetailsCommandHandler {
	return UpdateCheckoutDetailsCommandHandler{
		sessions: sessions,
		flow:     flow,
		pricer:   pricer,
		tracker:  tracker,
	}
}

func (h *UpdateCheckoutDetailsCommandHandler) Handle(ctx context.Context, cmd UpdateCheckoutDetailsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	pendingBefore := session.IsQuotePending()
	if err = applyDetails(session, cmd.Details()); err != nil {
		return err
	}
	if pendingBefore && !session.IsQuotePending() {
		h.tracker.Cancel(session.ID())
	}
	h.flow.Reroute(session)

	if err = h.quoteLocally(ctx, session); err != nil {
		return err
	}

	return h.sessions.Save(ctx, session)
}

// quoteLocally prices delivery for policies that do not depend on the
// destination. Distance and zone quotes go through QuoteDeliveryCommand.
func (h *UpdateCheckoutDetailsCommandHandler) quoteLocally(ctx context.Context, session *checkout.Session) error {
	policy := session.Store().Policy()
	if !session.DeliveryMethod().IsDelivery() || policy.Mode().RequiresDestination() {
		return nil
	}
	if _, ok := session.CurrentQuote(); ok {
		return nil
	}

	ticket, err := session.BeginQuote()
	if err != nil {
		return err
	}
	quote, err := h.pricer.Quote(ctx, services.QuoteRequest{
		StoreID:  session.Store().ID(),
		Policy:   policy,
		Origin:   session.Store().Origin(),
		Subtotal: session.Subtotal(),
	})
	if err != nil {
		session.FailQuote(ticket)
		return err
	}
	session.ApplyQuote(ticket, quote)
	return nil
}

func applyDetails(session *checkout.Session, d CheckoutDetails) error {
	if d.Customer != nil {
		if err := session.SetCustomer(*d.Customer); err != nil {
			return err
		}
	}
	if d.DeliveryMethod != nil {
		if err := session.SetDeliveryMethod(*d.DeliveryMethod); err != nil {
			return err
		}
	}
	if d.Address != nil {
		if err := session.SetAddress(*d.Address); err != nil {
			return err
		}
	}
	if d.Payment != nil {
		if err := session.SetPayment(*d.Payment); err != nil {
			return err
		}
	}
	if d.Observations != nil {
		if err := session.SetObservations(*d.Observations); err != nil {
			return err
		}
	}
	return nil
}
