package services

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// ErrSessionNotReady is returned when building an order from a session that
// is not on its final step.
var ErrSessionNotReady = errors.New("checkout session is not ready to be ordered")

// OrderDraftBuilder is a domain service that snapshots a checkout session
// into an Order.
//
// Example usage:
//
//	builder := NewOrderDraftBuilder()
//	o, err := builder.Build(kernel.NewUUID(), session, time.Now())
//	if errors.Is(err, ErrSessionNotReady) {
//	    // The shopper has not reached Confirm yet
//	    return
//	}
//	link, _ := messenger.HandOff(session.Store().WhatsAppNumber(), o.Summary())
type OrderDraftBuilder struct{}

func NewOrderDraftBuilder() OrderDraftBuilder {
	return OrderDraftBuilder{}
}

// Build creates a Pending order. The session must be on Confirm; the delivery
// fee is taken from its current quote.
func (b OrderDraftBuilder) Build(id kernel.UUID, session *checkout.Session, createdAt time.Time) (*order.Order, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if session.CurrentStep() != checkout.StepConfirm {
		return nil, ErrSessionNotReady
	}

	fulfilment := order.Fulfilment{Method: session.DeliveryMethod()}
	if session.DeliveryMethod().IsDelivery() {
		address, ok := session.Address()
		if !ok {
			return nil, checkout.ErrAddressIsRequired
		}
		quote, ok := session.CurrentQuote()
		if !ok {
			return nil, checkout.ErrQuoteIsRequired
		}

		fulfilment.Address = &address
		if fee, known := quote.Fee(); known {
			fulfilment.Fee = &fee
		} else {
			fulfilment.FeeMessage = quote.Message()
		}
	}

	return order.NewOrder(order.Draft{
		ID:           id,
		StoreID:      session.Store().ID(),
		Customer:     session.Customer(),
		Items:        session.Cart().Items(),
		Fulfilment:   fulfilment,
		Payment:      session.Payment(),
		Observations: session.Observations(),
		CreatedAt:    createdAt,
	})
}
