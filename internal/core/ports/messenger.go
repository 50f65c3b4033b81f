package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// Messenger hands a finished order over to the merchant's chat channel. The
// hand-off is fire-and-forget: the shopper opens the returned link.
type Messenger interface {
	HandOff(phone string, text string) (link string, err error)
}

// OrderEventPublisher announces submitted orders to other services.
type OrderEventPublisher interface {
	PublishOrderSubmitted(ctx context.Context, o *order.Order) error
}
