// Package queries contains read operations of the checkout service.
// Session and store reads go through ports; order listings read the
// database directly with raw SQL.
package queries

import (
	"errors"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/pkg/guard"
)

var ErrGetCheckoutQueryIsNotConstructed = errors.New(
	"GetCheckoutQuery must be created via NewGetCheckoutQuery constructor",
)

// GetCheckoutQuery reads the current state of a checkout session.
type GetCheckoutQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCheckoutQuery(sessionID kernel.UUID) (GetCheckoutQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetCheckoutQuery{}, err
	}
	return GetCheckoutQuery{sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCheckoutQuery) Validate() error {
	return q.guard.Validate(ErrGetCheckoutQueryIsNotConstructed)
}

func (q GetCheckoutQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// CheckoutLine is one cart line of the view.
type CheckoutLine struct {
	CatalogItemID string
	Name          string
	Quantity      int
	UnitPrice     kernel.Money
	LineTotal     kernel.Money
	VariantLabel  string
	OptionLabels  []string
}

// GetCheckoutQueryResponse is what a storefront renders for a session.
// DeliveryFee is nil when no fee is known yet or the fee is settled later.
type GetCheckoutQueryResponse struct {
	ID             kernel.UUID
	StoreID        kernel.UUID
	StoreName      string
	Step           checkout.Step
	Steps          []checkout.Step
	Lines          []CheckoutLine
	Customer       checkout.Customer
	DeliveryMethod checkout.DeliveryMethod
	Address        *checkout.Address
	Quote          *delivery.Quote
	QuotePending   bool
	Payment        payment.Selection
	Observations   string
	Subtotal       kernel.Money
	DeliveryFee    *kernel.Money
	Total          kernel.Money
	Settlement     *payment.Settlement
	StoreOpen      bool
	Submitting     bool
	Closed         bool
}
