package commands

import (
	"errors"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/pkg/guard"
)

var (
	ErrUpdateCheckoutDetailsCommandIsNotConstructed = errors.New(
		"UpdateCheckoutDetailsCommand must be created via NewUpdateCheckoutDetailsCommand constructor",
	)
	ErrNothingToUpdate = errors.New("no checkout details to update")
)

// CheckoutDetails holds the fields a shopper edits. Nil fields are left unchanged.
type CheckoutDetails struct {
	Customer       *checkout.Customer
	DeliveryMethod *checkout.DeliveryMethod
	Address        *checkout.Address
	Payment        *payment.Selection
	Observations   *string
}

func (d CheckoutDetails) isEmpty() bool {
	return d.Customer == nil &&
		d.DeliveryMethod == nil &&
		d.Address == nil &&
		d.Payment == nil &&
		d.Observations == nil
}

// UpdateCheckoutDetailsCommand applies shopper input to a session without
// moving it between steps.
type UpdateCheckoutDetailsCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	details   CheckoutDetails

	guard guard.ConstructorGuard
}

func NewUpdateCheckoutDetailsCommand(sessionID kernel.UUID, details CheckoutDetails) (UpdateCheckoutDetailsCommand, error) {
	cmd := UpdateCheckoutDetailsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setDetails(details),
	); err != nil {
		return UpdateCheckoutDetailsCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCheckoutDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCheckoutDetailsCommandIsNotConstructed)
}

func (c UpdateCheckoutDetailsCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c UpdateCheckoutDetailsCommand) Details() CheckoutDetails {
	return c.details
}

func (c *UpdateCheckoutDetailsCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *UpdateCheckoutDetailsCommand) setDetails(details CheckoutDetails) error {
	if details.isEmpty() {
		return ErrNothingToUpdate
	}
	if details.DeliveryMethod != nil {
		if err := details.DeliveryMethod.Validate(); err != nil {
			return err
		}
	}
	if details.Address != nil {
		if err := details.Address.DwellingType.Validate(); err != nil {
			return err
		}
	}

	c.details = details
	return nil
}
