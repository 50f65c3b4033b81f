package checkout

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Step is a stage of the checkout.
type Step string

const (
	StepCustomerInfo   Step = "customer_info"
	StepDeliveryMethod Step = "delivery_method"
	StepAddress        Step = "address"
	StepPayment        Step = "payment"
	StepConfirm        Step = "confirm"
	StepSubmitted      Step = "submitted"
)

func (s Step) String() string {
	return string(s)
}

// DeliveryMethod is how the order reaches the shopper.
type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDelivery DeliveryMethod = "delivery"
)

func (m DeliveryMethod) Validate() error {
	switch m {
	case DeliveryMethodPickup, DeliveryMethodDelivery:
		return nil
	case "":
		return ErrDeliveryMethodIsRequired
	default:
		return errs.NewValueIsInvalidErrorWithCause("deliveryMethod", fmt.Errorf("%q is not a delivery method", string(m)))
	}
}

func (m DeliveryMethod) IsDelivery() bool {
	return m == DeliveryMethodDelivery
}
