package payment

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
)

func (m Method) Validate() error {
	switch m {
	case MethodCash, MethodTransfer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a payment method", string(m)))
	}
}

// Label is the human-readable name used in order summaries.
func (m Method) Label() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodTransfer:
		return "Transfer"
	default:
		return string(m)
	}
}
