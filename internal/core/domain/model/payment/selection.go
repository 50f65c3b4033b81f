package payment

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrTenderedAmountIsRequired is returned for cash selections without an amount.
var ErrTenderedAmountIsRequired = errs.NewValueIsRequiredError("tendered")

// Selection is the shopper's payment choice. Only cash selections carry a
// tendered amount.
type Selection struct {
	method   Method
	tendered *kernel.Money
}

func NewCashSelection(tendered kernel.Money) (Selection, error) {
	if tendered.IsNegative() {
		return Selection{}, errs.NewValueIsInvalidErrorWithCause("tendered", kernel.ErrMoneyIsNegative)
	}
	return Selection{method: MethodCash, tendered: &tendered}, nil
}

func NewTransferSelection() Selection {
	return Selection{method: MethodTransfer}
}

// NewSelection builds a selection from untyped input. tendered is ignored for
// transfers and required for cash.
func NewSelection(method Method, tendered *kernel.Money) (Selection, error) {
	if err := method.Validate(); err != nil {
		return Selection{}, err
	}
	if method == MethodTransfer {
		return NewTransferSelection(), nil
	}
	if tendered == nil {
		return Selection{}, ErrTenderedAmountIsRequired
	}
	return NewCashSelection(*tendered)
}

func (s Selection) Method() Method {
	return s.method
}

// IsSelected reports whether a method has been chosen.
func (s Selection) IsSelected() bool {
	return s.method != ""
}

func (s Selection) Tendered() (kernel.Money, bool) {
	if s.tendered == nil {
		return kernel.Zero(), false
	}
	return *s.tendered, true
}

// Validate checks the selection can pay amountDue.
func (s Selection) Validate(amountDue kernel.Money) error {
	if !s.IsSelected() {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	if err := s.method.Validate(); err != nil {
		return err
	}
	if s.method != MethodCash {
		return nil
	}

	tendered, ok := s.Tendered()
	if !ok {
		return ErrTenderedAmountIsRequired
	}
	if settlement := Settle(tendered, amountDue); !settlement.IsValid {
		return errs.NewValueIsInvalidErrorWithCause("tendered", errors.New(settlement.Message))
	}
	return nil
}
