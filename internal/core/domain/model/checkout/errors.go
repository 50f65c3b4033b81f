package checkout

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
)

var (
	// ErrStepIsInvalid is wrapped by every StepValidationError.
	ErrStepIsInvalid = errors.New("checkout step is invalid")
	// ErrStoreClosed is returned when submitting while the store does not accept orders.
	ErrStoreClosed = errors.New("store is closed and does not accept new orders")
	// ErrSubmissionInProgress is returned when a submission is already in flight.
	ErrSubmissionInProgress = errors.New("order submission is already in progress")
	// ErrSessionIsClosed is returned when changing an abandoned or submitted session.
	ErrSessionIsClosed = errors.New("checkout session is closed")
	// ErrSessionIsNotConstructed is returned when a zero-value Session is used.
	ErrSessionIsNotConstructed = errors.New("checkout session is not constructed")
	// ErrNoPreviousStep is returned when going back from the first step.
	ErrNoPreviousStep = errors.New("checkout is already on its first step")
	// ErrNoNextStep is returned when moving forward from the last step.
	ErrNoNextStep = errors.New("checkout has no further step")
	// ErrNotOnConfirmStep is returned when submitting before reaching Confirm.
	ErrNotOnConfirmStep = errors.New("checkout is not on the confirm step")
	// ErrQuoteIsRequired is returned when a delivery order has no usable quote.
	ErrQuoteIsRequired = errors.New("delivery quote is required")
	// ErrQuoteIsPending is returned while a delivery quote is being computed.
	ErrQuoteIsPending = errors.New("delivery quote is still being computed")
	// ErrOutOfServiceArea is returned when the destination is not served.
	ErrOutOfServiceArea = errors.New("destination is outside the delivery area")
	// ErrQuoteNotApplicable is returned when quoting a session that is not delivering.
	ErrQuoteNotApplicable = errors.New("delivery quote is not applicable")
	// ErrCartIsEmpty is returned when starting a checkout without items.
	ErrCartIsEmpty = errors.New("cart is empty")

	ErrCustomerNameIsRequired   = errs.NewValueIsRequiredError("customerName")
	ErrWhatsAppNumberIsRequired = errs.NewValueIsRequiredError("whatsappNumber")
	ErrDeliveryMethodIsRequired = errs.NewValueIsRequiredError("deliveryMethod")
	ErrAddressIsRequired        = errs.NewValueIsRequiredError("address")
	ErrCoordinatesAreRequired   = errs.NewValueIsRequiredError("coordinates")
)

// StepValidationError reports why the shopper cannot leave Step.
type StepValidationError struct {
	Step  Step
	Cause error
}

func NewStepValidationError(step Step, cause error) *StepValidationError {
	return &StepValidationError{Step: step, Cause: cause}
}

func (e *StepValidationError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrStepIsInvalid, e.Step, e.Cause)
}

func (e *StepValidationError) Unwrap() []error {
	return []error{ErrStepIsInvalid, e.Cause}
}

// outOfServiceArea keeps the quote's explanation in the error text.
func outOfServiceArea(message string) error {
	if message == "" {
		return ErrOutOfServiceArea
	}
	return fmt.Errorf("%w: %s", ErrOutOfServiceArea, message)
}
