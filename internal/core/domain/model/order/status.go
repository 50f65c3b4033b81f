package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──┬──> Submitted
//	          │        ^
//	          └──> Unsaved
//
// An order is Pending while it is being handed to the merchant. It becomes
// Submitted once it is stored, or Unsaved when storing failed and the order
// waits for a retry. A successful retry moves Unsaved to Submitted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly built order.
	Pending

	// Submitted indicates the order is stored and visible to the merchant.
	Submitted

	// Unsaved indicates storing the order failed. The shopper was still handed
	// off to the merchant and the order is queued for another attempt.
	Unsaved
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Submitted: "Submitted",
		Unsaved:   "Unsaved",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Submitted: "Submitted",
		Unsaved:   "Unsaved",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, "Unknown" for
// invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(str string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == str {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", str))
}

// Submit transitions the status to Submitted.
//
// Valid transitions:
//   - Pending -> Submitted (stored on first attempt)
//   - Unsaved -> Submitted (stored by a retry)
func (s Status) Submit() (Status, error) {
	if s != Pending && s != Unsaved {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to submit", s.String()),
		)
	}

	return Submitted, nil
}

// MarkUnsaved transitions the status to Unsaved.
//
// Valid transitions:
//   - Pending -> Unsaved
func (s Status) MarkUnsaved() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark unsaved", s.String()),
		)
	}

	return Unsaved, nil
}
