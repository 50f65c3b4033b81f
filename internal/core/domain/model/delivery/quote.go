package delivery

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
)

// Quote is a priced, or explicitly unpriced, delivery result. Quotes for
// destination-based modes are bound to the destination they were computed
// against and must be recomputed when it changes.
type Quote struct {
	mode        Mode
	fee         *kernel.Money
	distanceKm  *float64
	zoneID      string
	within      bool
	message     string
	destination *kernel.Coordinates
}

// NewPricedQuote returns an in-area quote with a known fee.
func NewPricedQuote(mode Mode, fee kernel.Money, message string) Quote {
	return Quote{mode: mode, fee: &fee, within: true, message: message}
}

// NewOutOfAreaQuote returns a quote for a destination the store does not serve.
// It never carries a fee.
func NewOutOfAreaQuote(mode Mode, message string) Quote {
	return Quote{mode: mode, within: false, message: message}
}

// NewUndeterminedQuote returns an in-area quote whose fee is settled with the
// merchant after submission.
func NewUndeterminedQuote(mode Mode, message string) Quote {
	return Quote{mode: mode, within: true, message: message}
}

// RestoreQuote rebuilds a quote from storage without re-validating it.
func RestoreQuote(
	mode Mode,
	fee *kernel.Money,
	distanceKm *float64,
	zoneID string,
	within bool,
	message string,
	destination *kernel.Coordinates,
) Quote {
	return Quote{
		mode:        mode,
		fee:         fee,
		distanceKm:  distanceKm,
		zoneID:      zoneID,
		within:      within,
		message:     message,
		destination: destination,
	}
}

func (q Quote) WithDistanceKm(km float64) Quote {
	q.distanceKm = &km
	return q
}

func (q Quote) WithZoneID(zoneID string) Quote {
	q.zoneID = zoneID
	return q
}

func (q Quote) WithDestination(destination kernel.Coordinates) Quote {
	q.destination = &destination
	return q
}

func (q Quote) Mode() Mode {
	return q.mode
}

// Fee returns the fee and whether it is determined.
func (q Quote) Fee() (kernel.Money, bool) {
	if q.fee == nil {
		return kernel.Zero(), false
	}
	return *q.fee, true
}

// FeeOrZero returns the fee, treating an undetermined fee as zero.
func (q Quote) FeeOrZero() kernel.Money {
	fee, _ := q.Fee()
	return fee
}

func (q Quote) IsUndetermined() bool {
	return q.fee == nil
}

func (q Quote) DistanceKm() (float64, bool) {
	if q.distanceKm == nil {
		return 0, false
	}
	return *q.distanceKm, true
}

func (q Quote) ZoneID() string {
	return q.zoneID
}

func (q Quote) WithinServiceArea() bool {
	return q.within
}

func (q Quote) Message() string {
	return q.message
}

func (q Quote) Destination() (kernel.Coordinates, bool) {
	if q.destination == nil {
		return kernel.Coordinates{}, false
	}
	return *q.destination, true
}

// IsFreshFor reports whether the quote may still be used for destination.
// Quotes of modes that ignore the destination are always fresh.
func (q Quote) IsFreshFor(destination *kernel.Coordinates) bool {
	if !q.mode.RequiresDestination() {
		return true
	}
	if q.destination == nil || destination == nil {
		return false
	}
	equal, err := q.destination.IsEqual(*destination)
	return err == nil && equal
}

func (q Quote) String() string {
	if !q.within {
		return fmt.Sprintf("%s: outside service area", q.mode)
	}
	if q.fee == nil {
		return fmt.Sprintf("%s: to be confirmed", q.mode)
	}
	return fmt.Sprintf("%s: %s", q.mode, q.fee.Format())
}
