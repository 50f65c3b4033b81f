package delivery

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Mode names the pricing strategy of a Policy.
type Mode string

const (
	ModeFlatBase Mode = "flat_base"
	ModeDistance Mode = "distance"
	ModeZone     Mode = "zone"
	ModeManual   Mode = "manual"
)

func (m Mode) Validate() error {
	switch m {
	case ModeFlatBase, ModeDistance, ModeZone, ModeManual:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%q is not a delivery mode", string(m)))
	}
}

// RequiresDestination reports whether quoting needs destination coordinates.
func (m Mode) RequiresDestination() bool {
	return m == ModeDistance || m == ModeZone
}

func (m Mode) String() string {
	return string(m)
}
