package checkout

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

type DwellingType string

const (
	DwellingHouse     DwellingType = "house"
	DwellingApartment DwellingType = "apartment"
)

func (d DwellingType) Validate() error {
	switch d {
	case "", DwellingHouse, DwellingApartment:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("dwellingType", fmt.Errorf("%q is not a dwelling type", string(d)))
	}
}

// AddressField names an address field that a flow can require.
type AddressField string

const (
	AddressStreet       AddressField = "street"
	AddressNumber       AddressField = "number"
	AddressNeighborhood AddressField = "neighborhood"
	AddressDwellingType AddressField = "dwellingType"
	AddressUnit         AddressField = "unit"
	AddressReference    AddressField = "reference"
)

// Address is where a delivery order is taken. Coordinates are optional and
// only needed by destination-based delivery pricing.
type Address struct {
	Street       string
	Number       string
	Neighborhood string
	DwellingType DwellingType
	Unit         string
	Reference    string
	Coordinates  *kernel.Coordinates
}

// Field returns the trimmed value of f.
func (a Address) Field(f AddressField) string {
	switch f {
	case AddressStreet:
		return strings.TrimSpace(a.Street)
	case AddressNumber:
		return strings.TrimSpace(a.Number)
	case AddressNeighborhood:
		return strings.TrimSpace(a.Neighborhood)
	case AddressDwellingType:
		return string(a.DwellingType)
	case AddressUnit:
		return strings.TrimSpace(a.Unit)
	case AddressReference:
		return strings.TrimSpace(a.Reference)
	default:
		return ""
	}
}

// Validate checks every required field is present.
func (a Address) Validate(required []AddressField) error {
	var result error
	for _, f := range required {
		if a.Field(f) == "" {
			result = errors.Join(result, errs.NewValueIsRequiredError(string(f)))
		}
	}
	if a.Coordinates != nil {
		result = errors.Join(result, a.Coordinates.Validate())
	}
	return errors.Join(result, a.DwellingType.Validate())
}

// SameDestination reports whether both addresses point at the same coordinates.
func (a Address) SameDestination(other Address) bool {
	if a.Coordinates == nil || other.Coordinates == nil {
		return a.Coordinates == nil && other.Coordinates == nil
	}
	equal, err := a.Coordinates.IsEqual(*other.Coordinates)
	return err == nil && equal
}
