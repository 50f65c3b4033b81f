package delivery

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Policy is a store's active delivery pricing configuration. Each
// implementation carries only the fields of its own mode.
type Policy interface {
	Mode() Mode
	Validate() error
}

// FlatBasePolicy charges Price unless the subtotal reaches FreeThreshold.
// A zero FreeThreshold disables free delivery.
type FlatBasePolicy struct {
	price         kernel.Money
	freeThreshold kernel.Money
}

func NewFlatBasePolicy(price, freeThreshold kernel.Money) (FlatBasePolicy, error) {
	p := FlatBasePolicy{price: price, freeThreshold: freeThreshold}
	if err := p.Validate(); err != nil {
		return FlatBasePolicy{}, err
	}
	return p, nil
}

func (p FlatBasePolicy) Mode() Mode { return ModeFlatBase }

func (p FlatBasePolicy) Validate() error {
	return errors.Join(
		nonNegative("price", p.price),
		nonNegative("freeThreshold", p.freeThreshold),
	)
}

func (p FlatBasePolicy) Price() kernel.Money         { return p.price }
func (p FlatBasePolicy) FreeThreshold() kernel.Money { return p.freeThreshold }

// FeeFor returns the fee for an order with the given subtotal.
func (p FlatBasePolicy) FeeFor(subtotal kernel.Money) kernel.Money {
	if p.freeThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.freeThreshold) {
		return kernel.Zero()
	}
	return p.price
}

// DistancePolicy charges PricePerKm × distance, never less than MinimumFee.
// Destinations beyond MaxDistanceKm are outside the service area; a zero
// MaxDistanceKm means no limit.
type DistancePolicy struct {
	pricePerKm    kernel.Money
	minimumFee    kernel.Money
	maxDistanceKm float64
}

func NewDistancePolicy(pricePerKm, minimumFee kernel.Money, maxDistanceKm float64) (DistancePolicy, error) {
	p := DistancePolicy{pricePerKm: pricePerKm, minimumFee: minimumFee, maxDistanceKm: maxDistanceKm}
	if err := p.Validate(); err != nil {
		return DistancePolicy{}, err
	}
	return p, nil
}

func (p DistancePolicy) Mode() Mode { return ModeDistance }

func (p DistancePolicy) Validate() error {
	var maxErr error
	if p.maxDistanceKm < 0 {
		maxErr = errs.NewValueIsInvalidErrorWithCause("maxDistanceKm",
			fmt.Errorf("%v is negative", p.maxDistanceKm))
	}
	return errors.Join(
		nonNegative("pricePerKm", p.pricePerKm),
		nonNegative("minimumFee", p.minimumFee),
		maxErr,
	)
}

func (p DistancePolicy) PricePerKm() kernel.Money { return p.pricePerKm }
func (p DistancePolicy) MinimumFee() kernel.Money { return p.minimumFee }
func (p DistancePolicy) MaxDistanceKm() float64   { return p.maxDistanceKm }

// Covers reports whether distanceKm is inside the service area.
func (p DistancePolicy) Covers(distanceKm float64) bool {
	return p.maxDistanceKm <= 0 || distanceKm <= p.maxDistanceKm
}

// FeeFor returns max(MinimumFee, PricePerKm × distanceKm) at currency precision.
func (p DistancePolicy) FeeFor(distanceKm float64) kernel.Money {
	return p.pricePerKm.MulFloat(distanceKm).Max(p.minimumFee)
}

// ZonePolicy prices each merchant-defined zone with a fixed fee. Zones are
// matched to destinations by an external area-matching service.
type ZonePolicy struct {
	prices map[string]kernel.Money
}

func NewZonePolicy(prices map[string]kernel.Money) (ZonePolicy, error) {
	p := ZonePolicy{prices: make(map[string]kernel.Money, len(prices))}
	for zoneID, price := range prices {
		p.prices[strings.TrimSpace(zoneID)] = price
	}
	if err := p.Validate(); err != nil {
		return ZonePolicy{}, err
	}
	return p, nil
}

func (p ZonePolicy) Mode() Mode { return ModeZone }

func (p ZonePolicy) Validate() error {
	var result error
	for zoneID, price := range p.prices {
		if zoneID == "" {
			result = errors.Join(result, errs.NewValueIsRequiredError("zoneID"))
		}
		result = errors.Join(result, nonNegative("zone "+zoneID, price))
	}
	return result
}

// Prices returns a copy of the zone price table.
func (p ZonePolicy) Prices() map[string]kernel.Money {
	return maps.Clone(p.prices)
}

// PriceFor returns the fee of zoneID, if configured.
func (p ZonePolicy) PriceFor(zoneID string) (kernel.Money, bool) {
	price, ok := p.prices[zoneID]
	return price, ok
}

// ManualPolicy leaves the fee undetermined and shows the merchant's message.
type ManualPolicy struct {
	customerMessage string
}

func NewManualPolicy(customerMessage string) (ManualPolicy, error) {
	return ManualPolicy{customerMessage: strings.TrimSpace(customerMessage)}, nil
}

func (p ManualPolicy) Mode() Mode { return ModeManual }

func (p ManualPolicy) Validate() error { return nil }

func (p ManualPolicy) CustomerMessage() string { return p.customerMessage }

func nonNegative(param string, m kernel.Money) error {
	if m.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(param, kernel.ErrMoneyIsNegative)
	}
	return nil
}
