package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// QuoteRequest is everything needed to price one delivery.
type QuoteRequest struct {
	StoreID     kernel.UUID
	Policy      delivery.Policy
	Origin      kernel.Coordinates
	Destination *kernel.Coordinates
	Subtotal    kernel.Money
}

// DeliveryPricer is a domain service that applies a store's delivery policy.
//
// Business rules:
//   - flat base: the configured price, free once the subtotal reaches a positive threshold
//   - distance: max(minimum fee, price per km × distance); beyond the maximum distance
//     the destination is out of area and no fee is charged
//   - zone: the price of the zone containing the destination; no zone means out of area
//   - manual: no fee, the merchant's message explains how it is settled
//
// Distance and zone quotes are bound to their destination. Collaborator
// failures surface as errs.ServiceUnavailableError and produce no quote.
type DeliveryPricer struct {
	distance ports.DistanceCalculator
	zones    ports.ZoneResolver
}

// NewDeliveryPricer creates a pricer. Either collaborator may be nil when no
// store uses the matching mode.
func NewDeliveryPricer(distance ports.DistanceCalculator, zones ports.ZoneResolver) DeliveryPricer {
	return DeliveryPricer{distance: distance, zones: zones}
}

// Quote prices the request. It returns errs.ErrValueIsRequired when a
// destination-based policy has no destination.
func (p DeliveryPricer) Quote(ctx context.Context, req QuoteRequest) (delivery.Quote, error) {
	if req.Policy == nil {
		return delivery.Quote{}, errs.NewValueIsRequiredError("policy")
	}
	if req.Policy.Mode().RequiresDestination() && req.Destination == nil {
		return delivery.Quote{}, errs.NewValueIsRequiredError("destination")
	}

	switch policy := req.Policy.(type) {
	case delivery.FlatBasePolicy:
		return delivery.NewPricedQuote(delivery.ModeFlatBase, policy.FeeFor(req.Subtotal), ""), nil
	case delivery.ManualPolicy:
		return delivery.NewUndeterminedQuote(delivery.ModeManual, policy.CustomerMessage()), nil
	case delivery.DistancePolicy:
		return p.quoteDistance(ctx, policy, req)
	case delivery.ZonePolicy:
		return p.quoteZone(ctx, policy, req)
	default:
		return delivery.Quote{}, fmt.Errorf("%w: %T", delivery.ErrUnknownPolicyMode, req.Policy)
	}
}

func (p DeliveryPricer) quoteDistance(ctx context.Context, policy delivery.DistancePolicy, req QuoteRequest) (delivery.Quote, error) {
	if p.distance == nil {
		return delivery.Quote{}, errs.NewServiceUnavailableError("distance")
	}

	estimate, err := p.distance.CalculateDeliveryPrice(ctx, req.Origin, *req.Destination, req.StoreID)
	if err != nil {
		return delivery.Quote{}, unavailable("distance", err)
	}
	if estimate.DistanceKm < 0 {
		return delivery.Quote{}, errs.NewServiceUnavailableErrorWithCause("distance",
			fmt.Errorf("negative distance %v", estimate.DistanceKm))
	}

	if !estimate.WithinRange || !policy.Covers(estimate.DistanceKm) {
		message := estimate.Message
		if message == "" {
			message = fmt.Sprintf("Outside delivery area: %.1f km away, we deliver up to %.1f km",
				estimate.DistanceKm, policy.MaxDistanceKm())
		}
		return delivery.NewOutOfAreaQuote(delivery.ModeDistance, message).
			WithDistanceKm(estimate.DistanceKm).
			WithDestination(*req.Destination), nil
	}

	return delivery.NewPricedQuote(delivery.ModeDistance, policy.FeeFor(estimate.DistanceKm), estimate.Message).
		WithDistanceKm(estimate.DistanceKm).
		WithDestination(*req.Destination), nil
}

func (p DeliveryPricer) quoteZone(ctx context.Context, policy delivery.ZonePolicy, req QuoteRequest) (delivery.Quote, error) {
	if p.zones == nil {
		return delivery.Quote{}, errs.NewServiceUnavailableError("zones")
	}

	zoneID, found, err := p.zones.ResolveZone(ctx, req.StoreID, *req.Destination)
	if err != nil {
		return delivery.Quote{}, unavailable("zones", err)
	}
	if !found {
		return delivery.NewOutOfAreaQuote(delivery.ModeZone, "Outside delivery area: no delivery zone covers this address").
			WithDestination(*req.Destination), nil
	}

	price, ok := policy.PriceFor(zoneID)
	if !ok {
		return delivery.NewOutOfAreaQuote(delivery.ModeZone, "Outside delivery area: zone "+zoneID+" has no delivery price").
			WithZoneID(zoneID).
			WithDestination(*req.Destination), nil
	}

	return delivery.NewPricedQuote(delivery.ModeZone, price, "").
		WithZoneID(zoneID).
		WithDestination(*req.Destination), nil
}

// unavailable keeps context cancellation visible to callers and wraps every
// other failure as a retryable service error.
func unavailable(service string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var unavailableErr *errs.ServiceUnavailableError
	if errors.As(err, &unavailableErr) {
		return err
	}
	return errs.NewServiceUnavailableErrorWithCause(service, err)
}
