package delivery

import (
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
)

var ErrUnknownPolicyMode = errors.New("unknown delivery policy mode")

// policyDocument is the stored form of a Policy: the mode tag plus the
// fields of that mode only.
type policyDocument struct {
	Mode            Mode                    `json:"mode"`
	Price           *kernel.Money           `json:"price,omitempty"`
	FreeThreshold   *kernel.Money           `json:"freeThreshold,omitempty"`
	PricePerKm      *kernel.Money           `json:"pricePerKm,omitempty"`
	MinimumFee      *kernel.Money           `json:"minimumFee,omitempty"`
	MaxDistanceKm   *float64                `json:"maxDistanceKm,omitempty"`
	Zones           map[string]kernel.Money `json:"zones,omitempty"`
	CustomerMessage string                  `json:"customerMessage,omitempty"`
}

// MarshalPolicy encodes a policy as a mode-tagged JSON document.
func MarshalPolicy(policy Policy) ([]byte, error) {
	if policy == nil {
		return nil, errors.New("delivery policy is nil")
	}

	doc := policyDocument{Mode: policy.Mode()}
	switch p := policy.(type) {
	case FlatBasePolicy:
		doc.Price, doc.FreeThreshold = ptr(p.price), ptr(p.freeThreshold)
	case DistancePolicy:
		doc.PricePerKm, doc.MinimumFee, doc.MaxDistanceKm = ptr(p.pricePerKm), ptr(p.minimumFee), ptr(p.maxDistanceKm)
	case ZonePolicy:
		doc.Zones = p.Prices()
	case ManualPolicy:
		doc.CustomerMessage = p.customerMessage
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownPolicyMode, policy)
	}

	return json.Marshal(doc)
}

// ParsePolicy decodes a document written by MarshalPolicy.
func ParsePolicy(data []byte) (Policy, error) {
	var doc policyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode delivery policy: %w", err)
	}

	switch doc.Mode {
	case ModeFlatBase:
		return NewFlatBasePolicy(value(doc.Price), value(doc.FreeThreshold))
	case ModeDistance:
		return NewDistancePolicy(value(doc.PricePerKm), value(doc.MinimumFee), value(doc.MaxDistanceKm))
	case ModeZone:
		return NewZonePolicy(doc.Zones)
	case ModeManual:
		return NewManualPolicy(doc.CustomerMessage)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicyMode, string(doc.Mode))
	}
}

func ptr[T any](v T) *T {
	return &v
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
