// Package storerepo reads store configuration. Delivery policy and opening
// hours are JSON documents owned by the merchant dashboard.
package storerepo

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// StoreDTO represents the database structure of a store's checkout settings.
type StoreDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string
	WhatsAppNumber       string    `gorm:"column:whatsapp_number;size:32"`
	Origin               OriginDTO `gorm:"embedded;embeddedPrefix:origin_"`
	DeliveryPolicy       []byte    `gorm:"type:jsonb"`
	Schedule             []byte    `gorm:"type:jsonb"`
	BusinessHoursEnabled bool
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

type OriginDTO struct {
	Latitude  float64
	Longitude float64
}

func fromDomain(s *store.Store) (StoreDTO, error) {
	policy, err := delivery.MarshalPolicy(s.Policy())
	if err != nil {
		return StoreDTO{}, err
	}
	spec, err := schedule.MarshalSpec(s.Schedule())
	if err != nil {
		return StoreDTO{}, err
	}

	return StoreDTO{
		ID:             s.ID().Bytes(),
		Name:           s.Name(),
		WhatsAppNumber: s.WhatsAppNumber(),
		Origin: OriginDTO{
			Latitude:  s.Origin().Latitude(),
			Longitude: s.Origin().Longitude(),
		},
		DeliveryPolicy:       policy,
		Schedule:             spec,
		BusinessHoursEnabled: s.BusinessHoursEnabled(),
	}, nil
}

// toDomain rebuilds a store. A schedule that cannot be decoded is logged and
// dropped, which leaves the store open at all hours.
func toDomain(ctx context.Context, dto StoreDTO, logger *slog.Logger) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	origin, err := kernel.NewCoordinates(dto.Origin.Latitude, dto.Origin.Longitude)
	if err != nil {
		return nil, err
	}
	policy, err := delivery.ParsePolicy(dto.DeliveryPolicy)
	if err != nil {
		return nil, err
	}

	spec, err := schedule.ParseSpec(dto.Schedule)
	if err != nil {
		logger.WarnContext(ctx, "Malformed store schedule, treating store as open",
			"storeID", id.String(),
			"error", err,
		)
		spec = nil
	}

	return store.NewStore(id, dto.Name, dto.WhatsAppNumber, origin, policy, spec, dto.BusinessHoursEnabled)
}
