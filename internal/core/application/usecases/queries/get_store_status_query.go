package queries

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/guard"
)

var ErrGetStoreStatusQueryIsNotConstructed = errors.New(
	"GetStoreStatusQuery must be created via NewGetStoreStatusQuery constructor",
)

// GetStoreStatusQuery asks whether a store accepts orders right now.
type GetStoreStatusQuery struct {
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStoreStatusQuery(storeID kernel.UUID) (GetStoreStatusQuery, error) {
	if err := storeID.Validate(); err != nil {
		return GetStoreStatusQuery{}, err
	}
	return GetStoreStatusQuery{storeID: storeID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStoreStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreStatusQueryIsNotConstructed)
}

type GetStoreStatusQueryResponse struct {
	StoreID      kernel.UUID
	Name         string
	IsOpen       bool
	CheckedAt    time.Time
	DeliveryMode delivery.Mode
}

type GetStoreStatusQueryHandler struct {
	stores    ports.StoreRepository
	evaluator schedule.Evaluator
	now       func() time.Time
}

func NewGetStoreStatusQueryHandler(
	stores ports.StoreRepository,
	evaluator schedule.Evaluator,
	now func() time.Time,
) GetStoreStatusQueryHandler {
	return GetStoreStatusQueryHandler{stores: stores, evaluator: evaluator, now: now}
}

func (h GetStoreStatusQueryHandler) Handle(ctx context.Context, query GetStoreStatusQuery) (GetStoreStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStoreStatusQueryResponse{}, err
	}

	st, err := h.stores.Get(ctx, query.storeID)
	if err != nil {
		return GetStoreStatusQueryResponse{}, err
	}

	now := h.now()
	return GetStoreStatusQueryResponse{
		StoreID:      st.ID(),
		Name:         st.Name(),
		IsOpen:       st.IsOpen(h.evaluator, now),
		CheckedAt:    now,
		DeliveryMode: st.Policy().Mode(),
	}, nil
}
