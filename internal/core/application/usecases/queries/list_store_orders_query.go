package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const (
	DefaultOrdersPageSize = 20
	MaxOrdersPageSize     = 100
)

var ErrListStoreOrdersQueryIsNotConstructed = errors.New(
	"ListStoreOrdersQuery must be created via NewListStoreOrdersQuery constructor",
)

// ListStoreOrdersQuery pages through a store's orders, newest first.
//
// Example:
//
//	query, _ := NewListStoreOrdersQuery(storeID, 20, 0)
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("#%s %s %s\n", o.Number, o.CustomerName, o.Total.Format())
//	}
type ListStoreOrdersQuery struct {
	storeID kernel.UUID
	limit   int
	offset  int

	guard guard.ConstructorGuard
}

// NewListStoreOrdersQuery uses DefaultOrdersPageSize when limit is zero.
func NewListStoreOrdersQuery(storeID kernel.UUID, limit, offset int) (ListStoreOrdersQuery, error) {
	if err := storeID.Validate(); err != nil {
		return ListStoreOrdersQuery{}, err
	}
	if limit == 0 {
		limit = DefaultOrdersPageSize
	}
	if limit < 0 || limit > MaxOrdersPageSize {
		return ListStoreOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOrdersPageSize)
	}
	if offset < 0 {
		return ListStoreOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "∞")
	}

	return ListStoreOrdersQuery{
		storeID: storeID,
		limit:   limit,
		offset:  offset,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListStoreOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListStoreOrdersQueryIsNotConstructed)
}

// ListStoreOrdersQueryResponse is one row of a store's order listing.
type ListStoreOrdersQueryResponse struct {
	ID             kernel.UUID
	Number         string
	CustomerName   string
	DeliveryMethod string
	Total          kernel.Money
	Status         order.Status
	ItemCount      int
	CreatedAt      time.Time
}
