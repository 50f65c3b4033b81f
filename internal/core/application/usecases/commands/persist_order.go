package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// addOrder stores o in its own transaction.
func addOrder(ctx context.Context, uowFactory OrderUoWFactory, o *order.Order) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
