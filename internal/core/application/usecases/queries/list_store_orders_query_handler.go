package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListStoreOrdersQueryHandler reads the order listing straight from the
// orders tables.
type ListStoreOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListStoreOrdersQueryHandler(db *gorm.DB) ListStoreOrdersQueryHandler {
	return ListStoreOrdersQueryHandler{db: db}
}

// Handle returns at most query.limit orders. Orders still waiting for a
// retry are not in the database yet and are not listed.
func (h ListStoreOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListStoreOrdersQuery,
) ([]ListStoreOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]ListStoreOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.customer_name,
			o.delivery_method,
			o.total,
			o.status,
			COALESCE(SUM(i.quantity), 0) AS item_count,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.store_id = ?
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, query.storeID.Bytes(), query.limit, query.offset).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListStoreOrdersQueryResponse
		var id uuid.UUID
		var total decimal.Decimal
		var status int

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.CustomerName,
			&resp.DeliveryMethod,
			&total,
			&status,
			&resp.ItemCount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.Total, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status)
		if err = resp.Status.Validate(); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
