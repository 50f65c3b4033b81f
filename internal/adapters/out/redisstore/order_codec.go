package redisstore

import (
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// orderDTO keeps the order's draft; totals and summary are recomputed on
// restore.
type orderDTO struct {
	ID             string        `json:"id"`
	StoreID        string        `json:"storeId"`
	Status         string        `json:"status"`
	Customer       customerDTO   `json:"customer"`
	Items          []itemDTO     `json:"items"`
	DeliveryMethod string        `json:"deliveryMethod"`
	Address        *addressDTO   `json:"address,omitempty"`
	Fee            *kernel.Money `json:"fee,omitempty"`
	FeeMessage     string        `json:"feeMessage,omitempty"`
	Payment        paymentDTO    `json:"payment"`
	Observations   string        `json:"observations,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func marshalOrder(o *order.Order) ([]byte, error) {
	d := o.Draft()
	return json.Marshal(orderDTO{
		ID:             d.ID.String(),
		StoreID:        d.StoreID.String(),
		Status:         o.Status().String(),
		Customer:       customerDTO{Name: d.Customer.Name, WhatsAppNumber: d.Customer.WhatsAppNumber},
		Items:          fromItems(d.Items),
		DeliveryMethod: string(d.Fulfilment.Method),
		Address:        fromAddress(d.Fulfilment.Address),
		Fee:            d.Fulfilment.Fee,
		FeeMessage:     d.Fulfilment.FeeMessage,
		Payment:        fromPayment(d.Payment),
		Observations:   d.Observations,
		CreatedAt:      d.CreatedAt,
	})
}

func unmarshalOrder(data []byte) (*order.Order, error) {
	var dto orderDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	id, idErr := kernel.UUIDFromString(dto.ID)
	storeID, storeErr := kernel.UUIDFromString(dto.StoreID)
	status, statusErr := order.ParseStatus(dto.Status)
	items, itemsErr := toItems(dto.Items)
	address, addressErr := dto.Address.toDomain()
	selection, paymentErr := dto.Payment.toDomain()
	if err := errors.Join(idErr, storeErr, statusErr, itemsErr, addressErr, paymentErr); err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Draft{
		ID:       id,
		StoreID:  storeID,
		Customer: checkout.Customer{Name: dto.Customer.Name, WhatsAppNumber: dto.Customer.WhatsAppNumber},
		Items:    items,
		Fulfilment: order.Fulfilment{
			Method:     checkout.DeliveryMethod(dto.DeliveryMethod),
			Address:    address,
			Fee:        dto.Fee,
			FeeMessage: dto.FeeMessage,
		},
		Payment:      selection,
		Observations: dto.Observations,
		CreatedAt:    dto.CreatedAt,
	}, status)
}
