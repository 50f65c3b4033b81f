// Package orderrepo persists order aggregates. An order is stored as one row
// in "orders" plus one row per item in "order_items".
package orderrepo

import (
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Totals and the summary are stored as rendered at submission so listings
// never recompute them.
type OrderDTO struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	StoreID  uuid.UUID   `gorm:"type:uuid;index"`
	Number   string      `gorm:"size:8;index"`
	Status   int         `gorm:"index"`
	Customer CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`

	DeliveryMethod string              `gorm:"size:16"`
	Address        []byte              `gorm:"type:jsonb"`
	DeliveryFee    decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	FeeMessage     string

	PaymentMethod  string              `gorm:"size:16"`
	TenderedAmount decimal.NullDecimal `gorm:"type:numeric(12,2)"`

	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Observations string
	Summary      string
	CreatedAt    time.Time `gorm:"index"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

type CustomerDTO struct {
	Name           string
	WhatsAppNumber string `gorm:"column:whatsapp_number"`
}

// OrderItemDTO is one cart line of an order, kept in cart order by Position.
type OrderItemDTO struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	Position      int
	CatalogItemID string
	Name          string
	Quantity      int
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2)"`
	VariantLabel  string
	OptionLabels  pq.StringArray `gorm:"type:text[]"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type addressDTO struct {
	Street       string   `json:"street"`
	Number       string   `json:"number"`
	Neighborhood string   `json:"neighborhood"`
	DwellingType string   `json:"dwellingType,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Reference    string   `json:"reference,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	f := o.Fulfilment()
	p := o.Payment()

	dto := OrderDTO{
		ID:      o.ID().Bytes(),
		StoreID: o.StoreID().Bytes(),
		Number:  o.Number(),
		Status:  int(o.Status()),
		Customer: CustomerDTO{
			Name:           o.Customer().Name,
			WhatsAppNumber: o.Customer().WhatsAppNumber,
		},
		DeliveryMethod: string(f.Method),
		DeliveryFee:    nullDecimal(f.Fee),
		FeeMessage:     f.FeeMessage,
		PaymentMethod:  string(p.Method()),
		Subtotal:       o.Subtotal().Decimal(),
		Total:          o.Total().Decimal(),
		Observations:   o.Observations(),
		Summary:        o.Summary(),
		CreatedAt:      o.CreatedAt(),
	}

	if tendered, ok := p.Tendered(); ok {
		dto.TenderedAmount = nullDecimal(&tendered)
	}

	if f.Address != nil {
		raw, err := json.Marshal(addressFromDomain(*f.Address))
		if err != nil {
			return OrderDTO{}, err
		}
		dto.Address = raw
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:       dto.ID,
			Position:      i,
			CatalogItemID: item.CatalogItemID(),
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice().Decimal(),
			VariantLabel:  item.VariantLabel(),
			OptionLabels:  pq.StringArray(item.OptionLabels()),
		})
	}

	return dto, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := cart.NewItem(
			itemDTO.CatalogItemID,
			itemDTO.Name,
			itemDTO.Quantity,
			price,
			itemDTO.VariantLabel,
			itemDTO.OptionLabels,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	fulfilment := order.Fulfilment{
		Method:     checkout.DeliveryMethod(dto.DeliveryMethod),
		FeeMessage: dto.FeeMessage,
	}
	if fulfilment.Fee, err = moneyOrNil(dto.DeliveryFee); err != nil {
		return nil, err
	}
	if len(dto.Address) > 0 {
		var raw addressDTO
		if err = json.Unmarshal(dto.Address, &raw); err != nil {
			return nil, err
		}
		address, addrErr := addressToDomain(raw)
		if addrErr != nil {
			return nil, addrErr
		}
		fulfilment.Address = &address
	}

	tendered, err := moneyOrNil(dto.TenderedAmount)
	if err != nil {
		return nil, err
	}
	selection, err := payment.NewSelection(payment.Method(dto.PaymentMethod), tendered)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Draft{
		ID:      id,
		StoreID: storeID,
		Customer: checkout.Customer{
			Name:           dto.Customer.Name,
			WhatsAppNumber: dto.Customer.WhatsAppNumber,
		},
		Items:        items,
		Fulfilment:   fulfilment,
		Payment:      selection,
		Observations: dto.Observations,
		CreatedAt:    dto.CreatedAt,
	}, order.Status(dto.Status))
}

func addressFromDomain(a checkout.Address) addressDTO {
	raw := addressDTO{
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		DwellingType: string(a.DwellingType),
		Unit:         a.Unit,
		Reference:    a.Reference,
	}
	if a.Coordinates != nil {
		lat, lng := a.Coordinates.Latitude(), a.Coordinates.Longitude()
		raw.Latitude, raw.Longitude = &lat, &lng
	}
	return raw
}

func addressToDomain(raw addressDTO) (checkout.Address, error) {
	a := checkout.Address{
		Street:       raw.Street,
		Number:       raw.Number,
		Neighborhood: raw.Neighborhood,
		DwellingType: checkout.DwellingType(raw.DwellingType),
		Unit:         raw.Unit,
		Reference:    raw.Reference,
	}
	if raw.Latitude != nil && raw.Longitude != nil {
		c, err := kernel.NewCoordinates(*raw.Latitude, *raw.Longitude)
		if err != nil {
			return checkout.Address{}, err
		}
		a.Coordinates = &c
	}
	return a, nil
}

func nullDecimal(m *kernel.Money) decimal.NullDecimal {
	if m == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(m.Decimal())
}

func moneyOrNil(d decimal.NullDecimal) (*kernel.Money, error) {
	if !d.Valid {
		return nil, nil
	}
	m, err := kernel.NewMoney(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
