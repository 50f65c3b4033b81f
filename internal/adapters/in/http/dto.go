package http

import (
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Step    string   `json:"step,omitempty"`
	Details []string `json:"details,omitempty"`
}

type CartLineRequest struct {
	CatalogItemID string       `json:"catalogItemId" validate:"required"`
	Name          string       `json:"name" validate:"required"`
	Quantity      int          `json:"quantity" validate:"required,min=1"`
	UnitPrice     kernel.Money `json:"unitPrice"`
	VariantLabel  string       `json:"variantLabel"`
	OptionLabels  []string     `json:"optionLabels" validate:"omitempty,dive,required"`
}

type StartCheckoutRequest struct {
	Lines []CartLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (r StartCheckoutRequest) toLines() []commands.CartLine {
	lines := make([]commands.CartLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, commands.CartLine{
			CatalogItemID: l.CatalogItemID,
			Name:          l.Name,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			VariantLabel:  l.VariantLabel,
			OptionLabels:  l.OptionLabels,
		})
	}
	return lines
}

type CheckoutCreated struct {
	ID string `json:"id"`
}

type CustomerRequest struct {
	Name           string `json:"name" validate:"max=120"`
	WhatsAppNumber string `json:"whatsappNumber" validate:"max=32"`
}

type AddressRequest struct {
	Street       string   `json:"street" validate:"max=200"`
	Number       string   `json:"number" validate:"max=20"`
	Neighborhood string   `json:"neighborhood" validate:"max=120"`
	DwellingType string   `json:"dwellingType" validate:"omitempty,oneof=house apartment"`
	Unit         string   `json:"unit" validate:"max=60"`
	Reference    string   `json:"reference" validate:"max=200"`
	Latitude     *float64 `json:"lat" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude    *float64 `json:"lng" validate:"required_with=Latitude,omitempty,longitude"`
}

type PaymentRequest struct {
	Method   string        `json:"method" validate:"required,oneof=cash transfer"`
	Tendered *kernel.Money `json:"tendered"`
}

// UpdateCheckoutRequest is a partial update: omitted fields are left as they are.
type UpdateCheckoutRequest struct {
	Customer       *CustomerRequest `json:"customer"`
	DeliveryMethod *string          `json:"deliveryMethod" validate:"omitempty,oneof=pickup delivery"`
	Address        *AddressRequest  `json:"address"`
	Payment        *PaymentRequest  `json:"payment"`
	Observations   *string          `json:"observations" validate:"omitempty,max=500"`
}

func (r UpdateCheckoutRequest) toDetails() (commands.CheckoutDetails, error) {
	var details commands.CheckoutDetails

	if r.Customer != nil {
		details.Customer = &checkout.Customer{Name: r.Customer.Name, WhatsAppNumber: r.Customer.WhatsAppNumber}
	}
	if r.DeliveryMethod != nil {
		m := checkout.DeliveryMethod(*r.DeliveryMethod)
		details.DeliveryMethod = &m
	}
	if r.Address != nil {
		a := &checkout.Address{
			Street:       r.Address.Street,
			Number:       r.Address.Number,
			Neighborhood: r.Address.Neighborhood,
			DwellingType: checkout.DwellingType(r.Address.DwellingType),
			Unit:         r.Address.Unit,
			Reference:    r.Address.Reference,
		}
		if r.Address.Latitude != nil && r.Address.Longitude != nil {
			coords, err := kernel.NewCoordinates(*r.Address.Latitude, *r.Address.Longitude)
			if err != nil {
				return commands.CheckoutDetails{}, err
			}
			a.Coordinates = &coords
		}
		details.Address = a
	}
	if r.Payment != nil {
		sel, err := payment.NewSelection(payment.Method(r.Payment.Method), r.Payment.Tendered)
		if err != nil {
			return commands.CheckoutDetails{}, err
		}
		details.Payment = &sel
	}
	details.Observations = r.Observations

	return details, nil
}

type StepResponse struct {
	Step string `json:"step"`
}

type QuoteResponse struct {
	Mode              string        `json:"mode"`
	Fee               *kernel.Money `json:"fee,omitempty"`
	DistanceKm        *float64      `json:"distanceKm,omitempty"`
	ZoneID            string        `json:"zoneId,omitempty"`
	WithinServiceArea bool          `json:"withinServiceArea"`
	Message           string        `json:"message,omitempty"`
}

func toQuoteResponse(q delivery.Quote) QuoteResponse {
	resp := QuoteResponse{
		Mode:              q.Mode().String(),
		ZoneID:            q.ZoneID(),
		WithinServiceArea: q.WithinServiceArea(),
		Message:           q.Message(),
	}
	if fee, ok := q.Fee(); ok {
		resp.Fee = &fee
	}
	if km, ok := q.DistanceKm(); ok {
		resp.DistanceKm = &km
	}
	return resp
}

type CheckoutLineResponse struct {
	CatalogItemID string       `json:"catalogItemId"`
	Name          string       `json:"name"`
	Quantity      int          `json:"quantity"`
	UnitPrice     kernel.Money `json:"unitPrice"`
	LineTotal     kernel.Money `json:"lineTotal"`
	VariantLabel  string       `json:"variantLabel,omitempty"`
	OptionLabels  []string     `json:"optionLabels,omitempty"`
}

type AddressResponse struct {
	Street       string   `json:"street"`
	Number       string   `json:"number"`
	Neighborhood string   `json:"neighborhood"`
	DwellingType string   `json:"dwellingType,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Reference    string   `json:"reference,omitempty"`
	Latitude     *float64 `json:"lat,omitempty"`
	Longitude    *float64 `json:"lng,omitempty"`
}

type SettlementResponse struct {
	IsValid   bool         `json:"isValid"`
	Change    kernel.Money `json:"change"`
	Shortfall kernel.Money `json:"shortfall"`
	Message   string       `json:"message"`
}

type PaymentResponse struct {
	Method   string        `json:"method"`
	Tendered *kernel.Money `json:"tendered,omitempty"`
}

type CheckoutResponse struct {
	ID             string                 `json:"id"`
	StoreID        string                 `json:"storeId"`
	StoreName      string                 `json:"storeName"`
	StoreOpen      bool                   `json:"storeOpen"`
	Step           string                 `json:"step"`
	Steps          []string               `json:"steps"`
	Lines          []CheckoutLineResponse `json:"lines"`
	Customer       CustomerRequest        `json:"customer"`
	DeliveryMethod string                 `json:"deliveryMethod,omitempty"`
	Address        *AddressResponse       `json:"address,omitempty"`
	Quote          *QuoteResponse         `json:"quote,omitempty"`
	QuotePending   bool                   `json:"quotePending"`
	Payment        *PaymentResponse       `json:"payment,omitempty"`
	Observations   string                 `json:"observations,omitempty"`
	Subtotal       kernel.Money           `json:"subtotal"`
	DeliveryFee    *kernel.Money          `json:"deliveryFee,omitempty"`
	Total          kernel.Money           `json:"total"`
	Settlement     *SettlementResponse    `json:"settlement,omitempty"`
	Submitting     bool                   `json:"submitting"`
	Closed         bool                   `json:"closed"`
}

func toCheckoutResponse(v queries.GetCheckoutQueryResponse) CheckoutResponse {
	resp := CheckoutResponse{
		ID:             v.ID.String(),
		StoreID:        v.StoreID.String(),
		StoreName:      v.StoreName,
		StoreOpen:      v.StoreOpen,
		Step:           v.Step.String(),
		Steps:          make([]string, 0, len(v.Steps)),
		Lines:          make([]CheckoutLineResponse, 0, len(v.Lines)),
		Customer:       CustomerRequest{Name: v.Customer.Name, WhatsAppNumber: v.Customer.WhatsAppNumber},
		DeliveryMethod: string(v.DeliveryMethod),
		QuotePending:   v.QuotePending,
		Observations:   v.Observations,
		Subtotal:       v.Subtotal,
		DeliveryFee:    v.DeliveryFee,
		Total:          v.Total,
		Submitting:     v.Submitting,
		Closed:         v.Closed,
	}

	for _, step := range v.Steps {
		resp.Steps = append(resp.Steps, step.String())
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, CheckoutLineResponse(l))
	}
	if a := v.Address; a != nil {
		resp.Address = &AddressResponse{
			Street:       a.Street,
			Number:       a.Number,
			Neighborhood: a.Neighborhood,
			DwellingType: string(a.DwellingType),
			Unit:         a.Unit,
			Reference:    a.Reference,
		}
		if a.Coordinates != nil {
			lat, lng := a.Coordinates.Latitude(), a.Coordinates.Longitude()
			resp.Address.Latitude, resp.Address.Longitude = &lat, &lng
		}
	}
	if v.Quote != nil {
		q := toQuoteResponse(*v.Quote)
		resp.Quote = &q
	}
	if v.Payment.IsSelected() {
		resp.Payment = &PaymentResponse{Method: string(v.Payment.Method())}
		if tendered, ok := v.Payment.Tendered(); ok {
			resp.Payment.Tendered = &tendered
		}
	}
	if s := v.Settlement; s != nil {
		resp.Settlement = &SettlementResponse{
			IsValid:   s.IsValid,
			Change:    s.Change,
			Shortfall: s.Shortfall,
			Message:   s.Message,
		}
	}

	return resp
}

type SubmitResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	Summary     string `json:"summary"`
	HandOffLink string `json:"handOffLink,omitempty"`
	Warning     string `json:"warning,omitempty"`
}

func toSubmitResponse(r commands.SubmitOrderResult) SubmitResponse {
	return SubmitResponse{
		OrderID:     r.OrderID.String(),
		OrderNumber: r.OrderNumber,
		Status:      r.Status.String(),
		Summary:     r.Summary,
		HandOffLink: r.HandOffLink,
		Warning:     r.Warning,
	}
}

type StoreStatusResponse struct {
	StoreID      string    `json:"storeId"`
	Name         string    `json:"name"`
	IsOpen       bool      `json:"isOpen"`
	DeliveryMode string    `json:"deliveryMode"`
	CheckedAt    time.Time `json:"checkedAt"`
}

type StoreOrderResponse struct {
	ID             string       `json:"id"`
	Number         string       `json:"number"`
	CustomerName   string       `json:"customerName"`
	DeliveryMethod string       `json:"deliveryMethod"`
	Total          kernel.Money `json:"total"`
	Status         string       `json:"status"`
	ItemCount      int          `json:"itemCount"`
	CreatedAt      time.Time    `json:"createdAt"`
}
