package redisstore

import (
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/model/store"
)

type coordinatesDTO struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type itemDTO struct {
	CatalogItemID string       `json:"catalogItemId"`
	Name          string       `json:"name"`
	Quantity      int          `json:"quantity"`
	UnitPrice     kernel.Money `json:"unitPrice"`
	VariantLabel  string       `json:"variantLabel,omitempty"`
	OptionLabels  []string     `json:"optionLabels,omitempty"`
}

type customerDTO struct {
	Name           string `json:"name"`
	WhatsAppNumber string `json:"whatsappNumber"`
}

type addressDTO struct {
	Street       string          `json:"street"`
	Number       string          `json:"number"`
	Neighborhood string          `json:"neighborhood"`
	DwellingType string          `json:"dwellingType,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	Coordinates  *coordinatesDTO `json:"coordinates,omitempty"`
}

type paymentDTO struct {
	Method   string        `json:"method,omitempty"`
	Tendered *kernel.Money `json:"tendered,omitempty"`
}

type storeDTO struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	WhatsAppNumber       string          `json:"whatsappNumber"`
	Origin               coordinatesDTO  `json:"origin"`
	Policy               json.RawMessage `json:"policy"`
	Schedule             json.RawMessage `json:"schedule,omitempty"`
	BusinessHoursEnabled bool            `json:"businessHoursEnabled"`
}

type quoteDTO struct {
	Mode        string          `json:"mode"`
	Fee         *kernel.Money   `json:"fee,omitempty"`
	DistanceKm  *float64        `json:"distanceKm,omitempty"`
	ZoneID      string          `json:"zoneId,omitempty"`
	Within      bool            `json:"within"`
	Message     string          `json:"message,omitempty"`
	Destination *coordinatesDTO `json:"destination,omitempty"`
}

func fromCoordinates(c *kernel.Coordinates) *coordinatesDTO {
	if c == nil {
		return nil
	}
	return &coordinatesDTO{Latitude: c.Latitude(), Longitude: c.Longitude()}
}

func (dto *coordinatesDTO) toDomain() (*kernel.Coordinates, error) {
	if dto == nil {
		return nil, nil
	}
	c, err := kernel.NewCoordinates(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func fromItems(items []cart.Item) []itemDTO {
	dtos := make([]itemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, itemDTO{
			CatalogItemID: item.CatalogItemID(),
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice(),
			VariantLabel:  item.VariantLabel(),
			OptionLabels:  item.OptionLabels(),
		})
	}
	return dtos
}

func toItems(dtos []itemDTO) ([]cart.Item, error) {
	items := make([]cart.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := cart.NewItem(dto.CatalogItemID, dto.Name, dto.Quantity, dto.UnitPrice, dto.VariantLabel, dto.OptionLabels)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func fromAddress(a *checkout.Address) *addressDTO {
	if a == nil {
		return nil
	}
	return &addressDTO{
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		DwellingType: string(a.DwellingType),
		Unit:         a.Unit,
		Reference:    a.Reference,
		Coordinates:  fromCoordinates(a.Coordinates),
	}
}

func (dto *addressDTO) toDomain() (*checkout.Address, error) {
	if dto == nil {
		return nil, nil
	}
	coords, err := dto.Coordinates.toDomain()
	if err != nil {
		return nil, err
	}
	return &checkout.Address{
		Street:       dto.Street,
		Number:       dto.Number,
		Neighborhood: dto.Neighborhood,
		DwellingType: checkout.DwellingType(dto.DwellingType),
		Unit:         dto.Unit,
		Reference:    dto.Reference,
		Coordinates:  coords,
	}, nil
}

func fromPayment(p payment.Selection) paymentDTO {
	dto := paymentDTO{Method: string(p.Method())}
	if tendered, ok := p.Tendered(); ok {
		dto.Tendered = &tendered
	}
	return dto
}

func (dto paymentDTO) toDomain() (payment.Selection, error) {
	if dto.Method == "" {
		return payment.Selection{}, nil
	}
	return payment.NewSelection(payment.Method(dto.Method), dto.Tendered)
}

func fromStore(s *store.Store) (storeDTO, error) {
	policy, err := delivery.MarshalPolicy(s.Policy())
	if err != nil {
		return storeDTO{}, err
	}
	dto := storeDTO{
		ID:                   s.ID().String(),
		Name:                 s.Name(),
		WhatsAppNumber:       s.WhatsAppNumber(),
		Origin:               coordinatesDTO{Latitude: s.Origin().Latitude(), Longitude: s.Origin().Longitude()},
		Policy:               policy,
		BusinessHoursEnabled: s.BusinessHoursEnabled(),
	}
	if s.Schedule() != nil {
		if dto.Schedule, err = schedule.MarshalSpec(s.Schedule()); err != nil {
			return storeDTO{}, err
		}
	}
	return dto, nil
}

func (dto storeDTO) toDomain() (*store.Store, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	origin, err := kernel.NewCoordinates(dto.Origin.Latitude, dto.Origin.Longitude)
	if err != nil {
		return nil, err
	}
	policy, err := delivery.ParsePolicy(dto.Policy)
	if err != nil {
		return nil, err
	}
	var spec schedule.Spec
	if len(dto.Schedule) > 0 {
		if spec, err = schedule.ParseSpec(dto.Schedule); err != nil {
			return nil, err
		}
	}
	return store.NewStore(id, dto.Name, dto.WhatsAppNumber, origin, policy, spec, dto.BusinessHoursEnabled)
}

func fromQuote(q *delivery.Quote) *quoteDTO {
	if q == nil {
		return nil
	}
	dto := &quoteDTO{
		Mode:    string(q.Mode()),
		ZoneID:  q.ZoneID(),
		Within:  q.WithinServiceArea(),
		Message: q.Message(),
	}
	if fee, ok := q.Fee(); ok {
		dto.Fee = &fee
	}
	if km, ok := q.DistanceKm(); ok {
		dto.DistanceKm = &km
	}
	if dest, ok := q.Destination(); ok {
		dto.Destination = fromCoordinates(&dest)
	}
	return dto
}

func (dto *quoteDTO) toDomain() (*delivery.Quote, error) {
	if dto == nil {
		return nil, nil
	}
	mode := delivery.Mode(dto.Mode)
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	dest, err := dto.Destination.toDomain()
	if err != nil {
		return nil, err
	}
	q := delivery.RestoreQuote(mode, dto.Fee, dto.DistanceKm, dto.ZoneID, dto.Within, dto.Message, dest)
	return &q, nil
}

// sessionDTO is the stored form of checkout.Snapshot. The store travels with
// the session so later requests see the configuration the checkout began with.
type sessionDTO struct {
	ID             string      `json:"id"`
	Store          storeDTO    `json:"store"`
	Items          []itemDTO   `json:"items"`
	StartedAt      time.Time   `json:"startedAt"`
	CurrentStep    string      `json:"currentStep"`
	Path           []string    `json:"path,omitempty"`
	Customer       customerDTO `json:"customer"`
	DeliveryMethod string      `json:"deliveryMethod,omitempty"`
	Address        *addressDTO `json:"address,omitempty"`
	Quote          *quoteDTO   `json:"quote,omitempty"`
	QuoteSeq       uint64      `json:"quoteSeq"`
	QuotePending   bool        `json:"quotePending"`
	Payment        paymentDTO  `json:"payment"`
	Observations   string      `json:"observations,omitempty"`
	Submitting     bool        `json:"submitting"`
	SubmittingAt   time.Time   `json:"submittingAt"`
	Abandoned      bool        `json:"abandoned"`
}

func marshalSession(s *checkout.Session) ([]byte, error) {
	snap := s.Snapshot()
	st, err := fromStore(snap.Store)
	if err != nil {
		return nil, err
	}

	path := make([]string, 0, len(snap.Path))
	for _, step := range snap.Path {
		path = append(path, string(step))
	}

	return json.Marshal(sessionDTO{
		ID:             snap.ID.String(),
		Store:          st,
		Items:          fromItems(snap.Cart.Items()),
		StartedAt:      snap.StartedAt,
		CurrentStep:    string(snap.CurrentStep),
		Path:           path,
		Customer:       customerDTO{Name: snap.Customer.Name, WhatsAppNumber: snap.Customer.WhatsAppNumber},
		DeliveryMethod: string(snap.DeliveryMethod),
		Address:        fromAddress(snap.Address),
		Quote:          fromQuote(snap.Quote),
		QuoteSeq:       snap.QuoteSeq,
		QuotePending:   snap.QuotePending,
		Payment:        fromPayment(snap.Payment),
		Observations:   snap.Observations,
		Submitting:     snap.Submitting,
		SubmittingAt:   snap.SubmittingAt,
		Abandoned:      snap.Abandoned,
	})
}

func unmarshalSession(data []byte) (*checkout.Session, error) {
	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	st, err := dto.Store.toDomain()
	items, itemsErr := toItems(dto.Items)
	address, addressErr := dto.Address.toDomain()
	quote, quoteErr := dto.Quote.toDomain()
	selection, paymentErr := dto.Payment.toDomain()
	if err = errors.Join(err, itemsErr, addressErr, quoteErr, paymentErr); err != nil {
		return nil, err
	}
	c, err := cart.NewCart(items...)
	if err != nil {
		return nil, err
	}

	path := make([]checkout.Step, 0, len(dto.Path))
	for _, step := range dto.Path {
		path = append(path, checkout.Step(step))
	}

	return checkout.RestoreSession(checkout.Snapshot{
		ID:             id,
		Store:          st,
		Cart:           c,
		StartedAt:      dto.StartedAt,
		CurrentStep:    checkout.Step(dto.CurrentStep),
		Path:           path,
		Customer:       checkout.Customer{Name: dto.Customer.Name, WhatsAppNumber: dto.Customer.WhatsAppNumber},
		DeliveryMethod: checkout.DeliveryMethod(dto.DeliveryMethod),
		Address:        address,
		Quote:          quote,
		QuoteSeq:       dto.QuoteSeq,
		QuotePending:   dto.QuotePending,
		Payment:        selection,
		Observations:   dto.Observations,
		Submitting:     dto.Submitting,
		SubmittingAt:   dto.SubmittingAt,
		Abandoned:      dto.Abandoned,
	}), nil
}
