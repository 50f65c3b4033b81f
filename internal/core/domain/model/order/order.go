package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// numberLength is how many hex characters of the ID make up the order number.
const numberLength = 8

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when building an order from an empty cart.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")

	// ErrDeliveryAddressIsRequired is returned for delivery orders without an address.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("deliveryAddress")
)

// Fulfilment describes how the order reaches the customer. Fee is nil for
// pickup orders and for delivery fees settled later with the merchant, in
// which case FeeMessage explains why.
type Fulfilment struct {
	Method     checkout.DeliveryMethod
	Address    *checkout.Address
	Fee        *kernel.Money
	FeeMessage string
}

// Draft carries everything NewOrder needs.
type Draft struct {
	ID           kernel.UUID
	StoreID      kernel.UUID
	Customer     checkout.Customer
	Items        []cart.Item
	Fulfilment   Fulfilment
	Payment      payment.Selection
	Observations string
	CreatedAt    time.Time
}

// Order is the aggregate root for a submitted checkout. Everything except the
// status is fixed at construction.
//
// Order follows these invariants:
//   - Must have valid order and store identifiers
//   - Must have at least one item
//   - Delivery orders must have an address
//   - Totals, change and summary are derived from the draft and never set directly
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	storeID      kernel.UUID
	customer     checkout.Customer
	items        []cart.Item
	fulfilment   Fulfilment
	payment      payment.Selection
	observations string
	createdAt    time.Time

	subtotal kernel.Money
	total    kernel.Money
	change   *kernel.Money
	summary  string

	status Status

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order from a draft, computing totals and the
// summary text.
//
// Example:
//
//	o, err := NewOrder(Draft{
//	    ID:       kernel.NewUUID(),
//	    StoreID:  storeID,
//	    Customer: checkout.Customer{Name: "Ana", WhatsAppNumber: "5550102030"},
//	    Items:    c.Items(),
//	    Fulfilment: Fulfilment{Method: checkout.DeliveryMethodPickup},
//	    Payment:  payment.NewTransferSelection(),
//	})
func NewOrder(d Draft) (*Order, error) {
	o := &Order{
		observations: strings.TrimSpace(d.Observations),
		createdAt:    d.CreatedAt,
		status:       Pending,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(d.ID),
		o.setStoreID(d.StoreID),
		o.setCustomer(d.Customer),
		o.setItems(d.Items),
		o.setFulfilment(d.Fulfilment),
		o.setPayment(d.Payment),
	); err != nil {
		return nil, err
	}

	o.computeTotals()
	o.summary = renderSummary(o)
	return o, nil
}

// RestoreOrder rebuilds a stored order with its persisted status.
func RestoreOrder(d Draft, status Status) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	o, err := NewOrder(d)
	if err != nil {
		return nil, err
	}
	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Draft returns the input the order was built from. RestoreOrder(o.Draft(), s)
// yields an equal order with status s.
func (o *Order) Draft() Draft {
	return Draft{
		ID:           o.id,
		StoreID:      o.storeID,
		Customer:     o.customer,
		Items:        slices.Clone(o.items),
		Fulfilment:   o.fulfilment,
		Payment:      o.payment,
		Observations: o.observations,
		CreatedAt:    o.createdAt,
	}
}

// Number is the short human-facing order reference.
func (o *Order) Number() string {
	return Number(o.id)
}

func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

func (o *Order) Customer() checkout.Customer {
	return o.customer
}

// Items returns a copy of the order lines.
func (o *Order) Items() []cart.Item {
	return slices.Clone(o.items)
}

func (o *Order) Fulfilment() Fulfilment {
	return o.fulfilment
}

func (o *Order) Payment() payment.Selection {
	return o.payment
}

func (o *Order) Observations() string {
	return o.observations
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the fee and whether it is known.
func (o *Order) DeliveryFee() (kernel.Money, bool) {
	if o.fulfilment.Fee == nil {
		return kernel.Zero(), false
	}
	return *o.fulfilment.Fee, true
}

func (o *Order) Total() kernel.Money {
	return o.total
}

// Change returns the change owed for cash orders.
func (o *Order) Change() (kernel.Money, bool) {
	if o.change == nil {
		return kernel.Zero(), false
	}
	return *o.change, true
}

// Summary returns the message sent to the merchant.
func (o *Order) Summary() string {
	return o.summary
}

func (o *Order) Status() Status {
	return o.status
}

// MarkSubmitted records that the order is stored.
//
// This method enforces the following business rules:
//   - The order must be Pending or Unsaved
//   - Submitted is a final state
func (o *Order) MarkSubmitted() error {
	newStatus, err := o.status.Submit()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkUnsaved records that storing the order failed.
//
// This method enforces the following business rules:
//   - The order must be Pending
func (o *Order) MarkUnsaved() error {
	newStatus, err := o.status.MarkUnsaved()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Number derives an order number from an order ID.
func Number(id kernel.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	if len(hex) > numberLength {
		hex = hex[:numberLength]
	}
	return strings.ToUpper(hex)
}

func (o *Order) computeTotals() {
	subtotal := kernel.Zero()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.subtotal = subtotal

	fee, _ := o.DeliveryFee()
	o.total = subtotal.Add(fee)

	if tendered, ok := o.payment.Tendered(); ok && o.payment.Method() == payment.MethodCash {
		change := payment.Settle(tendered, o.total).Change
		o.change = &change
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("storeID", err)
	}
	o.storeID = id
	return nil
}

func (o *Order) setCustomer(c checkout.Customer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return checkout.ErrCustomerNameIsRequired
	}
	if strings.TrimSpace(c.WhatsAppNumber) == "" {
		return checkout.ErrWhatsAppNumberIsRequired
	}
	o.customer = checkout.Customer{Name: name, WhatsAppNumber: strings.TrimSpace(c.WhatsAppNumber)}
	return nil
}

func (o *Order) setItems(items []cart.Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setFulfilment(f Fulfilment) error {
	if err := f.Method.Validate(); err != nil {
		return err
	}
	if !f.Method.IsDelivery() {
		o.fulfilment = Fulfilment{Method: f.Method}
		return nil
	}
	if f.Address == nil {
		return ErrDeliveryAddressIsRequired
	}
	if f.Fee != nil && f.Fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee", kernel.ErrMoneyIsNegative)
	}
	address := *f.Address
	f.Address = &address
	o.fulfilment = f
	return nil
}

func (o *Order) setPayment(p payment.Selection) error {
	if !p.IsSelected() {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	if err := p.Method().Validate(); err != nil {
		return err
	}
	o.payment = p
	return nil
}
