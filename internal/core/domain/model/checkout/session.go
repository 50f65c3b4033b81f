package checkout

import (
	"errors"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// Session is the state of one shopper's checkout. It is owned by a single
// checkout flow and is never shared.
type Session struct {
	id        kernel.UUID
	store     *store.Store
	cart      cart.Cart
	startedAt time.Time

	currentStep Step
	path        []Step

	customer       Customer
	deliveryMethod DeliveryMethod
	address        *Address
	quote          *delivery.Quote
	quoteSeq       uint64
	quotePending   bool
	payment        payment.Selection
	observations   string

	submitting   bool
	submittingAt time.Time
	abandoned    bool

	guard guard.ConstructorGuard
}

// NewSession starts a checkout on firstStep for a non-empty cart.
func NewSession(id kernel.UUID, st *store.Store, c cart.Cart, firstStep Step, startedAt time.Time) (*Session, error) {
	var cartErr error
	if c.IsEmpty() {
		cartErr = ErrCartIsEmpty
	}
	var stepErr error
	if firstStep == "" {
		stepErr = errs.NewValueIsRequiredError("firstStep")
	}

	if err := errors.Join(
		validateID(id),
		validateStore(st),
		cartErr,
		stepErr,
	); err != nil {
		return nil, err
	}

	return &Session{
		id:          id,
		store:       st,
		cart:        c,
		startedAt:   startedAt,
		currentStep: firstStep,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) ID() kernel.UUID {
	return s.id
}

func (s *Session) Store() *store.Store {
	return s.store
}

func (s *Session) Cart() cart.Cart {
	return s.cart
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

func (s *Session) CurrentStep() Step {
	return s.currentStep
}

// Path returns the steps left behind, oldest first.
func (s *Session) Path() []Step {
	return slices.Clone(s.path)
}

func (s *Session) Customer() Customer {
	return s.customer
}

func (s *Session) DeliveryMethod() DeliveryMethod {
	return s.deliveryMethod
}

func (s *Session) Address() (Address, bool) {
	if s.address == nil {
		return Address{}, false
	}
	return *s.address, true
}

func (s *Session) Quote() (delivery.Quote, bool) {
	if s.quote == nil {
		return delivery.Quote{}, false
	}
	return *s.quote, true
}

func (s *Session) IsQuotePending() bool {
	return s.quotePending
}

func (s *Session) Payment() payment.Selection {
	return s.payment
}

func (s *Session) Observations() string {
	return s.observations
}

func (s *Session) IsSubmitting() bool {
	return s.submitting
}

func (s *Session) IsAbandoned() bool {
	return s.abandoned
}

func (s *Session) IsSubmitted() bool {
	return s.currentStep == StepSubmitted
}

// IsClosed reports whether the session no longer accepts changes.
func (s *Session) IsClosed() bool {
	return s.abandoned || s.IsSubmitted()
}

func (s *Session) Subtotal() kernel.Money {
	return s.cart.Subtotal()
}

// DeliveryFee is the fee charged now: zero for pickup, without a usable quote
// or when the fee is settled later with the merchant.
func (s *Session) DeliveryFee() kernel.Money {
	if !s.deliveryMethod.IsDelivery() {
		return kernel.Zero()
	}
	quote, ok := s.CurrentQuote()
	if !ok {
		return kernel.Zero()
	}
	return quote.FeeOrZero()
}

// AmountDue is the cart subtotal plus the delivery fee.
func (s *Session) AmountDue() kernel.Money {
	return s.Subtotal().Add(s.DeliveryFee())
}

// Settlement settles the cash amount of the payment selection against AmountDue.
func (s *Session) Settlement() (payment.Settlement, bool) {
	tendered, ok := s.payment.Tendered()
	if !ok || s.payment.Method() != payment.MethodCash {
		return payment.Settlement{}, false
	}
	return payment.Settle(tendered, s.AmountDue()), true
}

// CurrentQuote returns the quote if it is still valid for the current address.
func (s *Session) CurrentQuote() (delivery.Quote, bool) {
	if s.quote == nil || s.quotePending {
		return delivery.Quote{}, false
	}
	if !s.quote.IsFreshFor(s.destination()) {
		return delivery.Quote{}, false
	}
	return *s.quote, true
}

func (s *Session) SetCustomer(c Customer) error {
	if s.IsClosed() {
		return ErrSessionIsClosed
	}
	s.customer = Customer{
		Name:           strings.TrimSpace(c.Name),
		WhatsAppNumber: strings.TrimSpace(c.WhatsAppNumber),
	}
	return nil
}

// SetDeliveryMethod switches between pickup and delivery. Switching cancels
// any quote in flight.
func (s *Session) SetDeliveryMethod(m DeliveryMethod) error {
	if s.IsClosed() {
		return ErrSessionIsClosed
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if m != s.deliveryMethod {
		s.CancelQuote()
	}
	s.deliveryMethod = m
	return nil
}

// SetAddress replaces the address. A new destination cancels the quote in
// flight; the previous quote stays stored but is no longer fresh.
func (s *Session) SetAddress(a Address) error {
	if s.IsClosed() {
		return ErrSessionIsClosed
	}
	if err := a.DwellingType.Validate(); err != nil {
		return err
	}
	if s.address == nil || !s.address.SameDestination(a) {
		s.CancelQuote()
	}
	s.address = &a
	return nil
}

func (s *Session) SetPayment(p payment.Selection) error {
	if s.IsClosed() {
		return ErrSessionIsClosed
	}
	s.payment = p
	return nil
}

func (s *Session) SetObservations(text string) error {
	if s.IsClosed() {
		return ErrSessionIsClosed
	}
	s.observations = strings.TrimSpace(text)
	return nil
}

// QuoteTicket identifies one quote request. Its result is only applied while
// the ticket is still the latest one issued by the session.
type QuoteTicket struct {
	SessionID   kernel.UUID
	Seq         uint64
	Destination *kernel.Coordinates
}

// BeginQuote issues a ticket for quoting the current address and marks the
// quote as pending. Any earlier ticket is superseded.
func (s *Session) BeginQuote() (QuoteTicket, error) {
	if s.IsClosed() {
		return QuoteTicket{}, ErrSessionIsClosed
	}
	if !s.deliveryMethod.IsDelivery() {
		return QuoteTicket{}, ErrQuoteNotApplicable
	}

	mode := s.store.Policy().Mode()
	destination := s.destination()
	if mode.RequiresDestination() && destination == nil {
		return QuoteTicket{}, ErrCoordinatesAreRequired
	}

	s.quoteSeq++
	s.quotePending = true
	return QuoteTicket{SessionID: s.id, Seq: s.quoteSeq, Destination: destination}, nil
}

// ApplyQuote stores the result of ticket. It reports false, and changes
// nothing, when the ticket was superseded or cancelled or the session closed.
func (s *Session) ApplyQuote(ticket QuoteTicket, q delivery.Quote) bool {
	if !s.isCurrentTicket(ticket) {
		return false
	}
	s.quote = &q
	s.quotePending = false
	return true
}

// FailQuote clears the pending state after the quote for ticket failed. The
// session is left without a quote so the shopper can retry.
func (s *Session) FailQuote(ticket QuoteTicket) bool {
	if !s.isCurrentTicket(ticket) {
		return false
	}
	s.quote = nil
	s.quotePending = false
	return true
}

// CancelQuote invalidates the ticket in flight, if any.
func (s *Session) CancelQuote() {
	if !s.quotePending {
		return
	}
	s.quoteSeq++
	s.quotePending = false
}

// Abandon closes the session. Late quote results become no-ops.
func (s *Session) Abandon() {
	s.CancelQuote()
	s.abandoned = true
}

func (s *Session) isCurrentTicket(ticket QuoteTicket) bool {
	return !s.IsClosed() &&
		s.quotePending &&
		ticket.SessionID.IsEqual(s.id) &&
		ticket.Seq == s.quoteSeq
}

func (s *Session) destination() *kernel.Coordinates {
	if s.address == nil {
		return nil
	}
	return s.address.Coordinates
}

func validateID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return nil
}

func validateStore(st *store.Store) error {
	if err := st.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("store", err)
	}
	return nil
}
