package checkout

import (
	"slices"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/pkg/guard"
)

// Snapshot is the full state of a Session, used by session storage.
type Snapshot struct {
	ID             kernel.UUID
	Store          *store.Store
	Cart           cart.Cart
	StartedAt      time.Time
	CurrentStep    Step
	Path           []Step
	Customer       Customer
	DeliveryMethod DeliveryMethod
	Address        *Address
	Quote          *delivery.Quote
	QuoteSeq       uint64
	QuotePending   bool
	Payment        payment.Selection
	Observations   string
	Submitting     bool
	SubmittingAt   time.Time
	Abandoned      bool
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:             s.id,
		Store:          s.store,
		Cart:           s.cart,
		StartedAt:      s.startedAt,
		CurrentStep:    s.currentStep,
		Path:           slices.Clone(s.path),
		Customer:       s.customer,
		DeliveryMethod: s.deliveryMethod,
		Address:        s.address,
		Quote:          s.quote,
		QuoteSeq:       s.quoteSeq,
		QuotePending:   s.quotePending,
		Payment:        s.payment,
		Observations:   s.observations,
		Submitting:     s.submitting,
		SubmittingAt:   s.submittingAt,
		Abandoned:      s.abandoned,
	}
}

// RestoreSession rebuilds a session from storage without re-validating it.
func RestoreSession(snap Snapshot) *Session {
	return &Session{
		id:             snap.ID,
		store:          snap.Store,
		cart:           snap.Cart,
		startedAt:      snap.StartedAt,
		currentStep:    snap.CurrentStep,
		path:           slices.Clone(snap.Path),
		customer:       snap.Customer,
		deliveryMethod: snap.DeliveryMethod,
		address:        snap.Address,
		quote:          snap.Quote,
		quoteSeq:       snap.QuoteSeq,
		quotePending:   snap.QuotePending,
		payment:        snap.Payment,
		observations:   snap.Observations,
		submitting:     snap.Submitting,
		submittingAt:   snap.SubmittingAt,
		abandoned:      snap.Abandoned,
		guard:          guard.NewConstructorGuard(),
	}
}
