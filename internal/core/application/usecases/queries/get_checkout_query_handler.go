package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/ports"
)

// GetCheckoutQueryHandler builds the session view, including the steps the
// shopper will go through and whether the store currently accepts orders.
type GetCheckoutQueryHandler struct {
	sessions  ports.SessionRepository
	flow      checkout.Flow
	evaluator schedule.Evaluator
	now       func() time.Time
}

func NewGetCheckoutQueryHandler(
	sessions ports.SessionRepository,
	flow checkout.Flow,
	evaluator schedule.Evaluator,
	now func() time.Time,
) GetCheckoutQueryHandler {
	return GetCheckoutQueryHandler{
		sessions:  sessions,
		flow:      flow,
		evaluator: evaluator,
		now:       now,
	}
}

func (h GetCheckoutQueryHandler) Handle(ctx context.Context, query GetCheckoutQuery) (GetCheckoutQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCheckoutQueryResponse{}, err
	}

	s, err := h.sessions.Get(ctx, query.SessionID())
	if err != nil {
		return GetCheckoutQueryResponse{}, err
	}

	resp := GetCheckoutQueryResponse{
		ID:             s.ID(),
		StoreID:        s.Store().ID(),
		StoreName:      s.Store().Name(),
		Step:           s.CurrentStep(),
		Steps:          h.flow.StepsFor(s),
		Customer:       s.Customer(),
		DeliveryMethod: s.DeliveryMethod(),
		QuotePending:   s.IsQuotePending(),
		Payment:        s.Payment(),
		Observations:   s.Observations(),
		Subtotal:       s.Subtotal(),
		Total:          s.AmountDue(),
		StoreOpen:      s.Store().IsOpen(h.evaluator, h.now()),
		Submitting:     s.IsSubmitting(),
		Closed:         s.IsClosed(),
	}

	for _, item := range s.Cart().Items() {
		resp.Lines = append(resp.Lines, CheckoutLine{
			CatalogItemID: item.CatalogItemID(),
			Name:          item.Name(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice(),
			LineTotal:     item.LineTotal(),
			VariantLabel:  item.VariantLabel(),
			OptionLabels:  item.OptionLabels(),
		})
	}

	if address, ok := s.Address(); ok {
		resp.Address = &address
	}
	if quote, ok := s.CurrentQuote(); ok && s.DeliveryMethod().IsDelivery() {
		resp.Quote = &quote
		if fee, known := quote.Fee(); known {
			resp.DeliveryFee = &fee
		}
	}
	if settlement, ok := s.Settlement(); ok {
		resp.Settlement = &settlement
	}

	return resp, nil
}
