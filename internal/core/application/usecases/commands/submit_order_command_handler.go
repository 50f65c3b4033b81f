package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// SubmissionTimeout bounds the work done after a submission is accepted. It
// stays below checkout.SubmissionLockTimeout.
const SubmissionTimeout = 30 * time.Second

const (
	UnsavedOrderWarning  = "order may not be saved, please confirm with the merchant"
	HandOffFailedWarning = "could not open the merchant chat, please contact the store directly"
)

// SubmitOrderResult is what the shopper sees after submitting.
type SubmitOrderResult struct {
	OrderID     kernel.UUID
	OrderNumber string
	Summary     string
	HandOffLink string
	Status      order.Status
	Warning     string
}

// SubmitOrderDeps groups the collaborators of SubmitOrderCommandHandler.
// Publisher is optional.
type SubmitOrderDeps struct {
	Sessions   ports.SessionRepository
	Flow       checkout.Flow
	Builder    services.OrderDraftBuilder
	Evaluator  schedule.Evaluator
	UoWFactory OrderUoWFactory
	Unsaved    ports.UnsavedOrderQueue
	Messenger  ports.Messenger
	Publisher  ports.OrderEventPublisher
	Guard      *SubmissionGuard
	Now        func() time.Time
}

// SubmitOrderCommandHandler turns a confirmed session into an order and hands
// it to the merchant.
//
// A refused submission (closed store, invalid step, missing quote, one
// already in flight) changes nothing and stores nothing. Once accepted, a
// failure to persist the order does not block the hand-off: the order is
// queued as Unsaved for RetryUnsavedOrdersCommandHandler and the result
// carries a warning. Accepted submissions finish even if the caller's context
// is cancelled.
type SubmitOrderCommandHandler struct {
	deps   SubmitOrderDeps
	logger *slog.Logger
}

func NewSubmitOrderCommandHandler(deps SubmitOrderDeps, logger *slog.Logger) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		deps:   deps,
		logger: logger.With("component", "SubmitOrderCommandHandler"),
	}
}

func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SessionCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	if !h.deps.Guard.TryAcquire(cmd.SessionID()) {
		return SubmitOrderResult{}, checkout.ErrSubmissionInProgress
	}
	defer h.deps.Guard.Release(cmd.SessionID())

	session, err := h.deps.Sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return SubmitOrderResult{}, err
	}

	now := h.deps.Now()
	if err = h.deps.Flow.BeginSubmission(session, h.deps.Evaluator, now); err != nil {
		return SubmitOrderResult{}, err
	}
	if err = h.deps.Sessions.Save(ctx, session); err != nil {
		return SubmitOrderResult{}, err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SubmissionTimeout)
	defer cancel()

	o, err := h.deps.Builder.Build(kernel.NewUUID(), session, now)
	if err != nil {
		h.abort(ctx, session)
		return SubmitOrderResult{}, err
	}
	if err = o.MarkSubmitted(); err != nil {
		h.abort(ctx, session)
		return SubmitOrderResult{}, err
	}

	result := SubmitOrderResult{
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		Summary:     o.Summary(),
		Status:      order.Submitted,
	}

	if err = addOrder(ctx, h.deps.UoWFactory, o); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist order, queueing for retry",
			"orderID", o.ID().String(), "error", err)
		result.Status = order.Unsaved
		result.Warning = UnsavedOrderWarning
		h.queueUnsaved(ctx, o)
	} else {
		h.publish(ctx, o)
	}

	link, err := h.deps.Messenger.HandOff(session.Store().WhatsAppNumber(), result.Summary)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build hand-off link",
			"orderID", o.ID().String(), "error", err)
		result.Warning = joinWarnings(result.Warning, HandOffFailedWarning)
	}
	result.HandOffLink = link

	if err = h.deps.Flow.MarkSubmitted(session); err != nil {
		return SubmitOrderResult{}, err
	}
	if err = h.deps.Sessions.Save(ctx, session); err != nil {
		h.logger.WarnContext(ctx, "failed to store submitted session",
			"sessionID", session.ID().String(), "error", err)
	}

	return result, nil
}

func (h *SubmitOrderCommandHandler) abort(ctx context.Context, session *checkout.Session) {
	h.deps.Flow.AbortSubmission(session)
	if err := h.deps.Sessions.Save(ctx, session); err != nil {
		h.logger.ErrorContext(ctx, "failed to clear submitting flag",
			"sessionID", session.ID().String(), "error", err)
	}
}

func (h *SubmitOrderCommandHandler) queueUnsaved(ctx context.Context, o *order.Order) {
	unsaved, err := order.RestoreOrder(o.Draft(), order.Unsaved)
	if err == nil {
		err = h.deps.Unsaved.Push(ctx, unsaved)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to queue unsaved order",
			"orderID", o.ID().String(), "error", err)
	}
}

func (h *SubmitOrderCommandHandler) publish(ctx context.Context, o *order.Order) {
	if h.deps.Publisher == nil {
		return
	}
	if err := h.deps.Publisher.PublishOrderSubmitted(ctx, o); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order event",
			"orderID", o.ID().String(), "error", err)
	}
}

func joinWarnings(warnings ...string) string {
	var joined string
	for _, w := range warnings {
		if w == "" {
			continue
		}
		if joined != "" {
			joined += "; "
		}
		joined += w
	}
	return joined
}
