package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// RetryUnsavedOrdersCommandHandler stores orders that could not be persisted
// at submission time. Orders are inserted under their original ID, so an
// order that was in fact stored before is counted as saved.
type RetryUnsavedOrdersCommandHandler struct {
	queue      ports.UnsavedOrderQueue
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewRetryUnsavedOrdersCommandHandler creates the handler. publisher may be nil.
func NewRetryUnsavedOrdersCommandHandler(
	queue ports.UnsavedOrderQueue,
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) RetryUnsavedOrdersCommandHandler {
	return RetryUnsavedOrdersCommandHandler{
		queue:      queue,
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "RetryUnsavedOrdersCommandHandler"),
	}
}

// Handle returns how many orders were saved. It stops at the first order that
// still cannot be stored and puts it back in the queue.
func (h *RetryUnsavedOrdersCommandHandler) Handle(ctx context.Context, cmd RetryUnsavedOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	saved := 0
	for range cmd.BatchSize() {
		o, err := h.queue.Pop(ctx)
		if errors.Is(err, ports.ErrQueueIsEmpty) {
			return saved, nil
		}
		if err != nil {
			return saved, err
		}

		if err = o.MarkSubmitted(); err != nil {
			h.logger.ErrorContext(ctx, "dropping unsaved order in unexpected status",
				"orderID", o.ID().String(), "status", o.Status().String(), "error", err)
			continue
		}
		if err = h.save(ctx, o); err != nil {
			return saved, err
		}
		saved++
	}

	return saved, nil
}

func (h *RetryUnsavedOrdersCommandHandler) save(ctx context.Context, o *order.Order) error {
	err := addOrder(ctx, h.uowFactory, o)
	switch {
	case err == nil:
		h.logger.InfoContext(ctx, "saved previously unsaved order", "orderID", o.ID().String())
		if h.publisher != nil {
			if pubErr := h.publisher.PublishOrderSubmitted(ctx, o); pubErr != nil {
				h.logger.WarnContext(ctx, "failed to publish order event",
					"orderID", o.ID().String(), "error", pubErr)
			}
		}
		return nil
	case errors.Is(err, ports.ErrOrderAlreadyExists):
		h.logger.InfoContext(ctx, "unsaved order was already stored", "orderID", o.ID().String())
		return nil
	}

	unsaved, restoreErr := order.RestoreOrder(o.Draft(), order.Unsaved)
	if restoreErr != nil {
		return errors.Join(err, restoreErr)
	}
	if pushErr := h.queue.Push(ctx, unsaved); pushErr != nil {
		h.logger.ErrorContext(ctx, "lost unsaved order while requeueing",
			"orderID", o.ID().String(), "summary", o.Summary(), "error", pushErr)
		return errors.Join(err, pushErr)
	}
	return err
}
