package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// StartCheckoutCommandHandler reads the store configuration once and opens a
// session on the flow's first step.
type StartCheckoutCommandHandler struct {
	stores   ports.StoreRepository
	sessions ports.SessionRepository
	flow     checkout.Flow
	now      func() time.Time
}

func NewStartCheckoutCommandHandler(
	stores ports.StoreRepository,
	sessions ports.SessionRepository,
	flow checkout.Flow,
	now func() time.Time,
) StartCheckoutCommandHandler {
	return StartCheckoutCommandHandler{
		stores:   stores,
		sessions: sessions,
		flow:     flow,
		now:      now,
	}
}

// Handle returns the ID of the new session.
func (h *StartCheckoutCommandHandler) Handle(ctx context.Context, cmd StartCheckoutCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	st, err := h.stores.Get(ctx, cmd.StoreID())
	if err != nil {
		return kernel.UUID{}, err
	}

	session, err := h.flow.Start(kernel.NewUUID(), st, cmd.Cart(), h.now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.sessions.Save(ctx, session); err != nil {
		return kernel.UUID{}, err
	}

	return session.ID(), nil
}
