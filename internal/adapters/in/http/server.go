// Package http exposes the checkout use cases as a JSON API served by echo.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/delivery"
	"storefront/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type (
	StartCheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.StartCheckoutCommand) (kernel.UUID, error)
	}
	UpdateCheckoutDetailsHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateCheckoutDetailsCommand) error
	}
	NavigateCheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.NavigateCheckoutCommand) (checkout.Step, error)
	}
	QuoteDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.SessionCommand) (delivery.Quote, error)
	}
	SubmitOrderHandler interface {
		Handle(ctx context.Context, cmd commands.SessionCommand) (commands.SubmitOrderResult, error)
	}
	AbandonCheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.SessionCommand) error
	}
	GetCheckoutHandler interface {
		Handle(ctx context.Context, query queries.GetCheckoutQuery) (queries.GetCheckoutQueryResponse, error)
	}
	GetStoreStatusHandler interface {
		Handle(ctx context.Context, query queries.GetStoreStatusQuery) (queries.GetStoreStatusQueryResponse, error)
	}
	ListStoreOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListStoreOrdersQuery) ([]queries.ListStoreOrdersQueryResponse, error)
	}
)

// Handlers groups the use cases served by Server.
type Handlers struct {
	// Command handlers
	StartCheckout         StartCheckoutHandler
	UpdateCheckoutDetails UpdateCheckoutDetailsHandler
	NavigateCheckout      NavigateCheckoutHandler
	QuoteDelivery         QuoteDeliveryHandler
	SubmitOrder           SubmitOrderHandler
	AbandonCheckout       AbandonCheckoutHandler

	// Query handlers
	GetCheckout     GetCheckoutHandler
	GetStoreStatus  GetStoreStatusHandler
	ListStoreOrders ListStoreOrdersHandler
}

// Server translates HTTP requests into commands and queries and their
// results into JSON.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "HTTPServer"),
	}
}

// StartCheckout handles POST /api/v1/stores/:storeID/checkouts.
func (s *Server) StartCheckout(ctx echo.Context) error {
	storeID, err := kernel.UUIDFromString(ctx.Param("storeID"))
	if err != nil {
		return badRequest(ctx, "Invalid store id")
	}

	var req StartCheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewStartCheckoutCommand(storeID, req.toLines())
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.StartCheckout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutCreated{ID: id.String()})
}

// GetCheckout handles GET /api/v1/checkouts/:id.
func (s *Server) GetCheckout(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid checkout id")
	}

	query, err := queries.NewGetCheckoutQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetCheckout.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCheckoutResponse(view))
}

// UpdateCheckout handles PATCH /api/v1/checkouts/:id.
func (s *Server) UpdateCheckout(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid checkout id")
	}

	var req UpdateCheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return s.fail(ctx, err)
	}

	details, err := req.toDetails()
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateCheckoutDetailsCommand(id, details)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.UpdateCheckoutDetails.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// NextStep handles POST /api/v1/checkouts/:id/next.
func (s *Server) NextStep(ctx echo.Context) error {
	return s.navigate(ctx, commands.DirectionForward)
}

// PreviousStep handles POST /api/v1/checkouts/:id/back.
func (s *Server) PreviousStep(ctx echo.Context) error {
	return s.navigate(ctx, commands.DirectionBack)
}

func (s *Server) navigate(ctx echo.Context, direction commands.Direction) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid checkout id")
	}

	cmd, err := commands.NewNavigateCheckoutCommand(id, direction)
	if err != nil {
		return s.fail(ctx, err)
	}

	step, err := s.handlers.NavigateCheckout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StepResponse{Step: step.String()})
}

// QuoteDelivery handles POST /api/v1/checkouts/:id/quote.
func (s *Server) QuoteDelivery(ctx echo.Context) error {
	cmd, err := sessionCommand(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid checkout id")
	}

	quote, err := s.handlers.QuoteDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toQuoteResponse(quote))
}

// SubmitOrder handles POST /api/v1/checkouts/:id/submit. An order that could
// not be stored is still a success for the shopper; the response carries a
// warning instead.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	cmd, err := sessionCommand(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid checkout id")
	}

	result, err := s.handlers.SubmitOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSubmitResponse(result))
}

// AbandonCheckout handles DELETE /api/v1/checkouts/:id.
func (s *Server) AbandonCheckout(ctx echo.Context) error {
	cmd, err := sessionCommand(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid checkout id")
	}

	if err = s.handlers.AbandonCheckout.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStoreStatus handles GET /api/v1/stores/:storeID/status.
func (s *Server) GetStoreStatus(ctx echo.Context) error {
	storeID, err := kernel.UUIDFromString(ctx.Param("storeID"))
	if err != nil {
		return badRequest(ctx, "Invalid store id")
	}

	query, err := queries.NewGetStoreStatusQuery(storeID)
	if err != nil {
		return s.fail(ctx, err)
	}

	st, err := s.handlers.GetStoreStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StoreStatusResponse{
		StoreID:      st.StoreID.String(),
		Name:         st.Name,
		IsOpen:       st.IsOpen,
		DeliveryMode: st.DeliveryMode.String(),
		CheckedAt:    st.CheckedAt,
	})
}

// ListStoreOrders handles GET /api/v1/stores/:storeID/orders.
func (s *Server) ListStoreOrders(ctx echo.Context) error {
	storeID, err := kernel.UUIDFromString(ctx.Param("storeID"))
	if err != nil {
		return badRequest(ctx, "Invalid store id")
	}
	limit, err := intParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}
	offset, err := intParam(ctx, "offset")
	if err != nil {
		return badRequest(ctx, "Invalid offset")
	}

	query, err := queries.NewListStoreOrdersQuery(storeID, limit, offset)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.ListStoreOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]StoreOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = StoreOrderResponse{
			ID:             o.ID.String(),
			Number:         o.Number,
			CustomerName:   o.CustomerName,
			DeliveryMethod: o.DeliveryMethod,
			Total:          o.Total,
			Status:         o.Status.String(),
			ItemCount:      o.ItemCount,
			CreatedAt:      o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func sessionID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func sessionCommand(ctx echo.Context) (commands.SessionCommand, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return commands.SessionCommand{}, err
	}
	return commands.NewSessionCommand(id)
}

func intParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
