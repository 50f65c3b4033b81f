package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewEcho builds the echo instance with the validator, middleware and every
// route of s registered.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	RegisterRoutes(e, s)
	return e
}

func RegisterRoutes(e *echo.Echo, s *Server) {
	api := e.Group("/api/v1")

	api.POST("/stores/:storeID/checkouts", s.StartCheckout)
	api.GET("/stores/:storeID/status", s.GetStoreStatus)
	api.GET("/stores/:storeID/orders", s.ListStoreOrders)

	api.GET("/checkouts/:id", s.GetCheckout)
	api.PATCH("/checkouts/:id", s.UpdateCheckout)
	api.DELETE("/checkouts/:id", s.AbandonCheckout)
	api.POST("/checkouts/:id/next", s.NextStep)
	api.POST("/checkouts/:id/back", s.PreviousStep)
	api.POST("/checkouts/:id/quote", s.QuoteDelivery)
	api.POST("/checkouts/:id/submit", s.SubmitOrder)
}
