package http

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// errorResponse maps a use case error to its status code and body.
//
//   - step validation failures are 422 and name the step
//   - unreachable collaborators are 503 and can be retried
//   - requests that conflict with the session state are 409
func errorResponse(err error) (int, Error) {
	var stepErr *checkout.StepValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Details: formatValidationErrors(validationErrs),
		}
	case errors.As(err, &stepErr):
		return http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: stepErr.Cause.Error(),
			Step:    stepErr.Step.String(),
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		return status(http.StatusNotFound, err)
	case errors.Is(err, errs.ErrServiceUnavailable):
		return status(http.StatusServiceUnavailable, err)
	case errors.Is(err, checkout.ErrStoreClosed),
		errors.Is(err, checkout.ErrSubmissionInProgress),
		errors.Is(err, checkout.ErrSessionIsClosed),
		errors.Is(err, checkout.ErrQuoteIsPending),
		errors.Is(err, checkout.ErrNoPreviousStep),
		errors.Is(err, checkout.ErrNoNextStep),
		errors.Is(err, checkout.ErrNotOnConfirmStep),
		errors.Is(err, checkout.ErrQuoteNotApplicable),
		errors.Is(err, commands.ErrQuoteSuperseded):
		return status(http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrNothingToUpdate),
		errors.Is(err, commands.ErrCartLinesAreRequired):
		return status(http.StatusBadRequest, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Request was cancelled",
		}
	default:
		return http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		}
	}
}

func status(code int, err error) (int, Error) {
	return code, Error{Code: code, Message: err.Error()}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code, body := errorResponse(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return ctx.JSON(code, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
