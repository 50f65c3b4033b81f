package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Direction is the way a shopper moves through the checkout steps.
type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionBack    Direction = "back"
)

func (d Direction) Validate() error {
	switch d {
	case DirectionForward, DirectionBack:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not a direction", string(d)))
	}
}

// NavigateCheckoutCommand moves a session one step forward or back.
type NavigateCheckoutCommand struct {
	SessionCommand

	direction Direction
}

func NewNavigateCheckoutCommand(sessionID kernel.UUID, direction Direction) (NavigateCheckoutCommand, error) {
	session, sessionErr := NewSessionCommand(sessionID)
	if err := errors.Join(sessionErr, direction.Validate()); err != nil {
		return NavigateCheckoutCommand{}, err
	}

	return NavigateCheckoutCommand{
		SessionCommand: session,
		direction:      direction,
	}, nil
}

func (c NavigateCheckoutCommand) Direction() Direction {
	return c.direction
}
