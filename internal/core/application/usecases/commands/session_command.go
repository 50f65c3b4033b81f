package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrSessionCommandIsNotConstructed = errors.New(
	"SessionCommand must be created via NewSessionCommand constructor",
)

// SessionCommand addresses an existing checkout session. Navigate, quote,
// submit and abandon need nothing else.
type SessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSessionCommand(sessionID kernel.UUID) (SessionCommand, error) {
	cmd := SessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return SessionCommand{}, err
	}

	return cmd, nil
}

func (c SessionCommand) Validate() error {
	return c.guard.Validate(ErrSessionCommandIsNotConstructed)
}

func (c SessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *SessionCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}
