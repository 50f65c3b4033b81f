package ports

import (
	"context"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
)

// SessionRepository keeps checkout sessions between requests. Sessions
// expire after a period of inactivity, which counts as abandonment.
type SessionRepository interface {
	// Get returns errs.ErrObjectNotFound for unknown or expired sessions.
	Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error)
	// Save stores the session and refreshes its expiry.
	Save(ctx context.Context, session *checkout.Session) error
	Delete(ctx context.Context, id kernel.UUID) error
}
