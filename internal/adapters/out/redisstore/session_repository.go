package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const DefaultSessionTTL = 30 * time.Minute

// SessionRepository stores each checkout session under its own key. Every
// Save pushes the expiry forward, so an idle session simply disappears.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Get(ctx context.Context, id kernel.UUID) (*checkout.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("session", id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session failed: %w", err)
	}

	s, err := unmarshalSession(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) Save(ctx context.Context, s *checkout.Session) error {
	data, err := marshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err = r.client.Set(ctx, sessionKey(s.ID()), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

func sessionKey(id kernel.UUID) string {
	return fmt.Sprintf("checkout:session:%s", id.String())
}
