package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const DefaultStoreCacheTTL = time.Minute

// CachedStoreRepository keeps store configurations in redis for a short TTL
// in front of the postgres repository. Concurrent misses for one store share
// a single load. Cache failures are logged and fall through to next.
type CachedStoreRepository struct {
	next   ports.StoreRepository
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

var _ ports.StoreRepository = (*CachedStoreRepository)(nil)

func NewCachedStoreRepository(
	next ports.StoreRepository,
	client *redis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedStoreRepository {
	if ttl <= 0 {
		ttl = DefaultStoreCacheTTL
	}
	return &CachedStoreRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "CachedStoreRepository"),
	}
}

func (r *CachedStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	v, err, _ := r.group.Do(id.String(), func() (any, error) {
		s, err := r.fromCache(ctx, id)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "store cache read failed", "storeID", id.String(), "error", err)
		}

		s, err = r.next.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err = r.toCache(ctx, s); err != nil {
			r.logger.WarnContext(ctx, "store cache write failed", "storeID", id.String(), "error", err)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*store.Store), nil
}

func (r *CachedStoreRepository) fromCache(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	data, err := r.client.Get(ctx, storeKey(id)).Bytes()
	if err != nil {
		return nil, err
	}

	var dto storeDTO
	if err = json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decode cached store: %w", err)
	}
	return dto.toDomain()
}

func (r *CachedStoreRepository) toCache(ctx context.Context, s *store.Store) error {
	dto, err := fromStore(s)
	if err != nil {
		return err
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, storeKey(s.ID()), data, r.ttl).Err()
}

func storeKey(id kernel.UUID) string {
	return fmt.Sprintf("checkout:store:%s", id.String())
}
