package storerepo

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository implements StoreRepository using GORM.
type GormStoreRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormStoreRepository(db *gorm.DB, logger *slog.Logger) *GormStoreRepository {
	return &GormStoreRepository{
		db:     db,
		logger: logger.With("component", "store_repository"),
	}
}

// Get retrieves a store by ID.
func (r *GormStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("store", id.String())
		}
		return nil, err
	}

	return toDomain(ctx, dto, r.logger)
}

// Save inserts or replaces a store's checkout settings.
func (r *GormStoreRepository) Save(ctx context.Context, s *store.Store) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(s)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
