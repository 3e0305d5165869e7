package contract

import (
	"context"
	"time"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/repository/specification"
)

type ResearchCacheRepository interface {
	// Replace stores a result set under its query key, overwriting any
	// prior row wholesale. Entries are never partially patched.
	Replace(ctx context.Context, entry *entity.ResearchCacheEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResearchCacheEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResearchCacheEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DeleteExpired removes rows whose expiry lies at or before now;
	// rows refreshed since the maintenance pass started are untouched
	// because expiry is compared against the current row state.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
