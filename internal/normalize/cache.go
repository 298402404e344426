package normalize

import (
	"context"
	"strings"
	"time"

	"github.com/amaumene/bingebuddy/internal/metrics"
	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/patrickmn/go-cache"
)

const defaultCatalogKey = "default"

// CachedSource keeps recent catalog loads in memory.
// The default catalog is refreshed by Warm; searches are cached briefly.
type CachedSource struct {
	source     Source
	cache      *cache.Cache
	defaultTTL time.Duration
	searchTTL  time.Duration
}

// NewCachedSource wraps a source with an in-memory cache
func NewCachedSource(source Source, defaultTTL, searchTTL time.Duration) *CachedSource {
	return &CachedSource{
		source:     source,
		cache:      cache.New(searchTTL, 10*time.Minute),
		defaultTTL: defaultTTL,
		searchTTL:  searchTTL,
	}
}

// Default returns the cached default catalog, loading it on a miss
func (c *CachedSource) Default(ctx context.Context) ([]models.MediaRecord, error) {
	if records, ok := c.lookup(defaultCatalogKey); ok {
		return records, nil
	}
	return c.Warm(ctx)
}

// Search returns cached results for a term, loading them on a miss
func (c *CachedSource) Search(ctx context.Context, term string) ([]models.MediaRecord, error) {
	key := "search:" + strings.ToLower(strings.TrimSpace(term))
	if records, ok := c.lookup(key); ok {
		return records, nil
	}

	records, err := c.source.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, records, c.searchTTL)
	return cloneRecords(records), nil
}

// Warm reloads the default catalog and replaces the cached copy
func (c *CachedSource) Warm(ctx context.Context) ([]models.MediaRecord, error) {
	records, err := c.source.Default(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(defaultCatalogKey, records, c.defaultTTL)
	return cloneRecords(records), nil
}

// DeleteExpired drops expired catalog loads
func (c *CachedSource) DeleteExpired() {
	c.cache.DeleteExpired()
}

func (c *CachedSource) lookup(key string) ([]models.MediaRecord, bool) {
	if cached, found := c.cache.Get(key); found {
		metrics.CacheHitsTotal.WithLabelValues("catalog").Inc()
		return cloneRecords(cached.([]models.MediaRecord)), true
	}
	metrics.CacheMissesTotal.WithLabelValues("catalog").Inc()
	return nil, false
}

// cloneRecords copies the slice so callers never share the cached backing array
func cloneRecords(records []models.MediaRecord) []models.MediaRecord {
	out := make([]models.MediaRecord, len(records))
	copy(out, records)
	return out
}
