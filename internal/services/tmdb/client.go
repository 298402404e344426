package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/amaumene/bingebuddy/internal/config"
	"github.com/amaumene/bingebuddy/internal/metrics"
	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/telemetry"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const serviceName = "tmdb"

// List categories accepted by List
const (
	CategoryNowPlaying  = "now_playing"
	CategoryUpcoming    = "upcoming"
	CategoryAiringToday = "airing_today"
	CategoryOnTheAir    = "on_the_air"
)

// Client handles communication with the TMDB API.
// Requests are never retried; the http.Client timeout bounds each call.
type Client struct {
	apiKey        string
	baseURL       string
	region        string
	httpClient    *http.Client
	limiter       *rate.Limiter
	providerCache *cache.Cache
	logger        *logrus.Logger
}

// NewClient creates a new TMDB API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	ttl := time.Duration(cfg.ProviderCacheMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	perSecond := cfg.TMDBRatePerSecond
	if perSecond <= 0 {
		perSecond = 20
	}

	return &Client{
		apiKey:        cfg.TMDBAPIKey,
		baseURL:       cfg.TMDBBaseURL,
		region:        cfg.ProviderRegion,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		limiter:       rate.NewLimiter(rate.Limit(perSecond), int(perSecond)+1),
		providerCache: cache.New(ttl, 10*time.Minute),
		logger:        logger,
	}
}

// DeleteExpired drops expired provider lookups from the cache
func (c *Client) DeleteExpired() {
	c.providerCache.DeleteExpired()
}

// doRequest performs a GET request against the TMDB API.
// endpoint is a low-cardinality name used for metrics and tracing.
func (c *Client) doRequest(ctx context.Context, endpoint, path string, params url.Values, result interface{}) (err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "tmdb."+endpoint, trace.WithAttributes(
		attribute.String("tmdb.path", path),
	))
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(serviceName, endpoint, status).Inc()
		metrics.UpstreamRequestDuration.WithLabelValues(serviceName, endpoint).Observe(time.Since(start).Seconds())
		span.End()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + path + "?" + params.Encode()

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"path":     path,
	}).Debug("Making TMDB API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func (c *Client) paged(ctx context.Context, endpoint, path string, params url.Values) (*PagedResponse, error) {
	var resp PagedResponse
	if err := c.doRequest(ctx, endpoint, path, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchMulti searches movies, shows and people by title.
// Callers drop person results.
func (c *Client) SearchMulti(ctx context.Context, term string, page int, includeAdult bool) (*PagedResponse, error) {
	params := pageParams(page)
	params.Set("query", term)
	params.Set("include_adult", strconv.FormatBool(includeAdult))
	return c.paged(ctx, "search_multi", "/search/multi", params)
}

// Popular returns the popular titles of a media type
func (c *Client) Popular(ctx context.Context, mediaType models.MediaType, page int) (*PagedResponse, error) {
	return c.paged(ctx, "popular", "/"+string(mediaType)+"/popular", pageParams(page))
}

// TopRated returns the top rated titles of a media type
func (c *Client) TopRated(ctx context.Context, mediaType models.MediaType, page int) (*PagedResponse, error) {
	return c.paged(ctx, "top_rated", "/"+string(mediaType)+"/top_rated", pageParams(page))
}

// Discover returns popular titles of a media type with the given genre id
func (c *Client) Discover(ctx context.Context, mediaType models.MediaType, genreID string, page int) (*PagedResponse, error) {
	params := pageParams(page)
	params.Set("sort_by", "popularity.desc")
	if genreID != "" {
		params.Set("with_genres", genreID)
	}
	return c.paged(ctx, "discover", "/discover/"+string(mediaType), params)
}

// Trending returns the titles trending this week.
// An empty media type covers movies and shows together.
func (c *Client) Trending(ctx context.Context, mediaType models.MediaType) (*PagedResponse, error) {
	kind := string(mediaType)
	if kind == "" {
		kind = "all"
	}
	return c.paged(ctx, "trending", "/trending/"+kind+"/week", nil)
}

// List returns a curated list: now_playing and upcoming for movies,
// airing_today and on_the_air for shows
func (c *Client) List(ctx context.Context, mediaType models.MediaType, category string, page int) (*PagedResponse, error) {
	switch {
	case mediaType == models.MediaTypeMovie && (category == CategoryNowPlaying || category == CategoryUpcoming):
	case mediaType == models.MediaTypeTV && (category == CategoryAiringToday || category == CategoryOnTheAir):
	default:
		return nil, fmt.Errorf("unsupported list %s for %s", category, mediaType)
	}
	return c.paged(ctx, category, "/"+string(mediaType)+"/"+category, pageParams(page))
}

// Details returns the extended fields of a title
func (c *Client) Details(ctx context.Context, mediaType models.MediaType, id string) (*Details, error) {
	var details Details
	if err := c.doRequest(ctx, "details", "/"+string(mediaType)+"/"+url.PathEscape(id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Providers returns where a title can be watched in the configured region.
// A title without offers in the region yields empty providers, not an error.
// Lookups are cached per (type, id, region).
func (c *Client) Providers(ctx context.Context, mediaType models.MediaType, id string) (*RegionProviders, error) {
	key := string(mediaType) + ":" + id + ":" + c.region
	if cached, found := c.providerCache.Get(key); found {
		metrics.CacheHitsTotal.WithLabelValues("providers").Inc()
		return cached.(*RegionProviders), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("providers").Inc()

	var resp providersResponse
	path := "/" + string(mediaType) + "/" + url.PathEscape(id) + "/watch/providers"
	if err := c.doRequest(ctx, "providers", path, nil, &resp); err != nil {
		return nil, err
	}

	providers := &RegionProviders{}
	if block, ok := resp.Results[c.region]; ok {
		providers = &block
	}
	c.providerCache.SetDefault(key, providers)

	return providers, nil
}
