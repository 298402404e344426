package tvmaze

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
	"github.com/amaumene/bingebuddy/internal/telemetry"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "tvmaze"

// Show is a TVmaze show
type Show struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"` // Scripted, Animation, Reality, ...
	Language       string   `json:"language"`
	Genres         []string `json:"genres"`
	Status         string   `json:"status"`
	Runtime        *int     `json:"runtime"`
	AverageRuntime *int     `json:"averageRuntime"`
	Premiered      string   `json:"premiered"`
	Rating         struct {
		Average *float64 `json:"average"`
	} `json:"rating"`
	Network    *Channel `json:"network"`
	WebChannel *Channel `json:"webChannel"`
	Image      *struct {
		Medium   string `json:"medium"`
		Original string `json:"original"`
	} `json:"image"`
}

// Channel is a broadcast network or streaming web channel
type Channel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type searchResult struct {
	Score float64 `json:"score"`
	Show  Show    `json:"show"`
}

// Client handles communication with the TVmaze API. No key is required.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new TVmaze API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    cfg.TVmazeBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

func (c *Client) doRequest(ctx context.Context, endpoint, path string, params url.Values, result interface{}) (err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "tvmaze."+endpoint, trace.WithAttributes(
		attribute.String("tvmaze.path", path),
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

	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"url":      fullURL,
	}).Debug("Making TVmaze API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Search finds shows by name, best match first
func (c *Client) Search(ctx context.Context, term string) ([]Show, error) {
	var results []searchResult
	if err := c.doRequest(ctx, "search", "/search/shows", url.Values{"q": {term}}, &results); err != nil {
		return nil, err
	}
	shows := make([]Show, 0, len(results))
	for _, r := range results {
		shows = append(shows, r.Show)
	}
	return shows, nil
}

// Shows returns one page of the show index (page 0 is the first)
func (c *Client) Shows(ctx context.Context, page int) ([]Show, error) {
	if page < 0 {
		page = 0
	}
	var shows []Show
	if err := c.doRequest(ctx, "shows", "/shows", url.Values{"page": {strconv.Itoa(page)}}, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}
