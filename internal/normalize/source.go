package normalize

import (
	"context"
	"fmt"
	"strings"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/services/tmdb"
	"github.com/amaumene/bingebuddy/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Source loads catalog records.
// Default returns the landing catalog shown for a blank search.
type Source interface {
	Default(ctx context.Context) ([]models.MediaRecord, error)
	Search(ctx context.Context, term string) ([]models.MediaRecord, error)
}

// TMDBClient is the subset of the TMDB client the catalog needs
type TMDBClient interface {
	SearchMulti(ctx context.Context, term string, page int, includeAdult bool) (*tmdb.PagedResponse, error)
	Popular(ctx context.Context, mediaType models.MediaType, page int) (*tmdb.PagedResponse, error)
	Details(ctx context.Context, mediaType models.MediaType, id string) (*tmdb.Details, error)
	Providers(ctx context.Context, mediaType models.MediaType, id string) (*tmdb.RegionProviders, error)
}

// maxLookups bounds the concurrent per-title lookups of one load
const maxLookups = 8

// TMDBSource loads the catalog from TMDB, attaching providers and show status per title
type TMDBSource struct {
	client TMDBClient
	logger *logrus.Logger
}

// NewTMDBSource creates a TMDB backed catalog source
func NewTMDBSource(client TMDBClient, logger *logrus.Logger) *TMDBSource {
	return &TMDBSource{client: client, logger: logger}
}

// Default loads the first page of popular movies followed by popular shows
func (s *TMDBSource) Default(ctx context.Context) ([]models.MediaRecord, error) {
	var movies, shows *tmdb.PagedResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = s.client.Popular(gctx, models.MediaTypeMovie, 1)
		return err
	})
	g.Go(func() error {
		var err error
		shows, err = s.client.Popular(gctx, models.MediaTypeTV, 1)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load popular titles: %w", err)
	}

	records := append(FromTMDBPage(movies, models.MediaTypeMovie), FromTMDBPage(shows, models.MediaTypeTV)...)
	if err := s.enrich(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// Search runs a multi-search; people are dropped and upstream order is kept
func (s *TMDBSource) Search(ctx context.Context, term string) ([]models.MediaRecord, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.MediaRecord{}, nil
	}

	page, err := s.client.SearchMulti(ctx, term, 1, false)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", term, err)
	}

	records := FromTMDBPage(page, "")
	if err := s.enrich(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// enrich attaches providers and runtime to every record and status to shows, in place.
// A failed lookup leaves the field empty; only cancellation fails the load.
func (s *TMDBSource) enrich(ctx context.Context, records []models.MediaRecord) error {
	g := new(errgroup.Group)
	g.SetLimit(maxLookups)

	for i := range records {
		rec := &records[i]
		g.Go(func() error {
			providers, err := s.client.Providers(ctx, rec.MediaType, rec.ID)
			if err != nil {
				s.logger.WithError(err).WithField("key", rec.Key()).Debug("Could not load watch providers")
				rec.Services = []string{}
			} else {
				rec.Services = providers.Names()
				if rec.Services == nil {
					rec.Services = []string{}
				}
			}

			details, err := s.client.Details(ctx, rec.MediaType, rec.ID)
			if err != nil {
				s.logger.WithError(err).WithField("key", rec.Key()).Debug("Could not load details")
				return nil
			}
			if rec.MediaType == models.MediaTypeTV {
				rec.Status = details.Status
			}
			if rec.RuntimeMinutes == nil {
				rec.RuntimeMinutes = detailsRuntime(details)
			}
			return nil
		})
	}

	g.Wait()
	return ctx.Err()
}

func detailsRuntime(d *tmdb.Details) *int {
	if d.Runtime != nil && *d.Runtime > 0 {
		return d.Runtime
	}
	if len(d.EpisodeRunTime) > 0 {
		runtime := d.EpisodeRunTime[0]
		return &runtime
	}
	return nil
}

// TVmazeClient is the subset of the TVmaze client the catalog needs
type TVmazeClient interface {
	Search(ctx context.Context, term string) ([]tvmaze.Show, error)
	Shows(ctx context.Context, page int) ([]tvmaze.Show, error)
}

// TVmazeSource loads a shows-only catalog from TVmaze
type TVmazeSource struct {
	client TVmazeClient
}

// NewTVmazeSource creates a TVmaze backed catalog source
func NewTVmazeSource(client TVmazeClient) *TVmazeSource {
	return &TVmazeSource{client: client}
}

// Default loads the first page of the show index
func (s *TVmazeSource) Default(ctx context.Context) ([]models.MediaRecord, error) {
	shows, err := s.client.Shows(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load shows: %w", err)
	}
	return fromShows(shows), nil
}

// Search finds shows by name
func (s *TVmazeSource) Search(ctx context.Context, term string) ([]models.MediaRecord, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.MediaRecord{}, nil
	}
	shows, err := s.client.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", term, err)
	}
	return fromShows(shows), nil
}

func fromShows(shows []tvmaze.Show) []models.MediaRecord {
	records := make([]models.MediaRecord, 0, len(shows))
	for _, show := range shows {
		records = append(records, FromTVmaze(show))
	}
	return records
}
