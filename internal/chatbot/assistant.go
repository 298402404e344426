package chatbot

import (
	"context"
	"fmt"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

const failureMessage = "Sorry, something went wrong while looking that up. Please try again."

// Catalog is the subset of the TMDB client the assistant queries
type Catalog interface {
	SearchMulti(ctx context.Context, term string, page int, includeAdult bool) (*tmdb.PagedResponse, error)
	Popular(ctx context.Context, mediaType models.MediaType, page int) (*tmdb.PagedResponse, error)
	TopRated(ctx context.Context, mediaType models.MediaType, page int) (*tmdb.PagedResponse, error)
	Discover(ctx context.Context, mediaType models.MediaType, genreID string, page int) (*tmdb.PagedResponse, error)
	Trending(ctx context.Context, mediaType models.MediaType) (*tmdb.PagedResponse, error)
	List(ctx context.Context, mediaType models.MediaType, category string, page int) (*tmdb.PagedResponse, error)
}

// Reply is the assistant's answer
type Reply struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Results []string `json:"results,omitempty"`
	Count   int      `json:"count"`
}

// Assistant answers chat messages from the catalog
type Assistant struct {
	catalog Catalog
	logger  *logrus.Logger
}

// NewAssistant creates an assistant
func NewAssistant(catalog Catalog, logger *logrus.Logger) *Assistant {
	return &Assistant{catalog: catalog, logger: logger}
}

// Reply classifies text and answers it.
// Failures are reported in the reply, never returned as errors.
func (a *Assistant) Reply(ctx context.Context, text string) Reply {
	intent := Classify(text)
	if !intent.Valid {
		return Reply{Success: false, Message: intent.Message}
	}
	if intent.Sort == SortHelp {
		return Reply{Success: true, Message: intent.Message}
	}

	items, err := a.fetch(ctx, intent)
	if err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"sort": intent.Sort,
			"type": intent.Type,
		}).Warn("Chat lookup failed")
		return Reply{Success: false, Message: failureMessage}
	}

	results := make([]string, 0, intent.Count)
	for _, item := range items {
		if len(results) == intent.Count {
			break
		}
		results = append(results, FormatItem(item))
	}

	return Reply{
		Success: true,
		Message: intent.Message,
		Results: results,
		Count:   len(results),
	}
}

// FormatItem renders an item as "Title (⭐ 7.5)"
func FormatItem(item tmdb.Item) string {
	title := item.Title
	if title == "" {
		title = item.Name
	}
	rating := 0.0
	if item.VoteAverage != nil {
		rating = *item.VoteAverage
	}
	return fmt.Sprintf("%s (⭐ %.1f)", title, rating)
}

func (a *Assistant) fetch(ctx context.Context, intent Intent) ([]tmdb.Item, error) {
	switch intent.Sort {
	case SortSearch:
		page, err := a.catalog.SearchMulti(ctx, intent.Query, 1, false)
		if err != nil {
			return nil, err
		}
		return titlesOnly(page.Results, intent.Type), nil

	case SortTrending:
		mediaType := models.MediaType(intent.Type)
		if intent.Type == TypeBoth {
			mediaType = ""
		}
		page, err := a.catalog.Trending(ctx, mediaType)
		if err != nil {
			return nil, err
		}
		if intent.Type == TypeBoth {
			return titlesOnly(page.Results, TypeBoth), nil
		}
		return page.Results, nil

	case SortNowPlaying, SortUpcoming, SortAiringToday, SortOnTheAir:
		page, err := a.catalog.List(ctx, models.MediaType(intent.Type), intent.Sort, 1)
		if err != nil {
			return nil, err
		}
		return page.Results, nil
	}

	// Popular, top rated and discover are per media type; both types are interleaved
	var lists [][]tmdb.Item
	for _, mediaType := range typesOf(intent.Type) {
		page, err := a.perType(ctx, intent, mediaType)
		if err != nil {
			return nil, err
		}
		if page != nil {
			lists = append(lists, page.Results)
		}
	}
	return interleave(lists...), nil
}

// titlesOnly drops people from mixed results, and the other media type unless want is TypeBoth
func titlesOnly(results []tmdb.Item, want string) []tmdb.Item {
	var items []tmdb.Item
	for _, item := range results {
		if item.MediaType != TypeMovie && item.MediaType != TypeTV {
			continue
		}
		if want != TypeBoth && item.MediaType != want {
			continue
		}
		items = append(items, item)
	}
	return items
}

func (a *Assistant) perType(ctx context.Context, intent Intent, mediaType models.MediaType) (*tmdb.PagedResponse, error) {
	switch intent.Sort {
	case SortTopRated:
		return a.catalog.TopRated(ctx, mediaType, 1)
	case SortDiscover:
		genreID, ok := intent.GenreID(string(mediaType))
		if !ok {
			return nil, nil
		}
		return a.catalog.Discover(ctx, mediaType, genreID, 1)
	}
	return a.catalog.Popular(ctx, mediaType, 1)
}

func typesOf(t string) []models.MediaType {
	switch t {
	case TypeMovie:
		return []models.MediaType{models.MediaTypeMovie}
	case TypeTV:
		return []models.MediaType{models.MediaTypeTV}
	}
	return []models.MediaType{models.MediaTypeMovie, models.MediaTypeTV}
}

func interleave(lists ...[]tmdb.Item) []tmdb.Item {
	var out []tmdb.Item
	for i := 0; ; i++ {
		added := false
		for _, l := range lists {
			if i < len(l) {
				out = append(out, l[i])
				added = true
			}
		}
		if !added {
			return out
		}
	}
}
