// Package normalize turns metadata service payloads into catalog records
// and loads the catalog from a configured source.
package normalize

import (
	"strconv"
	"strings"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/services/tmdb"
	"github.com/amaumene/bingebuddy/internal/services/tvmaze"
	"github.com/amaumene/bingebuddy/internal/utils"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// Type tags given to TMDB items, which carry no show type
const (
	TypeTagMovie    = "Movie"
	TypeTagScripted = "Scripted"
)

// FromTMDB converts a TMDB list item into a record.
// fallback is used when the item carries no media type (typed list endpoints).
// Returns false for anything that is not a movie or a show, such as people in multi-search.
func FromTMDB(item tmdb.Item, fallback models.MediaType) (models.MediaRecord, bool) {
	mediaType := fallback
	if item.MediaType != "" {
		mediaType = models.MediaType(item.MediaType)
	}

	rec := models.MediaRecord{
		ID:        strconv.FormatInt(item.ID, 10),
		MediaType: mediaType,
		Genres:    make([]string, 0, len(item.GenreIDs)),
		Rating:    item.VoteAverage,
		Language:  strings.ToUpper(item.OriginalLanguage),
		Adult:     item.Adult,
	}
	if item.PosterPath != "" {
		rec.Poster = posterBaseURL + item.PosterPath
	}
	for _, id := range item.GenreIDs {
		rec.Genres = append(rec.Genres, strconv.Itoa(id))
	}

	switch mediaType {
	case models.MediaTypeMovie:
		rec.Title = firstNonEmpty(item.Title, item.OriginalTitle)
		rec.ReleaseDate = item.ReleaseDate
		rec.Year = utils.ExtractYear(item.ReleaseDate)
		rec.TypeTag = TypeTagMovie
	case models.MediaTypeTV:
		rec.Title = firstNonEmpty(item.Name, item.OriginalName)
		rec.ReleaseDate = item.FirstAirDate
		rec.Year = utils.ExtractYear(item.FirstAirDate)
		rec.TypeTag = TypeTagScripted
		if len(item.EpisodeRunTime) > 0 {
			runtime := item.EpisodeRunTime[0]
			rec.RuntimeMinutes = &runtime
		}
	default:
		return models.MediaRecord{}, false
	}

	return rec, true
}

// FromTMDBPage converts every movie and show of a page, keeping upstream order
func FromTMDBPage(page *tmdb.PagedResponse, fallback models.MediaType) []models.MediaRecord {
	if page == nil {
		return nil
	}
	records := make([]models.MediaRecord, 0, len(page.Results))
	for _, item := range page.Results {
		if rec, ok := FromTMDB(item, fallback); ok {
			records = append(records, rec)
		}
	}
	return records
}

// FromTVmaze converts a TVmaze show into a record.
// The network (or web channel) stands in for the streaming service.
func FromTVmaze(show tvmaze.Show) models.MediaRecord {
	rec := models.MediaRecord{
		ID:          strconv.FormatInt(show.ID, 10),
		MediaType:   models.MediaTypeTV,
		Title:       show.Name,
		Year:        utils.ExtractYear(show.Premiered),
		TypeTag:     show.Type,
		Genres:      append([]string{}, show.Genres...),
		Rating:      show.Rating.Average,
		Language:    LanguageCode(show.Language),
		Status:      show.Status,
		ReleaseDate: show.Premiered,
	}

	switch {
	case show.Runtime != nil:
		runtime := *show.Runtime
		rec.RuntimeMinutes = &runtime
	case show.AverageRuntime != nil:
		runtime := *show.AverageRuntime
		rec.RuntimeMinutes = &runtime
	}

	for _, ch := range []*tvmaze.Channel{show.WebChannel, show.Network} {
		if ch != nil && ch.Name != "" {
			rec.Services = appendUnique(rec.Services, ch.Name)
		}
	}

	if show.Image != nil {
		rec.Poster = firstNonEmpty(show.Image.Medium, show.Image.Original)
	}

	return rec
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
