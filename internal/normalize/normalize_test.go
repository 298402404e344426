package normalize

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/services/tmdb"
	"github.com/amaumene/bingebuddy/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
)

func ptr[T any](v T) *T { return &v }

func TestFromTMDBMovie(t *testing.T) {
	item := tmdb.Item{
		ID:               438631,
		OriginalTitle:    "Dune",
		ReleaseDate:      "2021-09-15",
		GenreIDs:         []int{878, 12},
		VoteAverage:      ptr(7.8),
		OriginalLanguage: "en",
		PosterPath:       "/d5NXSklXo0qyIYkgV94XAgMIckC.jpg",
	}

	rec, ok := FromTMDB(item, models.MediaTypeMovie)
	if !ok {
		t.Fatal("Expected movie to convert")
	}
	if rec.Title != "Dune" || rec.Year != "2021" || rec.TypeTag != "Movie" || rec.Language != "EN" {
		t.Errorf("Unexpected record %+v", rec)
	}
	if len(rec.Genres) != 2 || rec.Genres[0] != "878" {
		t.Errorf("Expected genre ids as strings, got %v", rec.Genres)
	}
	if rec.RuntimeMinutes != nil {
		t.Error("Movie list items carry no runtime")
	}
	if rec.Key() != "movie:438631" {
		t.Errorf("Unexpected key %s", rec.Key())
	}
}

func TestFromTMDBShow(t *testing.T) {
	item := tmdb.Item{ID: 94605, MediaType: "tv", Name: "Arcane", FirstAirDate: "2021-11-06", EpisodeRunTime: []int{40, 42}}

	rec, ok := FromTMDB(item, models.MediaTypeMovie)
	if !ok {
		t.Fatal("Expected show to convert")
	}
	if rec.MediaType != models.MediaTypeTV || rec.TypeTag != "Scripted" || rec.Year != "2021" {
		t.Errorf("Unexpected record %+v", rec)
	}
	if rec.RuntimeMinutes == nil || *rec.RuntimeMinutes != 40 {
		t.Errorf("Expected runtime from first episode runtime, got %v", rec.RuntimeMinutes)
	}
	if rec.Rating != nil {
		t.Errorf("Expected absent rating, got %v", *rec.Rating)
	}
}

func TestFromTMDBDropsPeople(t *testing.T) {
	if _, ok := FromTMDB(tmdb.Item{ID: 1, MediaType: "person", Name: "Someone"}, ""); ok {
		t.Error("People should be dropped")
	}
}

func TestFromTVmaze(t *testing.T) {
	show := tvmaze.Show{
		ID:             41187,
		Name:           "Arcane",
		Type:           "Animation",
		Language:       "English",
		Genres:         []string{"Action", "Fantasy"},
		Status:         "Ended",
		AverageRuntime: ptr(41),
		Premiered:      "2021-11-06",
		WebChannel:     &tvmaze.Channel{Name: "Netflix"},
	}
	show.Rating.Average = ptr(8.7)

	rec := FromTVmaze(show)
	if rec.TypeTag != "Animation" || rec.Language != "EN" || rec.Status != "Ended" || rec.Year != "2021" {
		t.Errorf("Unexpected record %+v", rec)
	}
	if rec.RuntimeMinutes == nil || *rec.RuntimeMinutes != 41 {
		t.Errorf("Expected average runtime fallback, got %v", rec.RuntimeMinutes)
	}
	if len(rec.Services) != 1 || rec.Services[0] != "Netflix" {
		t.Errorf("Expected web channel as service, got %v", rec.Services)
	}
}

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"English", "EN"},
		{"japanese", "JA"},
		{"Spanish", "ES"},
		{"Korean", "KO"},
		{"pt-BR", "PT"},
		{"", ""},
		{"Klingon", ""},
	}

	for _, tt := range tests {
		if got := LanguageCode(tt.in); got != tt.want {
			t.Errorf("LanguageCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type fakeTMDB struct {
	popular       map[models.MediaType]*tmdb.PagedResponse
	search        *tmdb.PagedResponse
	err           error
	providers     map[string][]string
	statuses      map[string]string
	runtimes      map[string]int
	providerCalls int32
}

func (f *fakeTMDB) SearchMulti(ctx context.Context, term string, page int, includeAdult bool) (*tmdb.PagedResponse, error) {
	return f.search, f.err
}

func (f *fakeTMDB) Popular(ctx context.Context, mediaType models.MediaType, page int) (*tmdb.PagedResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.popular[mediaType], nil
}

func (f *fakeTMDB) Details(ctx context.Context, mediaType models.MediaType, id string) (*tmdb.Details, error) {
	key := string(mediaType) + ":" + id
	status, hasStatus := f.statuses[key]
	runtime, hasRuntime := f.runtimes[key]
	if !hasStatus && !hasRuntime {
		return nil, errors.New("details unavailable")
	}
	d := &tmdb.Details{Status: status}
	if hasRuntime {
		d.Runtime = &runtime
	}
	return d, nil
}

func (f *fakeTMDB) Providers(ctx context.Context, mediaType models.MediaType, id string) (*tmdb.RegionProviders, error) {
	atomic.AddInt32(&f.providerCalls, 1)
	names, ok := f.providers[string(mediaType)+":"+id]
	if !ok {
		return nil, errors.New("providers unavailable")
	}
	rp := &tmdb.RegionProviders{}
	for _, n := range names {
		rp.Flatrate = append(rp.Flatrate, tmdb.Provider{ProviderName: n})
	}
	return rp, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestTMDBSourceDefault(t *testing.T) {
	fake := &fakeTMDB{
		popular: map[models.MediaType]*tmdb.PagedResponse{
			models.MediaTypeMovie: {Results: []tmdb.Item{{ID: 1, Title: "Movie One"}, {ID: 2, Title: "Movie Two"}}},
			models.MediaTypeTV:    {Results: []tmdb.Item{{ID: 1, Name: "Show One"}, {ID: 3, Name: "Show Three"}}},
		},
		providers: map[string][]string{"movie:1": {"Netflix"}, "tv:1": {"Hulu", "Hulu"}},
		statuses:  map[string]string{"tv:1": "Returning Series", "movie:1": "Released"},
		runtimes:  map[string]int{"movie:1": 155},
	}

	records, err := NewTMDBSource(fake, quietLogger()).Default(context.Background())
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	wantKeys := []string{"movie:1", "movie:2", "tv:1", "tv:3"}
	if len(records) != len(wantKeys) {
		t.Fatalf("Expected %d records, got %d", len(wantKeys), len(records))
	}
	for i, k := range wantKeys {
		if records[i].Key() != k {
			t.Errorf("Record %d: expected %s, got %s", i, k, records[i].Key())
		}
	}

	if len(records[0].Services) != 1 || records[0].Services[0] != "Netflix" {
		t.Errorf("Expected Netflix on movie 1, got %v", records[0].Services)
	}
	if records[1].Services == nil || len(records[1].Services) != 0 {
		t.Errorf("Failed provider lookup should give an empty list, got %v", records[1].Services)
	}
	if records[2].Status != "Returning Series" || len(records[2].Services) != 1 {
		t.Errorf("Unexpected show record %+v", records[2])
	}
	if records[3].Status != "" {
		t.Errorf("Failed details lookup should leave status empty, got %q", records[3].Status)
	}
	if records[0].Status != "" {
		t.Error("Movies never get a status")
	}
	if records[0].RuntimeMinutes == nil || *records[0].RuntimeMinutes != 155 {
		t.Errorf("Expected runtime from details, got %v", records[0].RuntimeMinutes)
	}
	if records[1].RuntimeMinutes != nil {
		t.Error("Failed details lookup should leave runtime unknown")
	}
}

func TestTMDBSourceFailure(t *testing.T) {
	fake := &fakeTMDB{err: errors.New("network down")}
	src := NewTMDBSource(fake, quietLogger())

	if _, err := src.Default(context.Background()); err == nil {
		t.Error("Expected Default to fail")
	}
	if _, err := src.Search(context.Background(), "dune"); err == nil {
		t.Error("Expected Search to fail")
	}
}

func TestTMDBSourceSearch(t *testing.T) {
	fake := &fakeTMDB{
		search: &tmdb.PagedResponse{Results: []tmdb.Item{
			{ID: 5, MediaType: "tv", Name: "Dune: Prophecy"},
			{ID: 9, MediaType: "person", Name: "Denis"},
			{ID: 6, MediaType: "movie", Title: "Dune"},
		}},
	}

	records, err := NewTMDBSource(fake, quietLogger()).Search(context.Background(), "  dune ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(records) != 2 || records[0].Key() != "tv:5" || records[1].Key() != "movie:6" {
		t.Errorf("Expected upstream order without people, got %v", records)
	}

	empty, err := NewTMDBSource(fake, quietLogger()).Search(context.Background(), "   ")
	if err != nil || len(empty) != 0 {
		t.Errorf("Blank search should be empty, got %v (%v)", empty, err)
	}
}

type countingSource struct {
	defaults int32
	searches int32
}

func (c *countingSource) Default(ctx context.Context) ([]models.MediaRecord, error) {
	atomic.AddInt32(&c.defaults, 1)
	return []models.MediaRecord{{ID: "1", MediaType: models.MediaTypeMovie, Title: "A"}}, nil
}

func (c *countingSource) Search(ctx context.Context, term string) ([]models.MediaRecord, error) {
	atomic.AddInt32(&c.searches, 1)
	return []models.MediaRecord{{ID: "2", MediaType: models.MediaTypeTV, Title: term}}, nil
}

func TestCachedSource(t *testing.T) {
	src := &countingSource{}
	cached := NewCachedSource(src, time.Hour, time.Minute)
	ctx := context.Background()

	first, _ := cached.Default(ctx)
	first[0].Title = "mutated"
	second, _ := cached.Default(ctx)
	if second[0].Title != "A" {
		t.Error("Cached records must not be shared with callers")
	}
	if src.defaults != 1 {
		t.Errorf("Expected 1 default load, got %d", src.defaults)
	}

	cached.Search(ctx, "Dune")
	cached.Search(ctx, " dune")
	if src.searches != 1 {
		t.Errorf("Expected searches to be cached case-insensitively, got %d loads", src.searches)
	}

	cached.Warm(ctx)
	if src.defaults != 2 {
		t.Errorf("Warm should always reload, got %d loads", src.defaults)
	}
}
