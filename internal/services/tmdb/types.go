package tmdb

// Item is a movie or tv entry in a paged result list.
// Movies fill Title/ReleaseDate, shows fill Name/FirstAirDate.
type Item struct {
	ID               int64    `json:"id"`
	MediaType        string   `json:"media_type,omitempty"` // only set by multi-search and trending
	Title            string   `json:"title,omitempty"`
	OriginalTitle    string   `json:"original_title,omitempty"`
	Name             string   `json:"name,omitempty"`
	OriginalName     string   `json:"original_name,omitempty"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	FirstAirDate     string   `json:"first_air_date,omitempty"`
	GenreIDs         []int    `json:"genre_ids"`
	VoteAverage      *float64 `json:"vote_average"`
	OriginalLanguage string   `json:"original_language"`
	Adult            bool     `json:"adult"`
	PosterPath       string   `json:"poster_path,omitempty"`
	EpisodeRunTime   []int    `json:"episode_run_time,omitempty"`
}

// PagedResponse is the envelope of every list endpoint
type PagedResponse struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Genre is a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details holds the extended fields of a single title
type Details struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	Status           string  `json:"status"`
	Runtime          *int    `json:"runtime,omitempty"`
	EpisodeRunTime   []int   `json:"episode_run_time,omitempty"`
	Genres           []Genre `json:"genres"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
}

// Provider is a streaming, rental or purchase service
type Provider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path,omitempty"`
}

// RegionProviders groups the providers of one region by offer kind
type RegionProviders struct {
	Link     string     `json:"link,omitempty"`
	Flatrate []Provider `json:"flatrate,omitempty"`
	Free     []Provider `json:"free,omitempty"`
	Ads      []Provider `json:"ads,omitempty"`
	Rent     []Provider `json:"rent,omitempty"`
	Buy      []Provider `json:"buy,omitempty"`
}

// Names returns the provider names over every offer kind, deduplicated in first-seen order
func (r *RegionProviders) Names() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, group := range [][]Provider{r.Flatrate, r.Free, r.Ads, r.Rent, r.Buy} {
		for _, p := range group {
			if p.ProviderName == "" || seen[p.ProviderName] {
				continue
			}
			seen[p.ProviderName] = true
			names = append(names, p.ProviderName)
		}
	}
	return names
}

type providersResponse struct {
	ID      int64                      `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}
