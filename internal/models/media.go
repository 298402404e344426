package models

// MediaRecord is the normalized view of a catalog item (movie or tv show)
// produced by the normalizers and consumed by the filter engine.
type MediaRecord struct {
	ID        string    `json:"id"`
	MediaType MediaType `json:"media_type"`
	Title     string    `json:"title"`
	Year      string    `json:"year"` // 4-digit year or empty
	TypeTag   string    `json:"type"` // "Movie", "Scripted", "Animation", ...

	Genres   []string `json:"genres"`
	Services []string `json:"services"`

	Rating         *float64 `json:"rating"`  // 0-10, nil when unknown
	RuntimeMinutes *int     `json:"runtime"` // nil when unknown
	Language       string   `json:"language,omitempty"`
	Status         string   `json:"status,omitempty"`
	Adult          bool     `json:"adult"`

	// Display only, never filtered on
	Poster      string `json:"poster,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// Key returns the identifier of the record across media types.
// IDs are only unique within a media type, so "movie:123" and "tv:123" differ.
func (r MediaRecord) Key() string {
	return RecordKey(r.MediaType, r.ID)
}

// RecordKey builds the cross-type key for an id
func RecordKey(mediaType MediaType, id string) string {
	return string(mediaType) + ":" + id
}
