package models

import (
	"math"
	"time"
)

// WatchlistEntry is a title the user saved from the browse page
type WatchlistEntry struct {
	ID        uint64      `gorm:"primaryKey" json:"-"`
	Key       string      `gorm:"column:record_key;uniqueIndex" json:"key"` // "<media_type>:<id>"
	MediaID   string      `json:"id"`
	MediaType MediaType   `json:"mediaType"`
	Title     string      `json:"title"`
	Year      string      `json:"year,omitempty"`
	TypeTag   string      `json:"type,omitempty"`
	Poster    string      `json:"poster,omitempty"`
	Status    WatchStatus `gorm:"index" json:"status"`

	AddedAt   time.Time `gorm:"index" json:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewWatchlistEntry builds a planned watchlist entry from a catalog record
func NewWatchlistEntry(r MediaRecord) *WatchlistEntry {
	return &WatchlistEntry{
		Key:       r.Key(),
		MediaID:   r.ID,
		MediaType: r.MediaType,
		Title:     r.Title,
		Year:      r.Year,
		TypeTag:   r.TypeTag,
		Poster:    r.Poster,
		Status:    WatchStatusPlanned,
	}
}

// SubscriptionEntry is a streaming subscription whose cost is tracked
type SubscriptionEntry struct {
	ID       string             `gorm:"primaryKey" json:"id"`
	Name     string             `json:"name"`
	Plan     string             `json:"plan"`
	Price    float64            `json:"price"`
	Cycle    BillingCycle       `json:"cycle"`
	NextDate string             `json:"nextDate"` // yyyy-mm-dd, empty when unknown
	Status   SubscriptionStatus `gorm:"index" json:"status"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Monthly returns the monthly cost; yearly plans are spread over 12 months
func (s SubscriptionEntry) Monthly() float64 {
	if s.Cycle == CycleYearly {
		return s.Price / 12
	}
	return s.Price
}

// RoundPrice normalizes a price to cents
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

// ContinueWatchingEntry tracks playback progress of a title
type ContinueWatchingEntry struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Title         string     `json:"title"`
	Kind          WatchKind  `json:"kind"`
	Poster        string     `json:"poster,omitempty"`
	Progress      int        `json:"progress"` // percent, 0..100
	LastWatchedAt *time.Time `gorm:"index" json:"lastWatchedAt,omitempty"`
}

// ClampProgress bounds a progress percentage to 0..100
func ClampProgress(p int) int {
	return max(0, min(100, p))
}
