package models

// MediaType represents the type of media (movie or tv show)
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType accepts the spellings used by the metadata services
func ParseMediaType(s string) (MediaType, bool) {
	switch s {
	case "movie", "movies":
		return MediaTypeMovie, true
	case "tv", "show", "shows", "series":
		return MediaTypeTV, true
	}
	return "", false
}

// Valid reports whether t is movie or tv
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

// WatchStatus represents where a watchlist entry stands
type WatchStatus string

const (
	WatchStatusPlanned  WatchStatus = "plan"
	WatchStatusWatching WatchStatus = "watching"
	WatchStatusWatched  WatchStatus = "watched"
)

// Valid reports whether s is a known watch status
func (s WatchStatus) Valid() bool {
	switch s {
	case WatchStatusPlanned, WatchStatusWatching, WatchStatusWatched:
		return true
	}
	return false
}

// SubscriptionStatus represents the lifecycle of a tracked subscription
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "Active"
	SubscriptionPaused   SubscriptionStatus = "Paused"
	SubscriptionCanceled SubscriptionStatus = "Canceled"
)

// Valid reports whether s is a known subscription status
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionPaused, SubscriptionCanceled:
		return true
	}
	return false
}

// BillingCycle represents how often a subscription is charged
type BillingCycle string

const (
	CycleMonthly BillingCycle = "Monthly"
	CycleYearly  BillingCycle = "Yearly"
)

// WatchKind is the continue-watching item kind
type WatchKind string

const (
	KindMovie WatchKind = "movie"
	KindShow  WatchKind = "show"
)
