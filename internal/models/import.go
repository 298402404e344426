package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Browser local-storage keys the collections were historically persisted under
const (
	StorageKeyWatchlist        = "watchlist.v1"
	StorageKeySubscriptions    = "bb.subscriptions.v1"
	StorageKeyContinueWatching = "bb.continue.v1"
)

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type storedWatchlistItem struct {
	ID        flexString `json:"id"`
	MediaType string     `json:"mediaType"`
	Title     string     `json:"title"`
	Year      flexString `json:"year"`
	Type      string     `json:"type"`
	Poster    string     `json:"poster"`
	Status    string     `json:"status"`
}

type storedSubscription struct {
	ID       flexString `json:"id"`
	Name     string     `json:"name"`
	Plan     string     `json:"plan"`
	Price    flexString `json:"price"`
	Cycle    string     `json:"cycle"`
	NextDate string     `json:"nextDate"`
	Status   string     `json:"status"`
}

type storedContinueItem struct {
	ID            flexString `json:"id"`
	Title         string     `json:"title"`
	Kind          string     `json:"kind"`
	Poster        string     `json:"poster"`
	Progress      flexString `json:"progress"`
	LastWatchedAt string     `json:"lastWatchedAt"`
}

// decodeStored decodes a serialized collection.
// Corrupt or empty text yields an empty collection, never an error.
func decodeStored[T any](data []byte) []T {
	var items []T
	if len(bytes.TrimSpace(data)) == 0 {
		return items
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return []T{}
	}
	return items
}

// ParseStoredWatchlist converts a serialized browser watchlist into entries, preserving order
func ParseStoredWatchlist(data []byte) []*WatchlistEntry {
	items := decodeStored[storedWatchlistItem](data)
	entries := make([]*WatchlistEntry, 0, len(items))
	for _, it := range items {
		if it.ID == "" || strings.TrimSpace(it.Title) == "" {
			continue
		}
		mediaType, ok := ParseMediaType(it.MediaType)
		if !ok {
			mediaType = MediaTypeTV
			if it.Type == "Movie" {
				mediaType = MediaTypeMovie
			}
		}
		status := WatchStatus(it.Status)
		if !status.Valid() {
			status = WatchStatusPlanned
		}
		entries = append(entries, &WatchlistEntry{
			Key:       RecordKey(mediaType, string(it.ID)),
			MediaID:   string(it.ID),
			MediaType: mediaType,
			Title:     it.Title,
			Year:      string(it.Year),
			TypeTag:   it.Type,
			Poster:    it.Poster,
			Status:    status,
		})
	}
	return entries
}

// ParseStoredSubscriptions converts serialized browser subscriptions into entries
func ParseStoredSubscriptions(data []byte) []*SubscriptionEntry {
	items := decodeStored[storedSubscription](data)
	subs := make([]*SubscriptionEntry, 0, len(items))
	for _, it := range items {
		price, _ := strconv.ParseFloat(string(it.Price), 64)
		subs = append(subs, &SubscriptionEntry{
			ID:       string(it.ID),
			Name:     it.Name,
			Plan:     it.Plan,
			Price:    price,
			Cycle:    BillingCycle(it.Cycle),
			NextDate: it.NextDate,
			Status:   SubscriptionStatus(it.Status),
		})
	}
	return subs
}

// ParseStoredContinueWatching converts serialized continue-watching items into entries
func ParseStoredContinueWatching(data []byte) []*ContinueWatchingEntry {
	items := decodeStored[storedContinueItem](data)
	entries := make([]*ContinueWatchingEntry, 0, len(items))
	for _, it := range items {
		progress, _ := strconv.ParseFloat(string(it.Progress), 64)
		entry := &ContinueWatchingEntry{
			ID:       string(it.ID),
			Title:    it.Title,
			Kind:     WatchKind(it.Kind),
			Poster:   it.Poster,
			Progress: ClampProgress(int(progress)),
		}
		if t, err := time.Parse(time.RFC3339, it.LastWatchedAt); err == nil {
			entry.LastWatchedAt = &t
		}
		entries = append(entries, entry)
	}
	return entries
}

// ImportResult counts what an import stored and skipped
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportWatchlist stores a serialized browser watchlist. The first stored item stays
// at the front; duplicates and invalid items are skipped.
func (d *Database) ImportWatchlist(data []byte) (ImportResult, error) {
	var res ImportResult
	entries := ParseStoredWatchlist(data)
	base := time.Now()
	for i, e := range entries {
		e.AddedAt = base.Add(-time.Duration(i) * time.Millisecond)
		err := d.AddWatchlistEntry(e)
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInvalid):
			res.Skipped++
		default:
			return res, err
		}
	}
	return res, nil
}

// ImportSubscriptions stores serialized browser subscriptions
func (d *Database) ImportSubscriptions(data []byte) (ImportResult, error) {
	var res ImportResult
	subs := ParseStoredSubscriptions(data)
	// Oldest first so the newest keeps the most recent creation time
	for i := len(subs) - 1; i >= 0; i-- {
		err := d.SaveSubscription(subs[i])
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, ErrInvalid):
			res.Skipped++
		default:
			return res, err
		}
	}
	return res, nil
}

// ImportContinueWatching stores serialized continue-watching items
func (d *Database) ImportContinueWatching(data []byte) (ImportResult, error) {
	var res ImportResult
	for _, e := range ParseStoredContinueWatching(data) {
		err := d.UpsertContinueWatching(e)
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, ErrInvalid):
			res.Skipped++
		default:
			return res, err
		}
	}
	return res, nil
}
