package models

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWatchlistLifecycle(t *testing.T) {
	db := newTestDatabase(t)

	first := NewWatchlistEntry(MediaRecord{ID: "1", MediaType: MediaTypeMovie, Title: "Dune", Year: "2021"})
	first.AddedAt = time.Now().Add(-time.Minute)
	if err := db.AddWatchlistEntry(first); err != nil {
		t.Fatalf("AddWatchlistEntry failed: %v", err)
	}
	second := NewWatchlistEntry(MediaRecord{ID: "1", MediaType: MediaTypeTV, Title: "Arcane"})
	if err := db.AddWatchlistEntry(second); err != nil {
		t.Fatalf("Same id with another media type should be accepted: %v", err)
	}

	entries, err := db.GetWatchlist()
	if err != nil {
		t.Fatalf("GetWatchlist failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "Arcane" {
		t.Fatalf("Expected newest entry first, got %v", entries)
	}
	if entries[1].Status != WatchStatusPlanned {
		t.Errorf("Expected default status plan, got %s", entries[1].Status)
	}

	updated, err := db.UpdateWatchlistStatus("movie:1", WatchStatusWatched)
	if err != nil {
		t.Fatalf("UpdateWatchlistStatus failed: %v", err)
	}
	if updated.Status != WatchStatusWatched {
		t.Errorf("Expected watched, got %s", updated.Status)
	}

	if _, err := db.UpdateWatchlistStatus("movie:1", "bogus"); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}

	if err := db.DeleteWatchlistEntry("movie:1"); err != nil {
		t.Fatalf("DeleteWatchlistEntry failed: %v", err)
	}
	if err := db.DeleteWatchlistEntry("movie:1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestWatchlistRejectsDuplicates(t *testing.T) {
	db := newTestDatabase(t)

	if err := db.AddWatchlistEntry(NewWatchlistEntry(MediaRecord{ID: "7", MediaType: MediaTypeMovie, Title: "Dune"})); err != nil {
		t.Fatalf("AddWatchlistEntry failed: %v", err)
	}

	err := db.AddWatchlistEntry(NewWatchlistEntry(MediaRecord{ID: "7", MediaType: MediaTypeMovie, Title: "Dune (2021)"}))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for same key, got %v", err)
	}

	err = db.AddWatchlistEntry(NewWatchlistEntry(MediaRecord{ID: "99", MediaType: MediaTypeTV, Title: "DUNE"}))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for same title, got %v", err)
	}
}

func TestWatchlistRejectsUnknownMediaType(t *testing.T) {
	db := newTestDatabase(t)

	for _, r := range []MediaRecord{
		{ID: "123", Title: "Nameless"},
		{ID: "124", MediaType: "person", Title: "Someone"},
		{MediaType: MediaTypeMovie, Title: "No ID"},
	} {
		if err := db.AddWatchlistEntry(NewWatchlistEntry(r)); !errors.Is(err, ErrInvalid) {
			t.Errorf("Expected ErrInvalid for %+v, got %v", r, err)
		}
	}
	if entries, _ := db.GetWatchlist(); len(entries) != 0 {
		t.Errorf("Nothing should be stored, got %v", entries)
	}
}

func TestSubscriptionLifecycle(t *testing.T) {
	db := newTestDatabase(t)

	sub := &SubscriptionEntry{Name: "  Netflix ", Plan: "Standard", Price: 15.494, NextDate: "2026-11-01"}
	if err := db.SaveSubscription(sub); err != nil {
		t.Fatalf("SaveSubscription failed: %v", err)
	}
	if sub.ID == "" {
		t.Fatal("Expected a generated ID")
	}
	if sub.Name != "Netflix" || sub.Price != 15.49 || sub.Status != SubscriptionActive || sub.Cycle != CycleMonthly {
		t.Errorf("Unexpected normalized subscription: %+v", sub)
	}

	sub.Price = 120
	sub.Cycle = CycleYearly
	if err := db.SaveSubscription(sub); err != nil {
		t.Fatalf("SaveSubscription update failed: %v", err)
	}
	stored, err := db.GetSubscription(sub.ID)
	if err != nil {
		t.Fatalf("GetSubscription failed: %v", err)
	}
	if stored.Monthly() != 10 {
		t.Errorf("Expected monthly 10, got %v", stored.Monthly())
	}

	toggled, err := db.ToggleSubscription(sub.ID)
	if err != nil || toggled.Status != SubscriptionPaused {
		t.Fatalf("Expected Paused, got %v (%v)", toggled, err)
	}
	toggled, _ = db.ToggleSubscription(sub.ID)
	if toggled.Status != SubscriptionActive {
		t.Errorf("Expected Active after resume, got %s", toggled.Status)
	}

	if err := db.DeleteSubscription(sub.ID); err != nil {
		t.Fatalf("DeleteSubscription failed: %v", err)
	}
	if _, err := db.GetSubscription(sub.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSubscriptionValidation(t *testing.T) {
	db := newTestDatabase(t)

	invalid := []*SubscriptionEntry{
		{Name: "   ", Price: 1},
		{Name: "Hulu", Price: -1},
		{Name: "Hulu", Price: 1, Cycle: "Weekly"},
		{Name: "Hulu", Price: 1, Status: "Gone"},
		{Name: "Hulu", Price: 1, NextDate: "11/01/2026"},
	}
	for _, sub := range invalid {
		if err := db.SaveSubscription(sub); !errors.Is(err, ErrInvalid) {
			t.Errorf("Expected ErrInvalid for %+v, got %v", sub, err)
		}
	}
}

func TestCanceledSubscriptionResumes(t *testing.T) {
	db := newTestDatabase(t)

	sub := &SubscriptionEntry{Name: "Max", Price: 9.99, Status: SubscriptionCanceled}
	if err := db.SaveSubscription(sub); err != nil {
		t.Fatal(err)
	}
	toggled, err := db.ToggleSubscription(sub.ID)
	if err != nil || toggled.Status != SubscriptionActive {
		t.Errorf("Canceled subscription should resume as Active, got %v (%v)", toggled, err)
	}
}

func TestContinueWatching(t *testing.T) {
	db := newTestDatabase(t)

	older := time.Now().Add(-24 * time.Hour)
	if err := db.UpsertContinueWatching(&ContinueWatchingEntry{ID: "cw2", Title: "Dune", Kind: KindMovie, Progress: 10, LastWatchedAt: &older}); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	if err := db.UpsertContinueWatching(&ContinueWatchingEntry{ID: "cw1", Title: "Arcane", Kind: KindShow, Progress: 145, LastWatchedAt: &now}); err != nil {
		t.Fatal(err)
	}

	entries, err := db.GetContinueWatching()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].ID != "cw1" {
		t.Fatalf("Expected most recent first, got %v", entries)
	}
	if entries[0].Progress != 100 {
		t.Errorf("Expected progress clamped to 100, got %d", entries[0].Progress)
	}

	// Upsert replaces progress
	if err := db.UpsertContinueWatching(&ContinueWatchingEntry{ID: "cw2", Title: "Dune", Kind: KindMovie, Progress: 50}); err != nil {
		t.Fatal(err)
	}
	entries, _ = db.GetContinueWatching()
	if len(entries) != 2 {
		t.Fatalf("Upsert should not duplicate, got %d entries", len(entries))
	}

	if err := db.UpsertContinueWatching(&ContinueWatchingEntry{ID: "x", Title: "X", Kind: "podcast"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for unknown kind, got %v", err)
	}
	if err := db.DeleteContinueWatching("cw1"); err != nil {
		t.Fatal(err)
	}
}

func TestGetCounts(t *testing.T) {
	db := newTestDatabase(t)

	db.AddWatchlistEntry(NewWatchlistEntry(MediaRecord{ID: "1", MediaType: MediaTypeMovie, Title: "A"}))
	db.SaveSubscription(&SubscriptionEntry{Name: "Netflix", Price: 10})
	db.SaveSubscription(&SubscriptionEntry{Name: "Hulu", Price: 5, Status: SubscriptionPaused})

	counts, err := db.GetCounts()
	if err != nil {
		t.Fatal(err)
	}
	if counts.Watchlist != 1 || counts.WatchlistByStatus["plan"] != 1 {
		t.Errorf("Unexpected watchlist counts: %+v", counts)
	}
	if counts.Subscriptions != 2 || counts.ActiveMonthly != 10 {
		t.Errorf("Unexpected subscription counts: %+v", counts)
	}
}
