package models

import "testing"

func TestParseStoredWatchlist(t *testing.T) {
	data := []byte(`[
		{"id": 438631, "mediaType": "movie", "title": "Dune", "year": "2021", "type": "Movie"},
		{"id": "94605", "mediaType": "tv", "title": "Arcane", "status": "watching"},
		{"id": 5, "title": "Old Snapshot Movie", "type": "Movie"},
		{"id": 6, "title": ""}
	]`)

	entries := ParseStoredWatchlist(data)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Key != "movie:438631" || entries[0].Status != WatchStatusPlanned {
		t.Errorf("Unexpected first entry %+v", entries[0])
	}
	if entries[1].Key != "tv:94605" || entries[1].Status != WatchStatusWatching {
		t.Errorf("Unexpected second entry %+v", entries[1])
	}
	if entries[2].MediaType != MediaTypeMovie {
		t.Errorf("Expected media type inferred from type tag, got %s", entries[2].MediaType)
	}
}

func TestParseStoredCorruptData(t *testing.T) {
	for _, data := range []string{"", "   ", "{not json", `{"id": 1}`, "null"} {
		if got := ParseStoredWatchlist([]byte(data)); len(got) != 0 {
			t.Errorf("Expected empty watchlist for %q, got %d", data, len(got))
		}
		if got := ParseStoredSubscriptions([]byte(data)); len(got) != 0 {
			t.Errorf("Expected empty subscriptions for %q, got %d", data, len(got))
		}
		if got := ParseStoredContinueWatching([]byte(data)); len(got) != 0 {
			t.Errorf("Expected empty continue-watching for %q, got %d", data, len(got))
		}
	}
}

func TestParseStoredSubscriptions(t *testing.T) {
	data := []byte(`[{"id":"a","name":"Netflix","plan":"Standard","price":15.49,"cycle":"Monthly","nextDate":"","status":"Active"},
		{"id":"b","name":"Max","price":"119.88","cycle":"Yearly","status":"Paused"}]`)

	subs := ParseStoredSubscriptions(data)
	if len(subs) != 2 {
		t.Fatalf("Expected 2 subscriptions, got %d", len(subs))
	}
	if subs[1].Price != 119.88 || RoundPrice(subs[1].Monthly()) != 9.99 {
		t.Errorf("Unexpected yearly subscription %+v (monthly %v)", subs[1], subs[1].Monthly())
	}
}

func TestImportCollections(t *testing.T) {
	db := newTestDatabase(t)

	res, err := db.ImportWatchlist([]byte(`[
		{"id": 1, "mediaType": "movie", "title": "Newest"},
		{"id": 2, "mediaType": "movie", "title": "Older"},
		{"id": 3, "mediaType": "tv", "title": "newest"}
	]`))
	if err != nil {
		t.Fatalf("ImportWatchlist failed: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 1 {
		t.Errorf("Expected 2 imported 1 skipped, got %+v", res)
	}
	entries, _ := db.GetWatchlist()
	if len(entries) != 2 || entries[0].Title != "Newest" {
		t.Errorf("Import should keep stored order, got %v", entries)
	}

	res, err = db.ImportSubscriptions([]byte(`[{"name":"Hulu","price":7.99},{"name":"","price":1}]`))
	if err != nil || res.Imported != 1 || res.Skipped != 1 {
		t.Errorf("Unexpected subscription import %+v (%v)", res, err)
	}

	res, err = db.ImportContinueWatching([]byte(`[{"id":"cw1","title":"Arcane","kind":"show","progress":45,"lastWatchedAt":"2026-10-18T10:00:00Z"}]`))
	if err != nil || res.Imported != 1 {
		t.Errorf("Unexpected continue-watching import %+v (%v)", res, err)
	}

	res, err = db.ImportContinueWatching([]byte(`[{"id":"cw2","title":"Dune","kind":"movie","progress":10}]`))
	if err != nil || res.Imported != 1 {
		t.Errorf("Unexpected continue-watching import %+v (%v)", res, err)
	}
	watching, _ := db.GetContinueWatching()
	if len(watching) != 2 || watching[0].ID != "cw1" || watching[1].LastWatchedAt != nil {
		t.Errorf("Imported item without a watch time should stay untimed and sort last, got %v", watching)
	}

	res, err = db.ImportWatchlist([]byte(`corrupt`))
	if err != nil || res.Imported != 0 {
		t.Errorf("Corrupt import should be a no-op, got %+v (%v)", res, err)
	}
}
