package tvmaze

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/bingebuddy/internal/config"
	"github.com/sirupsen/logrus"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{TVmazeBaseURL: srv.URL}, logger)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/shows" || r.URL.Query().Get("q") != "arcane" {
			t.Errorf("Unexpected request %s", r.URL)
		}
		w.Write([]byte(`[{"score":0.9,"show":{"id":41187,"name":"Arcane","type":"Animation","language":"English",
			"genres":["Action","Fantasy"],"status":"Ended","runtime":40,"premiered":"2021-11-06",
			"rating":{"average":8.7},"network":null,"webChannel":{"id":1,"name":"Netflix"}}}]`))
	})

	shows, err := client.Search(context.Background(), "arcane")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("Expected 1 show, got %d", len(shows))
	}
	s := shows[0]
	if s.Name != "Arcane" || s.Type != "Animation" || s.WebChannel == nil || s.WebChannel.Name != "Netflix" {
		t.Errorf("Unexpected show %+v", s)
	}
	if s.Rating.Average == nil || *s.Rating.Average != 8.7 {
		t.Errorf("Expected rating 8.7, got %v", s.Rating.Average)
	}
}

func TestShowsPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "0" {
			t.Errorf("Expected page 0, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"id":1,"name":"Under the Dome"},{"id":2,"name":"Person of Interest"}]`))
	})

	shows, err := client.Shows(context.Background(), -3)
	if err != nil {
		t.Fatalf("Shows failed: %v", err)
	}
	if len(shows) != 2 {
		t.Errorf("Expected 2 shows, got %d", len(shows))
	}
}

func TestServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	if _, err := client.Search(context.Background(), "x"); err == nil {
		t.Error("Expected an error for a 429 response")
	}
}
