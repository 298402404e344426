package catalog

import (
	"fmt"
	"testing"

	"github.com/amaumene/bingebuddy/internal/models"
)

func numbered(n int) []models.MediaRecord {
	records := make([]models.MediaRecord, n)
	for i := range records {
		records[i] = models.MediaRecord{ID: fmt.Sprint(i), Title: fmt.Sprintf("T%d", i)}
	}
	return records
}

func TestWindowDefaults(t *testing.T) {
	w := NewWindow(0)
	if w.PageSize() != DefaultPageSize || w.Shown() != DefaultPageSize {
		t.Errorf("Expected default page size %d, got %d/%d", DefaultPageSize, w.PageSize(), w.Shown())
	}
}

func TestWindowLoadMoreMonotonic(t *testing.T) {
	for _, tc := range []struct{ n, p int }{{5, 2}, {24, 24}, {50, 24}, {0, 3}, {7, 10}} {
		ranked := numbered(tc.n)
		w := NewWindow(tc.p)

		for k := 1; k <= tc.n/tc.p+2; k++ {
			page := w.Page(ranked)
			want := min(k*tc.p, tc.n)
			if len(page.Visible) != want {
				t.Fatalf("n=%d p=%d step %d: expected %d visible, got %d", tc.n, tc.p, k, want, len(page.Visible))
			}
			if page.HasMore != (len(page.Visible) < tc.n) {
				t.Fatalf("n=%d p=%d step %d: hasMore=%v with %d visible", tc.n, tc.p, k, page.HasMore, len(page.Visible))
			}
			w.LoadMore()
		}
	}
}

func TestWindowScenario(t *testing.T) {
	ranked := numbered(5)
	w := NewWindow(2)

	page := w.Page(ranked)
	if len(page.Visible) != 2 || !page.HasMore {
		t.Fatalf("Expected 2 visible with more, got %d/%v", len(page.Visible), page.HasMore)
	}

	w.LoadMore()
	page = w.Page(ranked)
	if len(page.Visible) != 4 || !page.HasMore {
		t.Fatalf("Expected 4 visible with more, got %d/%v", len(page.Visible), page.HasMore)
	}

	w.LoadMore()
	page = w.Page(ranked)
	if len(page.Visible) != 5 || page.HasMore {
		t.Fatalf("Expected 5 visible and no more, got %d/%v", len(page.Visible), page.HasMore)
	}
	if page.Total != 5 {
		t.Errorf("Expected total 5, got %d", page.Total)
	}
}

func TestWindowReset(t *testing.T) {
	w := NewWindow(24)
	for i := 0; i < 5; i++ {
		w.LoadMore()
	}
	w.Reset()
	if w.Shown() != 24 {
		t.Errorf("Reset should show exactly one page, got %d", w.Shown())
	}
}

func TestSliceCopiesVisible(t *testing.T) {
	ranked := numbered(3)
	page := Slice(ranked, 2)
	page.Visible[0].Title = "changed"
	if ranked[0].Title != "T0" {
		t.Error("Page should not alias the ranked list")
	}

	if page := Slice(ranked, -1); len(page.Visible) != 0 || !page.HasMore {
		t.Errorf("Negative counter should show nothing, got %d/%v", len(page.Visible), page.HasMore)
	}
}

func TestEvaluate(t *testing.T) {
	records := []models.MediaRecord{
		{Title: "Low", Rating: rating(4), Genres: []string{"18"}},
		{Title: "High", Rating: rating(9), Genres: []string{"18"}},
		{Title: "Comedy", Rating: rating(7), Genres: []string{"35"}},
		{Title: "Mid", Rating: rating(6), Genres: []string{"18", "80"}},
	}
	c := FilterCriteria{
		Genre:   DimensionFilter{Include: []string{"18"}, Exclude: []string{"80"}},
		SortKey: SortRating,
	}

	page := Evaluate(records, c, NewWindow(1))
	equalTitles(t, page.Visible, "High")
	if !page.HasMore || page.Total != 2 {
		t.Errorf("Expected 2 accepted with more, got total %d hasMore %v", page.Total, page.HasMore)
	}
}
