package catalog

import (
	"testing"

	"github.com/amaumene/bingebuddy/internal/models"
)

func titles(records []models.MediaRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func equalTitles(t *testing.T, got []models.MediaRecord, want ...string) {
	t.Helper()
	g := titles(got)
	if len(g) != len(want) {
		t.Fatalf("Expected %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, g)
		}
	}
}

func rankingFixture() []models.MediaRecord {
	return []models.MediaRecord{
		{Title: "A", Rating: rating(6), Year: "2010"},
		{Title: "B", Rating: nil, Year: ""},
		{Title: "C", Rating: rating(9), Year: "2022"},
		{Title: "D", Rating: rating(6), Year: "n/a"},
		{Title: "E", Rating: rating(7.5), Year: "2022"},
	}
}

func TestRankRelevanceKeepsOrder(t *testing.T) {
	records := rankingFixture()
	equalTitles(t, Rank(records, SortRelevance), "A", "B", "C", "D", "E")
	equalTitles(t, Rank(records, ""), "A", "B", "C", "D", "E")
}

func TestRankByRating(t *testing.T) {
	records := rankingFixture()
	// Ties (A, D) keep input order; missing rating sorts as 0
	equalTitles(t, Rank(records, SortRating), "C", "E", "A", "D", "B")

	if records[1].Rating != nil {
		t.Error("Ranking should not fill in missing ratings")
	}
}

func TestRankByYear(t *testing.T) {
	records := rankingFixture()
	equalTitles(t, Rank(records, SortYear), "C", "E", "A", "B", "D")
}

func TestRankDoesNotMutateInput(t *testing.T) {
	records := rankingFixture()
	Rank(records, SortRating)
	equalTitles(t, records, "A", "B", "C", "D", "E")
}

func TestCompare(t *testing.T) {
	a := models.MediaRecord{Rating: rating(8), Year: "2001"}
	b := models.MediaRecord{Rating: rating(5), Year: "2005"}

	if Compare(a, b, SortRating) >= 0 {
		t.Error("Higher rating should rank first")
	}
	if Compare(a, b, SortYear) <= 0 {
		t.Error("Newer year should rank first")
	}
	if Compare(a, b, SortRelevance) != 0 {
		t.Error("Relevance should never reorder")
	}
	if Compare(a, a, SortRating) != 0 {
		t.Error("Equal records should compare equal")
	}
}
