package catalog

import (
	"sort"

	"github.com/amaumene/bingebuddy/internal/models"
)

// Compare orders two records for a sort key: negative when a ranks before b.
// Relevance never reorders. Rating and year sort descending; an absent rating
// or a missing/non-numeric year compares as 0 without touching the record.
func Compare(a, b models.MediaRecord, key SortKey) int {
	switch ParseSortKey(string(key)) {
	case SortRating:
		return descending(ratingValue(a), ratingValue(b))
	case SortYear:
		return descending(yearValue(a), yearValue(b))
	default:
		return 0
	}
}

// Rank returns a sorted copy of the records.
// The sort is stable so upstream provider order survives ties.
func Rank(records []models.MediaRecord, key SortKey) []models.MediaRecord {
	ranked := make([]models.MediaRecord, len(records))
	copy(ranked, records)

	if ParseSortKey(string(key)) == SortRelevance {
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return Compare(ranked[i], ranked[j], key) < 0
	})

	return ranked
}

func descending(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func ratingValue(r models.MediaRecord) float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

func yearValue(r models.MediaRecord) float64 {
	year, ok := recordYear(r)
	if !ok {
		return 0
	}
	return year
}
