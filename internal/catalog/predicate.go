package catalog

import (
	"strconv"
	"strings"

	"github.com/amaumene/bingebuddy/internal/models"
)

// Matches reports whether a record satisfies every rule of the criteria.
//
// Rules are independent conjunctions evaluated in this order:
//  1. safe mode drops adult records
//  2. include then exclude for type, genres, language, status and services (exclude wins)
//  3. year, rating and runtime ranges
//
// A record missing a range-filtered field is never rejected by that range.
func Matches(r models.MediaRecord, c FilterCriteria) bool {
	if c.SafeOnly && r.Adult {
		return false
	}

	if !c.Type.admits(r.TypeTag) {
		return false
	}
	if !c.Genre.admitsAny(r.Genres) {
		return false
	}
	if !c.Language.admits(r.Language) {
		return false
	}
	if !c.Status.admits(r.Status) {
		return false
	}
	if !c.Service.admitsAny(r.Services) {
		return false
	}

	if year, ok := recordYear(r); ok {
		if below(year, c.MinYear) || above(year, c.MaxYear) {
			return false
		}
	}
	if r.Rating != nil && below(*r.Rating, c.MinRating) {
		return false
	}
	if r.RuntimeMinutes != nil {
		runtime := float64(*r.RuntimeMinutes)
		if below(runtime, c.MinRuntime) || above(runtime, c.MaxRuntime) {
			return false
		}
	}

	return true
}

// Filter returns the records accepted by the criteria, in input order
func Filter(records []models.MediaRecord, c FilterCriteria) []models.MediaRecord {
	kept := make([]models.MediaRecord, 0, len(records))
	for _, r := range records {
		if Matches(r, c) {
			kept = append(kept, r)
		}
	}
	return kept
}

// recordYear parses the record year; empty or non-numeric years are absent
func recordYear(r models.MediaRecord) (float64, bool) {
	s := strings.TrimSpace(r.Year)
	if s == "" {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return float64(year), true
}

func below(v float64, bound *float64) bool {
	return bound != nil && v < *bound
}

func above(v float64, bound *float64) bool {
	return bound != nil && v > *bound
}
