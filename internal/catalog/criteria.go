package catalog

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Dimension is a filterable attribute of a media record
type Dimension string

const (
	DimensionType     Dimension = "type"
	DimensionGenre    Dimension = "genre"
	DimensionLanguage Dimension = "language"
	DimensionStatus   Dimension = "status"
	DimensionService  Dimension = "service"
)

// Dimensions lists every include/exclude dimension in evaluation order
var Dimensions = []Dimension{
	DimensionType,
	DimensionGenre,
	DimensionLanguage,
	DimensionStatus,
	DimensionService,
}

// SortKey selects the ranking order
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortRating    SortKey = "rating"
	SortYear      SortKey = "year"
)

// ParseSortKey converts user input to a SortKey.
// Unknown values fall back to relevance.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortRating:
		return SortRating
	case SortYear:
		return SortYear
	default:
		return SortRelevance
	}
}

// DimensionFilter is the allow-list / deny-list pair for one dimension.
// Empty sets mean "no constraint".
type DimensionFilter struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// IsZero reports whether the filter constrains nothing
func (f DimensionFilter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// admits evaluates a single-valued attribute. An empty value is "no information":
// it never satisfies a non-empty include set and is never excluded.
func (f DimensionFilter) admits(value string) bool {
	if len(f.Include) > 0 && (value == "" || !slices.Contains(f.Include, value)) {
		return false
	}
	if len(f.Exclude) > 0 && value != "" && slices.Contains(f.Exclude, value) {
		return false
	}
	return true
}

// admitsAny evaluates a set-valued attribute: include needs at least one member,
// exclude rejects on any member.
func (f DimensionFilter) admitsAny(values []string) bool {
	if len(f.Include) > 0 && !intersects(f.Include, values) {
		return false
	}
	if len(f.Exclude) > 0 && intersects(f.Exclude, values) {
		return false
	}
	return true
}

func intersects(set, values []string) bool {
	for _, v := range values {
		if v != "" && slices.Contains(set, v) {
			return true
		}
	}
	return false
}

// FilterCriteria is the full, immutable set of user-selected constraints for a browse session.
// It is rebuilt from input on every change and never persisted.
type FilterCriteria struct {
	Type     DimensionFilter `json:"type"`
	Genre    DimensionFilter `json:"genre"`
	Language DimensionFilter `json:"language"`
	Status   DimensionFilter `json:"status"`
	Service  DimensionFilter `json:"service"`

	// Range bounds, nil when unset
	MinYear    *float64 `json:"min_year,omitempty"`
	MaxYear    *float64 `json:"max_year,omitempty"`
	MinRating  *float64 `json:"min_rating,omitempty"`
	MinRuntime *float64 `json:"min_runtime,omitempty"`
	MaxRuntime *float64 `json:"max_runtime,omitempty"`

	SafeOnly bool    `json:"safe_only"`
	SortKey  SortKey `json:"sort"`
}

// UnmarshalJSON accepts each range bound as a number or as text.
// Text that does not parse as a finite number leaves the bound unset.
func (c *FilterCriteria) UnmarshalJSON(data []byte) error {
	type plain FilterCriteria
	aux := struct {
		*plain
		MinYear    json.RawMessage `json:"min_year"`
		MaxYear    json.RawMessage `json:"max_year"`
		MinRating  json.RawMessage `json:"min_rating"`
		MinRuntime json.RawMessage `json:"min_runtime"`
		MaxRuntime json.RawMessage `json:"max_runtime"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.MinYear = boundFromJSON(aux.MinYear)
	c.MaxYear = boundFromJSON(aux.MaxYear)
	c.MinRating = boundFromJSON(aux.MinRating)
	c.MinRuntime = boundFromJSON(aux.MinRuntime)
	c.MaxRuntime = boundFromJSON(aux.MaxRuntime)
	return nil
}

func boundFromJSON(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return ParseBound(text)
	}
	return ParseBound(string(raw))
}

// Filter returns the include/exclude pair for a dimension
func (c FilterCriteria) Filter(d Dimension) DimensionFilter {
	switch d {
	case DimensionType:
		return c.Type
	case DimensionGenre:
		return c.Genre
	case DimensionLanguage:
		return c.Language
	case DimensionStatus:
		return c.Status
	case DimensionService:
		return c.Service
	}
	return DimensionFilter{}
}

// WithFilter returns a copy of the criteria with the filter of one dimension replaced
func (c FilterCriteria) WithFilter(d Dimension, f DimensionFilter) FilterCriteria {
	switch d {
	case DimensionType:
		c.Type = f
	case DimensionGenre:
		c.Genre = f
	case DimensionLanguage:
		c.Language = f
	case DimensionStatus:
		c.Status = f
	case DimensionService:
		c.Service = f
	}
	return c
}

// Equal reports whether two criteria constrain and sort identically
func (c FilterCriteria) Equal(o FilterCriteria) bool {
	for _, d := range Dimensions {
		a, b := c.Filter(d), o.Filter(d)
		if !slices.Equal(a.Include, b.Include) || !slices.Equal(a.Exclude, b.Exclude) {
			return false
		}
	}
	return boundEqual(c.MinYear, o.MinYear) &&
		boundEqual(c.MaxYear, o.MaxYear) &&
		boundEqual(c.MinRating, o.MinRating) &&
		boundEqual(c.MinRuntime, o.MinRuntime) &&
		boundEqual(c.MaxRuntime, o.MaxRuntime) &&
		c.SafeOnly == o.SafeOnly &&
		ParseSortKey(string(c.SortKey)) == ParseSortKey(string(o.SortKey))
}

func boundEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// IsZero reports whether the criteria filter nothing and keep relevance order
func (c FilterCriteria) IsZero() bool {
	return c.Equal(FilterCriteria{})
}

// Bound returns a pointer to v, for building criteria in code
func Bound(v float64) *float64 {
	return &v
}

// ParseBound converts user-entered bound text to a range bound.
// Empty or non-numeric input means "unset" and yields nil; it is never an error.
func ParseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
