package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/amaumene/bingebuddy/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Labels maps raw codes to human-readable labels, per dimension
type Labels map[Dimension]map[string]string

// Label returns the label for a code, or the code itself when no mapping exists
func (l Labels) Label(d Dimension, code string) string {
	if label, ok := l[d][code]; ok && label != "" {
		return label
	}
	return code
}

// Merge returns a copy of l overlaid with other
func (l Labels) Merge(other Labels) Labels {
	merged := make(Labels, len(l))
	for d, codes := range l {
		merged[d] = make(map[string]string, len(codes))
		for code, label := range codes {
			merged[d][code] = label
		}
	}
	for d, codes := range other {
		if merged[d] == nil {
			merged[d] = make(map[string]string, len(codes))
		}
		for code, label := range codes {
			merged[d][code] = label
		}
	}
	return merged
}

// LoadLabels reads a JSON label file shaped {"genre": {"18": "Drama"}, ...}.
// A missing file yields empty labels.
func LoadLabels(path string) (Labels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Labels{}, nil
		}
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}

	var labels Labels
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("failed to parse labels file: %w", err)
	}
	return labels, nil
}

// Option is one dropdown entry
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options holds the dropdown entries for every dimension
type Options map[Dimension][]Option

// DeriveOptions collects the distinct values present in the unfiltered record list,
// per dimension, sorted by label. Seed codes are always offered even when no record
// carries them. Empty values are never offered.
//
// Callers recompute options when the record list changes, not when criteria change,
// so broadening a filter never shrinks the choices.
func DeriveOptions(records []models.MediaRecord, labels Labels, seeds map[Dimension][]string) Options {
	values := make(map[Dimension]map[string]struct{}, len(Dimensions))
	for _, d := range Dimensions {
		values[d] = make(map[string]struct{})
		for _, code := range seeds[d] {
			if code != "" {
				values[d][code] = struct{}{}
			}
		}
	}

	add := func(d Dimension, vs ...string) {
		for _, v := range vs {
			if v != "" {
				values[d][v] = struct{}{}
			}
		}
	}

	for _, r := range records {
		add(DimensionType, r.TypeTag)
		add(DimensionGenre, r.Genres...)
		add(DimensionLanguage, r.Language)
		add(DimensionStatus, r.Status)
		add(DimensionService, r.Services...)
	}

	// Collator instances are not safe for concurrent use
	col := collate.New(language.English, collate.IgnoreCase)

	options := make(Options, len(Dimensions))
	for _, d := range Dimensions {
		opts := make([]Option, 0, len(values[d]))
		for code := range values[d] {
			opts = append(opts, Option{Value: code, Label: labels.Label(d, code)})
		}
		sort.Slice(opts, func(i, j int) bool {
			if c := col.CompareString(opts[i].Label, opts[j].Label); c != 0 {
				return c < 0
			}
			return opts[i].Value < opts[j].Value
		})
		options[d] = opts
	}

	return options
}
