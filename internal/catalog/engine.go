// Package catalog implements the filter, ranking and pagination engine that turns a
// list of normalized media records and a set of user criteria into a displayable page.
//
// Everything here is pure and single-threaded: callers own the record list, the
// criteria value and the Window, and pass them in.
package catalog

import "github.com/amaumene/bingebuddy/internal/models"

// Evaluate filters, ranks and windows records in one pass
func Evaluate(records []models.MediaRecord, c FilterCriteria, w *Window) Page {
	return w.Page(Rank(Filter(records, c), c.SortKey))
}

// Evaluated is the output of Evaluate together with the option lists derived
// from the same unfiltered records
type Evaluated struct {
	Page
	Options Options `json:"options"`
}

// EvaluateWithOptions is Evaluate plus option derivation, for stateless callers
func EvaluateWithOptions(records []models.MediaRecord, c FilterCriteria, shown int, labels Labels, seeds map[Dimension][]string) Evaluated {
	return Evaluated{
		Page:    Slice(Rank(Filter(records, c), c.SortKey), shown),
		Options: DeriveOptions(records, labels, seeds),
	}
}
