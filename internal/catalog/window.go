package catalog

import "github.com/amaumene/bingebuddy/internal/models"

// DefaultPageSize is the number of cards shown per page of a browse view
const DefaultPageSize = 24

// Page is one displayable slice of a ranked list
type Page struct {
	Visible []models.MediaRecord `json:"results"`
	HasMore bool                 `json:"has_more"`
	Shown   int                  `json:"shown"`
	Total   int                  `json:"total"`
}

// Window tracks how many ranked items are shown.
// The counter only grows through LoadMore and drops back to one page on Reset.
// It is not safe for concurrent use.
type Window struct {
	pageSize int
	shown    int
}

// NewWindow creates a window showing one page
func NewWindow(pageSize int) *Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Window{pageSize: pageSize, shown: pageSize}
}

// PageSize returns the fixed page size
func (w *Window) PageSize() int {
	return w.pageSize
}

// Shown returns the current "items to show" counter
func (w *Window) Shown() int {
	return w.shown
}

// LoadMore grows the counter by exactly one page
func (w *Window) LoadMore() {
	w.shown += w.pageSize
}

// Reset sets the counter back to exactly one page.
// Called whenever the criteria, the search text or the sort key changes.
func (w *Window) Reset() {
	w.shown = w.pageSize
}

// Page slices the ranked list at the current counter
func (w *Window) Page(ranked []models.MediaRecord) Page {
	return Slice(ranked, w.shown)
}

// Slice returns the first alreadyShown records of ranked
func Slice(ranked []models.MediaRecord, alreadyShown int) Page {
	if alreadyShown < 0 {
		alreadyShown = 0
	}
	n := min(alreadyShown, len(ranked))

	visible := make([]models.MediaRecord, n)
	copy(visible, ranked[:n])

	return Page{
		Visible: visible,
		HasMore: alreadyShown < len(ranked),
		Shown:   n,
		Total:   len(ranked),
	}
}
