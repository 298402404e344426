package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amaumene/bingebuddy/internal/browse"
	"github.com/amaumene/bingebuddy/internal/catalog"
	"github.com/amaumene/bingebuddy/internal/metrics"
	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/normalize"
	"github.com/sirupsen/logrus"
)

// BrowseHandler serves browse sessions and the stateless browse endpoint
type BrowseHandler struct {
	sessions *browse.Manager
	source   normalize.Source
	settings browse.Settings
	logger   *logrus.Logger
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(sessions *browse.Manager, source normalize.Source, settings browse.Settings, logger *logrus.Logger) *BrowseHandler {
	return &BrowseHandler{
		sessions: sessions,
		source:   source,
		settings: settings,
		logger:   logger,
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

// Create opens a session
func (h *BrowseHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"id": s.ID()})
}

// Get returns the current view of a session
func (h *BrowseHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// SetQuery changes a session's search text
func (h *BrowseHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req queryRequest
	if !readJSON(w, r, &req) {
		return
	}
	s.SetQuery(req.Query)
	writeJSON(w, http.StatusOK, s.View())
}

// SetCriteria replaces a session's filter criteria
func (h *BrowseHandler) SetCriteria(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var c catalog.FilterCriteria
	if !readJSON(w, r, &c) {
		return
	}
	c.SortKey = catalog.ParseSortKey(string(c.SortKey))
	s.SetCriteria(c)
	writeJSON(w, http.StatusOK, s.View())
}

// LoadMore grows a session's window by one page
func (h *BrowseHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.LoadMore()
	writeJSON(w, http.StatusOK, s.View())
}

// Close closes a session
func (h *BrowseHandler) Close(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Close(r.PathValue("id")) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BrowseHandler) session(w http.ResponseWriter, r *http.Request) (*browse.Session, bool) {
	s, ok := h.sessions.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
	}
	return s, ok
}

// Browse loads, filters and ranks records in a single request.
// A failed load yields an empty result with a notice, as in a session.
func (h *BrowseHandler) Browse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()
	term := strings.TrimSpace(params.Get("q"))

	var (
		records []models.MediaRecord
		err     error
		notice  string
	)
	kind := "default"
	if term == "" {
		records, err = h.source.Default(r.Context())
	} else {
		kind = "search"
		records, err = h.source.Search(r.Context(), term)
	}
	if err != nil {
		h.logger.WithError(err).WithField("query", term).Warn("Browse load failed")
		metrics.CatalogLoadsTotal.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
		records = []models.MediaRecord{}
		notice = browse.NoticeDefaultFailed
		if term != "" {
			notice = browse.NoticeSearchFailed
		}
	} else {
		metrics.CatalogLoadsTotal.WithLabelValues(kind, metrics.OutcomeOK).Inc()
	}
	records = h.settings.Blocklist.Apply(records)

	shown := h.settings.PageSize
	if v, err := strconv.Atoi(params.Get("shown")); err == nil && v > 0 {
		shown = v
	}

	result := catalog.EvaluateWithOptions(records, CriteriaFromQuery(params), shown, h.settings.Labels, h.settings.Seeds)
	writeJSON(w, http.StatusOK, struct {
		catalog.Evaluated
		Query  string `json:"query"`
		Notice string `json:"notice,omitempty"`
	}{result, term, notice})
}

// CriteriaFromQuery reads filter criteria from query parameters:
// include_<dimension> and exclude_<dimension> (repeated or comma separated),
// min_year, max_year, min_rating, min_runtime, max_runtime, safe_only and sort.
func CriteriaFromQuery(params url.Values) catalog.FilterCriteria {
	c := catalog.FilterCriteria{
		MinYear:    catalog.ParseBound(params.Get("min_year")),
		MaxYear:    catalog.ParseBound(params.Get("max_year")),
		MinRating:  catalog.ParseBound(params.Get("min_rating")),
		MinRuntime: catalog.ParseBound(params.Get("min_runtime")),
		MaxRuntime: catalog.ParseBound(params.Get("max_runtime")),
		SortKey:    catalog.ParseSortKey(params.Get("sort")),
	}
	c.SafeOnly, _ = strconv.ParseBool(params.Get("safe_only"))

	for _, d := range catalog.Dimensions {
		c = c.WithFilter(d, catalog.DimensionFilter{
			Include: splitValues(params["include_"+string(d)]),
			Exclude: splitValues(params["exclude_"+string(d)]),
		})
	}
	return c
}

func splitValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
