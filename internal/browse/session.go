// Package browse keeps the state of an interactive catalog view: the search text,
// the loaded records, the criteria, the pagination window and a transient notice.
package browse

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/amaumene/bingebuddy/internal/catalog"
	"github.com/amaumene/bingebuddy/internal/metrics"
	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/normalize"
	"github.com/amaumene/bingebuddy/internal/utils"
	"github.com/sirupsen/logrus"
)

// Notice texts raised when a load fails
const (
	NoticeSearchFailed  = "Could not fetch results"
	NoticeDefaultFailed = "Could not load default titles"
)

// Settings configures new sessions
type Settings struct {
	PageSize  int
	Debounce  time.Duration
	NoticeTTL time.Duration
	Labels    catalog.Labels
	Seeds     map[catalog.Dimension][]string
	Blocklist *utils.Blocklist
}

// View is a snapshot of a session
type View struct {
	catalog.Page
	Options  catalog.Options        `json:"options"`
	Query    string                 `json:"query"`
	Criteria catalog.FilterCriteria `json:"criteria"`
	Loading  bool                   `json:"loading"`
	Notice   string                 `json:"notice,omitempty"`
}

// Session is one browse view. All methods are safe for concurrent use.
//
// Every load captures the generation current when it was started. A result whose
// generation is no longer current, or that arrives after Close, is dropped.
type Session struct {
	mu sync.Mutex

	id       string
	source   normalize.Source
	settings Settings
	logger   *logrus.Logger

	query    string
	records  []models.MediaRecord
	criteria catalog.FilterCriteria
	window   *catalog.Window
	options  catalog.Options
	loading  bool

	notice        string
	noticeExpires time.Time

	generation uint64
	debounce   *time.Timer
	loadCancel context.CancelFunc
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc

	// pending counts scheduled and running loads
	pending sync.WaitGroup
}

// NewSession creates a session and starts loading the default catalog
func NewSession(id string, source normalize.Source, settings Settings, logger *logrus.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:       id,
		source:   source,
		settings: settings,
		logger:   logger,
		records:  []models.MediaRecord{},
		window:   catalog.NewWindow(settings.PageSize),
		options:  catalog.DeriveOptions(nil, settings.Labels, settings.Seeds),
		ctx:      ctx,
		cancel:   cancel,
	}

	s.mu.Lock()
	s.startLoadLocked("")
	s.mu.Unlock()

	return s
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// SetQuery changes the search text and resets the window.
// Non-blank text is searched after the debounce quiet period; each call cancels
// the previously scheduled search. Blank text reloads the default catalog at once.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || text == s.query {
		return
	}
	s.query = text
	s.window.Reset()

	s.cancelScheduledLocked()
	term := strings.TrimSpace(text)
	if term == "" {
		s.startLoadLocked("")
		return
	}

	s.generation++
	gen := s.generation
	s.loading = true
	s.pending.Add(1)
	s.debounce = time.AfterFunc(s.settings.Debounce, func() {
		defer s.pending.Done()
		s.mu.Lock()
		if s.closed || gen != s.generation {
			s.mu.Unlock()
			return
		}
		s.debounce = nil
		ctx := s.beginLoadLocked()
		s.mu.Unlock()
		s.runLoad(ctx, gen, term)
	})
}

// SetCriteria replaces the criteria; the window resets only when they changed
func (s *Session) SetCriteria(c catalog.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Equal(s.criteria) {
		return
	}
	s.criteria = c
	s.window.Reset()
}

// LoadMore shows one more page
func (s *Session) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window.LoadMore()
}

// View evaluates the current records against the criteria
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Page:     catalog.Evaluate(s.records, s.criteria, s.window),
		Options:  s.options,
		Query:    s.query,
		Criteria: s.criteria,
		Loading:  s.loading,
	}
	if s.notice != "" && time.Now().Before(s.noticeExpires) {
		v.Notice = s.notice
	}
	return v
}

// Wait blocks until no search is scheduled and no load is running
func (s *Session) Wait() {
	s.pending.Wait()
}

// Close stops pending work; results arriving afterwards are dropped
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancelScheduledLocked()
	s.cancel()
}

// cancelScheduledLocked stops a scheduled search and cancels a running load
func (s *Session) cancelScheduledLocked() {
	if s.debounce != nil {
		if s.debounce.Stop() {
			s.pending.Done()
		}
		s.debounce = nil
	}
	if s.loadCancel != nil {
		s.loadCancel()
		s.loadCancel = nil
	}
}

// startLoadLocked starts an immediate load for term ("" is the default catalog)
func (s *Session) startLoadLocked(term string) {
	s.generation++
	gen := s.generation
	s.loading = true
	ctx := s.beginLoadLocked()
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.runLoad(ctx, gen, term)
	}()
}

func (s *Session) beginLoadLocked() context.Context {
	ctx, cancel := context.WithCancel(s.ctx)
	s.loadCancel = cancel
	return ctx
}

func (s *Session) runLoad(ctx context.Context, gen uint64, term string) {
	kind := "search"
	load := func() ([]models.MediaRecord, error) { return s.source.Search(ctx, term) }
	if term == "" {
		kind = "default"
		load = func() ([]models.MediaRecord, error) { return s.source.Default(ctx) }
	}

	records, err := load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation {
		metrics.CatalogLoadsTotal.WithLabelValues(kind, metrics.OutcomeStale).Inc()
		s.logger.WithFields(logrus.Fields{
			"session": s.id,
			"kind":    kind,
		}).Debug("Discarding stale catalog load")
		return
	}

	s.loading = false
	s.loadCancel = nil

	if err != nil {
		metrics.CatalogLoadsTotal.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"session": s.id,
			"kind":    kind,
			"query":   term,
		}).Warn("Catalog load failed")

		records = []models.MediaRecord{}
		s.notice = NoticeSearchFailed
		if term == "" {
			s.notice = NoticeDefaultFailed
		}
		s.noticeExpires = time.Now().Add(s.settings.NoticeTTL)
	} else {
		metrics.CatalogLoadsTotal.WithLabelValues(kind, metrics.OutcomeOK).Inc()
	}

	s.records = s.settings.Blocklist.Apply(records)
	s.options = catalog.DeriveOptions(s.records, s.settings.Labels, s.settings.Seeds)
}
