package browse

import (
	"time"

	"github.com/amaumene/bingebuddy/internal/metrics"
	"github.com/amaumene/bingebuddy/internal/normalize"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Manager keeps browse sessions by id. Sessions idle for longer than the
// configured TTL are closed when expired items are deleted.
type Manager struct {
	sessions *cache.Cache
	source   normalize.Source
	settings Settings
	logger   *logrus.Logger
}

// NewManager creates a session manager
func NewManager(source normalize.Source, settings Settings, ttl time.Duration, logger *logrus.Logger) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	sessions := cache.New(ttl, 0)
	sessions.OnEvicted(func(id string, v interface{}) {
		v.(*Session).Close()
		metrics.ActiveSessions.Dec()
		logger.WithField("session", id).Debug("Browse session closed")
	})

	return &Manager{
		sessions: sessions,
		source:   source,
		settings: settings,
		logger:   logger,
	}
}

// Create opens a new session, which starts loading the default catalog
func (m *Manager) Create() *Session {
	id := uuid.NewString()
	s := NewSession(id, m.source, m.settings, m.logger)
	m.sessions.SetDefault(id, s)
	metrics.ActiveSessions.Inc()

	m.logger.WithField("session", id).Debug("Browse session opened")
	return s
}

// Get returns a session and extends its expiry
func (m *Manager) Get(id string) (*Session, bool) {
	v, found := m.sessions.Get(id)
	if !found {
		return nil, false
	}
	s := v.(*Session)
	if !m.touch(id, s) {
		return nil, false
	}
	return s, true
}

// touch extends a session's expiry unless it was evicted in the meantime
func (m *Manager) touch(id string, s *Session) bool {
	return m.sessions.Replace(id, s, cache.DefaultExpiration) == nil
}

// Close closes and forgets a session
func (m *Manager) Close(id string) bool {
	if _, found := m.sessions.Get(id); !found {
		return false
	}
	m.sessions.Delete(id)
	return true
}

// Count returns the number of open sessions
func (m *Manager) Count() int {
	return m.sessions.ItemCount()
}

// DeleteExpired closes sessions whose expiry has passed
func (m *Manager) DeleteExpired() {
	m.sessions.DeleteExpired()
}

// CloseAll closes every session, on shutdown
func (m *Manager) CloseAll() {
	for id := range m.sessions.Items() {
		m.sessions.Delete(id)
	}
}
