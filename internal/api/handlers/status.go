package handlers

import (
	"net/http"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/sirupsen/logrus"
)

// SessionCounter reports the number of open browse sessions
type SessionCounter interface {
	Count() int
}

// StatusHandler handles status requests
type StatusHandler struct {
	db       *models.Database
	sessions SessionCounter
	logger   *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, sessions SessionCounter, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:       db,
		sessions: sessions,
		logger:   logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	*models.Counts
	BrowseSessions int `json:"browse_sessions"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	counts, err := h.db.GetCounts()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count collections")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Counts:         counts,
		BrowseSessions: h.sessions.Count(),
	})
}
