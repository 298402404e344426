package handlers

import (
	"net/http"
	"time"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/sirupsen/logrus"
)

// ContinueHandler serves the continue-watching row
type ContinueHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewContinueHandler creates a new continue-watching handler
func NewContinueHandler(db *models.Database, logger *logrus.Logger) *ContinueHandler {
	return &ContinueHandler{db: db, logger: logger}
}

// List returns entries by most recent watch
func (h *ContinueHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.GetContinueWatching()
	if err != nil {
		writeStoreError(w, err, h.logger)
		return
	}
	if entries == nil {
		entries = []*models.ContinueWatchingEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Upsert records progress for a title, stamped now unless the body carries a time
func (h *ContinueHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var entry models.ContinueWatchingEntry
	if !readJSON(w, r, &entry) {
		return
	}
	if entry.LastWatchedAt == nil {
		now := time.Now()
		entry.LastWatchedAt = &now
	}
	if err := h.db.UpsertContinueWatching(&entry); err != nil {
		writeStoreError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Delete removes an entry
func (h *ContinueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteContinueWatching(r.PathValue("id")); err != nil {
		writeStoreError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
