package handlers

import (
	"net/http"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/sirupsen/logrus"
)

// WatchlistHandler serves the watchlist collection
type WatchlistHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(db *models.Database, logger *logrus.Logger) *WatchlistHandler {
	return &WatchlistHandler{db: db, logger: logger}
}

type addWatchlistRequest struct {
	models.MediaRecord
	Status models.WatchStatus `json:"status"`
}

type statusRequest struct {
	Status models.WatchStatus `json:"status"`
}

// List returns the watchlist, optionally limited to one status
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.GetWatchlist()
	if err != nil {
		writeStoreError(w, err, h.logger)
		return
	}

	if status := models.WatchStatus(r.URL.Query().Get("status")); status != "" {
		kept := []*models.WatchlistEntry{}
		for _, e := range entries {
			if e.Status == status {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if entries == nil {
		entries = []*models.WatchlistEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Add puts a title on the watchlist
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if !readJSON(w, r, &req) {
		return
	}

	entry := models.NewWatchlistEntry(req.MediaRecord)
	if req.Status != "" {
		entry.Status = req.Status
	}
	if err := h.db.AddWatchlistEntry(entry); err != nil {
		writeStoreError(w, err, h.logger)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"key":   entry.Key,
		"title": entry.Title,
	}).Info("Added to watchlist")
	writeJSON(w, http.StatusCreated, entry)
}

// UpdateStatus moves a watchlist entry to another status
func (h *WatchlistHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !readJSON(w, r, &req) {
		return
	}

	entry, err := h.db.UpdateWatchlistStatus(r.PathValue("key"), req.Status)
	if err != nil {
		writeStoreError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Delete removes a watchlist entry
func (h *WatchlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteWatchlistEntry(r.PathValue("key")); err != nil {
		writeStoreError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
