package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeStoreError maps store errors to status codes
func writeStoreError(w http.ResponseWriter, err error, logger *logrus.Logger) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logger.WithError(err).Error("Store operation failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
