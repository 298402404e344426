package handlers

import (
	"net/http"
	"strconv"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/sirupsen/logrus"
)

// SubscriptionsHandler serves tracked streaming subscriptions
type SubscriptionsHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewSubscriptionsHandler creates a new subscriptions handler
func NewSubscriptionsHandler(db *models.Database, logger *logrus.Logger) *SubscriptionsHandler {
	return &SubscriptionsHandler{db: db, logger: logger}
}

// SubscriptionsResponse is the subscription list with the monthly total of the listed entries
type SubscriptionsResponse struct {
	Subscriptions []*models.SubscriptionEntry `json:"subscriptions"`
	MonthlyTotal  float64                     `json:"monthly_total"`
}

// List returns subscriptions filtered by ?status= and ordered by ?sort= (nextDate by default, name, monthly).
// ?desc=true reverses the order.
func (h *SubscriptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.db.GetSubscriptions()
	if err != nil {
		writeStoreError(w, err, h.logger)
		return
	}

	params := r.URL.Query()
	descending, _ := strconv.ParseBool(params.Get("desc"))
	key := models.SubscriptionSortKey(params.Get("sort"))
	if key == "" {
		key = models.SortByNextDate
	}

	shown := models.SortSubscriptions(
		models.FilterSubscriptions(subs, models.SubscriptionStatus(params.Get("status"))),
		key, descending,
	)
	if shown == nil {
		shown = []*models.SubscriptionEntry{}
	}

	writeJSON(w, http.StatusOK, SubscriptionsResponse{
		Subscriptions: shown,
		MonthlyTotal:  models.MonthlyTotal(shown),
	})
}

// Save creates or updates a subscription. A missing price is taken from the
// listed plan price when the service and plan are known.
func (h *SubscriptionsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var sub models.SubscriptionEntry
	if !readJSON(w, r, &sub) {
		return
	}
	if sub.Price == 0 {
		if plan, ok := models.LookupPlan(sub.Name, sub.Plan); ok {
			sub.Price = plan.Price
		}
	}

	if err := h.db.SaveSubscription(&sub); err != nil {
		writeStoreError(w, err, h.logger)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"id":   sub.ID,
		"name": sub.Name,
	}).Info("Saved subscription")
	writeJSON(w, http.StatusOK, sub)
}

// Toggle pauses or resumes a subscription
func (h *SubscriptionsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sub, err := h.db.ToggleSubscription(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// Delete removes a subscription
func (h *SubscriptionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteSubscription(r.PathValue("id")); err != nil {
		writeStoreError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Plans returns the known services and their listed plans
func (h *SubscriptionsHandler) Plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.StreamingServices)
}
