package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/usecase"
)

type AnalyticsHandler struct {
	Analytics  usecase.AnalyticsRepositoryInterface
	Aggregator *usecase.AnalyticsAggregator
}

func NewAnalyticsHandler(analytics usecase.AnalyticsRepositoryInterface, aggregator *usecase.AnalyticsAggregator) *AnalyticsHandler {
	return &AnalyticsHandler{
		Analytics:  analytics,
		Aggregator: aggregator,
	}
}

func (h *AnalyticsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")

	metrics, err := h.Analytics.FindByCampaign(r.Context(), campaignID)
	if err != nil {
		if errors.Is(err, entity.ErrAnalyticsNotFound) {
			http.Error(w, "no analytics for campaign "+campaignID, http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load analytics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

// HandleRecompute forces a fresh rollup. Recomputing is idempotent, so the
// endpoint is safe to hit any time the dashboard looks stale.
func (h *AnalyticsHandler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")

	if err := h.Aggregator.Recompute(r.Context(), campaignID); err != nil {
		http.Error(w, "failed to recompute analytics", http.StatusInternalServerError)
		return
	}

	h.HandleGet(w, r)
}
