package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/linkreach/internal/entity"
	"github.com/xavierca1/linkreach/internal/infra/http/middleware"
	"github.com/xavierca1/linkreach/internal/usecase"
)

// AutomationHandler exposes the two engine triggers: connection sending for
// one campaign, and follow-up processing for one or all campaigns. An empty
// eligible set or an exhausted cap is a normal 200 with zero counts, never
// an error.
type AutomationHandler struct {
	Connections *usecase.ConnectionScheduler
	FollowUps   *usecase.FollowUpScheduler
}

func NewAutomationHandler(connections *usecase.ConnectionScheduler, followUps *usecase.FollowUpScheduler) *AutomationHandler {
	return &AutomationHandler{
		Connections: connections,
		FollowUps:   followUps,
	}
}

func (h *AutomationHandler) HandleStartCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")

	result, err := h.Connections.SendConnectionRequests(r.Context(), campaignID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordOutreachSent(string(entity.OutreachConnectionRequest), result.Sent)
	middleware.RecordSendFailures(string(entity.OutreachConnectionRequest), result.Failed)
	if result.Sent == 0 && result.Failed == 0 && result.Remaining == 0 {
		middleware.RecordCapExhausted()
	}

	writeRunResult(w, result)
}

func (h *AutomationHandler) HandleProcessFollowUps(w http.ResponseWriter, r *http.Request) {
	result, err := h.FollowUps.ProcessFollowUps(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordOutreachSent("FOLLOW_UP", result.Sent)
	middleware.RecordSendFailures("FOLLOW_UP", result.Skipped)

	writeRunResult(w, result)
}

func (h *AutomationHandler) HandleProcessCampaignFollowUps(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")

	result, err := h.FollowUps.ProcessCampaignFollowUps(r.Context(), campaignID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordOutreachSent("FOLLOW_UP", result.Sent)
	middleware.RecordSendFailures("FOLLOW_UP", result.Skipped)

	writeRunResult(w, result)
}

func writeRunResult(w http.ResponseWriter, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"result":  result,
	})
}
