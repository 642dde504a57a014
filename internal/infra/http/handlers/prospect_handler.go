package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/linkreach/internal/usecase"
)

type ProspectHandler struct {
	ImportUC *usecase.ImportProspectsUseCase
}

func NewProspectHandler(importUC *usecase.ImportProspectsUseCase) *ProspectHandler {
	return &ProspectHandler{ImportUC: importUC}
}

type importRequest struct {
	Prospects []usecase.ProspectInput `json:"prospects"`
}

// HandleImport adds a prospect list to a campaign. Duplicate profile URLs
// are skipped, so a re-upload never double-enrolls anyone.
func (h *ProspectHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignId")

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	output, err := h.ImportUC.Execute(r.Context(), usecase.ImportProspectsInput{
		CampaignID: campaignID,
		Prospects:  req.Prospects,
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(output)
}
