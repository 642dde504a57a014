package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/linkreach/internal/usecase"
)

type CampaignHandler struct {
	CreateUC *usecase.CreateCampaignUseCase
	ListUC   *usecase.ListCampaignsUseCase
}

func NewCampaignHandler(createUC *usecase.CreateCampaignUseCase, listUC *usecase.ListCampaignsUseCase) *CampaignHandler {
	return &CampaignHandler{
		CreateUC: createUC,
		ListUC:   listUC,
	}
}

func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCampaignInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(output)
}

// HandleList returns every campaign with its prospect count and funnel
// metrics, the shape the dashboard renders directly.
func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.ListUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// writeUseCaseError maps the usecase error taxonomy onto HTTP statuses.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if usecase.IsDomainError(err) {
		domainErr := err.(*usecase.DomainError)
		status := http.StatusUnprocessableEntity
		switch domainErr.Code {
		case "CAMPAIGN_NOT_FOUND", "PROSPECT_NOT_FOUND":
			status = http.StatusNotFound
		case "VALIDATION_ERROR":
			status = http.StatusBadRequest
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{
			"code":  domainErr.Code,
			"error": domainErr.Message,
		})
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}
