package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"aegis-fraud-platform/internal/application/dto"
	riskapp "aegis-fraud-platform/internal/application/risk"
	"aegis-fraud-platform/internal/domain/risk"
)

// RiskHandler handles customer risk profiling HTTP requests
type RiskHandler struct {
	profileUseCase *riskapp.ProfileCustomerUseCase
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(profileUseCase *riskapp.ProfileCustomerUseCase) *RiskHandler {
	return &RiskHandler{profileUseCase: profileUseCase}
}

// ScoreCustomer handles POST /api/v1/risk/score
func (h *RiskHandler) ScoreCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.profileUseCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, risk.ErrMissingCustomerID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Risk scoring failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// GetProfile handles GET /api/v1/risk/profiles/{customerID}
func (h *RiskHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerID")

	profile, err := h.profileUseCase.Get(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, risk.ErrMissingCustomerID):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, risk.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "Risk profile not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to get profile: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// ListProfiles handles GET /api/v1/risk/profiles
func (h *RiskHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	var (
		profiles []*dto.RiskProfileResponse
		err      error
	)
	if r.URL.Query().Get("high_risk") == "true" {
		profiles, err = h.profileUseCase.HighRisk(r.Context())
	} else {
		profiles, err = h.profileUseCase.List(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// GetDistribution handles GET /api/v1/risk/distribution
func (h *RiskHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.profileUseCase.Distribution(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute distribution: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dist)
}
