package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"aegis-fraud-platform/internal/application/dto"
	fraudapp "aegis-fraud-platform/internal/application/fraud"
	"aegis-fraud-platform/internal/domain/fraud"
	"aegis-fraud-platform/internal/domain/transaction"
)

// FraudHandler handles fraud analysis and alert HTTP requests
type FraudHandler struct {
	analyzeUseCase *fraudapp.AnalyzeTransactionUseCase
	alertsUseCase  *fraudapp.ManageAlertsUseCase
}

// NewFraudHandler creates a new fraud handler
func NewFraudHandler(analyzeUseCase *fraudapp.AnalyzeTransactionUseCase, alertsUseCase *fraudapp.ManageAlertsUseCase) *FraudHandler {
	return &FraudHandler{
		analyzeUseCase: analyzeUseCase,
		alertsUseCase:  alertsUseCase,
	}
}

// AnalyzeTransaction handles POST /api/v1/fraud/analyze
func (h *FraudHandler) AnalyzeTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.analyzeUseCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, fraud.ErrMissingTransactionData),
			errors.Is(err, transaction.ErrMissingIdentity),
			errors.Is(err, transaction.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Fraud analysis failed: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListAlerts handles GET /api/v1/fraud/alerts
func (h *FraudHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	alerts, err := h.alertsUseCase.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list alerts: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// GetAlert handles GET /api/v1/fraud/alerts/{id}
func (h *FraudHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid alert ID")
		return
	}

	alert, err := h.alertsUseCase.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, fraud.ErrAlertNotFound) {
			writeError(w, http.StatusNotFound, "Alert not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get alert: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, alert)
}

// UpdateAlertStatus handles PATCH /api/v1/fraud/alerts/{id}/status
func (h *FraudHandler) UpdateAlertStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid alert ID")
		return
	}

	var req dto.UpdateAlertStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	alert, err := h.alertsUseCase.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, fraud.ErrInvalidAlertStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, fraud.ErrAlertNotFound):
			writeError(w, http.StatusNotFound, "Alert not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update alert: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, alert)
}
