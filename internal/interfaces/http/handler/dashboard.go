package handler

import (
	"net/http"

	"aegis-fraud-platform/internal/application/dashboard"
)

// DashboardHandler serves the aggregated operational metrics
type DashboardHandler struct {
	metricsUseCase *dashboard.MetricsUseCase
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(metricsUseCase *dashboard.MetricsUseCase) *DashboardHandler {
	return &DashboardHandler{metricsUseCase: metricsUseCase}
}

// GetMetrics handles GET /api/v1/dashboard/metrics
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metricsUseCase.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build dashboard metrics: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
