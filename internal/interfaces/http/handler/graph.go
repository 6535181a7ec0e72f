package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"aegis-fraud-platform/internal/application/dto"
	graphapp "aegis-fraud-platform/internal/application/graph"
	"aegis-fraud-platform/internal/domain/graph"
)

// GraphHandler handles relationship graph HTTP requests
type GraphHandler struct {
	patternsUseCase *graphapp.AnalyzePatternsUseCase
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(patternsUseCase *graphapp.AnalyzePatternsUseCase) *GraphHandler {
	return &GraphHandler{patternsUseCase: patternsUseCase}
}

// AnalyzePatterns handles POST /api/v1/graph/analyze
func (h *GraphHandler) AnalyzePatterns(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzePatternsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.patternsUseCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, graph.ErrNoTransactions) {
			writeError(w, http.StatusBadRequest, "No transactions provided")
			return
		}
		writeError(w, http.StatusInternalServerError, "Pattern analysis failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetGraphData handles GET /api/v1/graph/data
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	data, err := h.patternsUseCase.Data(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load graph data: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, data)
}
