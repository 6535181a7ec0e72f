package graph

import (
	"context"

	"aegis-fraud-platform/internal/application/dto"
	"aegis-fraud-platform/internal/domain/graph"
)

// AnalyzePatternsUseCase builds the relationship graph and serves its
// stored, risk-annotated form.
type AnalyzePatternsUseCase struct {
	service *graph.Service
}

// NewAnalyzePatternsUseCase creates the use case
func NewAnalyzePatternsUseCase(service *graph.Service) *AnalyzePatternsUseCase {
	return &AnalyzePatternsUseCase{service: service}
}

// Execute analyzes the transactions and replaces the stored graph
func (uc *AnalyzePatternsUseCase) Execute(ctx context.Context, req dto.AnalyzePatternsRequest) (*dto.AnalyzePatternsResponse, error) {
	report, err := uc.service.AnalyzePatterns(ctx, req.ToRecords())
	if err != nil {
		return nil, err
	}

	rings := dto.NewFraudRingResponses(report.Rings)
	if rings == nil {
		rings = []dto.FraudRingResponse{}
	}
	return &dto.AnalyzePatternsResponse{
		RingsDetected: report.RingsDetected,
		FraudRings:    rings,
		NodeCount:     report.NodeCount,
		EdgeCount:     report.EdgeCount,
		Nodes:         dto.NewGraphNodeResponses(report.Nodes),
		Edges:         dto.NewGraphEdgeResponses(report.Edges),
	}, nil
}

// Data returns the stored graph for visualization
func (uc *AnalyzePatternsUseCase) Data(ctx context.Context) (*dto.GraphDataResponse, error) {
	data, err := uc.service.GraphData(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.GraphDataResponse{
		Nodes: dto.NewGraphNodeResponses(data.Nodes),
		Edges: dto.NewGraphEdgeResponses(data.Edges),
	}, nil
}
