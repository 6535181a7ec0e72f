package graph

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service runs pattern analysis over transaction records and maintains
// the stored, risk-annotated graph.
type Service struct {
	analyzer Analyzer
	repo     Repository
	logger   *slog.Logger
}

func NewService(analyzer Analyzer, repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		analyzer: analyzer,
		repo:     repo,
		logger:   logger,
	}
}

// AnalyzePatterns builds the relationship graph from the records,
// detects fraud rings, annotates every node with its composite risk
// tier, and replaces the stored graph with the result.
func (s *Service) AnalyzePatterns(ctx context.Context, records []TransactionRecord) (*Report, error) {
	if len(records) == 0 {
		return nil, ErrNoTransactions
	}

	analysis, err := s.analyzer.Analyze(records)
	if err != nil {
		return nil, fmt.Errorf("graph analysis failed: %w", err)
	}

	now := time.Now().UTC()
	nodes := make([]*Node, 0, len(analysis.Nodes))
	for _, an := range analysis.Nodes {
		tier, size := TierForRisk(an.Risk)
		nodes = append(nodes, &Node{
			NodeID:    an.NodeID,
			NodeType:  an.NodeType,
			Label:     an.NodeID,
			Group:     tier,
			Size:      size,
			Title:     fmt.Sprintf("Risk: %.2f", an.Risk),
			Risk:      an.Risk,
			UpdatedAt: now,
		})
	}

	if err := s.repo.UpsertNodes(ctx, nodes); err != nil {
		return nil, fmt.Errorf("failed to store graph nodes: %w", err)
	}
	if err := s.repo.UpsertEdges(ctx, analysis.Edges); err != nil {
		return nil, fmt.Errorf("failed to store graph edges: %w", err)
	}

	s.logger.InfoContext(ctx, "graph patterns analyzed",
		slog.Int("transactions", len(records)),
		slog.Int("nodes", len(nodes)),
		slog.Int("edges", len(analysis.Edges)),
		slog.Int("rings", len(analysis.Rings)),
	)

	return &Report{
		RingsDetected: len(analysis.Rings),
		Rings:         analysis.Rings,
		NodeCount:     len(nodes),
		EdgeCount:     len(analysis.Edges),
		Nodes:         nodes,
		Edges:         analysis.Edges,
	}, nil
}

// GraphData returns the stored graph for visualization
func (s *Service) GraphData(ctx context.Context) (*Data, error) {
	nodes, err := s.repo.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph nodes: %w", err)
	}
	edges, err := s.repo.ListEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph edges: %w", err)
	}
	return &Data{Nodes: nodes, Edges: edges}, nil
}
