package graph

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	analysis *Analysis
	err      error
}

func (s stubAnalyzer) Analyze(records []TransactionRecord) (*Analysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.analysis, nil
}

type memGraphRepo struct {
	mu    sync.Mutex
	nodes map[string]*Node
	edges map[string]Edge
}

func newMemGraphRepo() *memGraphRepo {
	return &memGraphRepo{nodes: make(map[string]*Node), edges: make(map[string]Edge)}
}

func (r *memGraphRepo) UpsertNodes(ctx context.Context, nodes []*Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range nodes {
		r.nodes[n.NodeID] = n
	}
	return nil
}

func (r *memGraphRepo) UpsertEdges(ctx context.Context, edges []Edge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range edges {
		r.edges[e.From+"|"+e.To] = e
	}
	return nil
}

func (r *memGraphRepo) ListNodes(ctx context.Context) ([]*Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	return out, nil
}

func (r *memGraphRepo) ListEdges(ctx context.Context) ([]Edge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Edge, 0, len(r.edges))
	for _, e := range r.edges {
		out = append(out, e)
	}
	return out, nil
}

func someRecords() []TransactionRecord {
	return []TransactionRecord{
		{CustomerID: "c1", CardID: "card1", IPAddress: "10.0.0.1", Amount: decimal.NewFromInt(100)},
	}
}

func TestAnalyzePatternsRejectsEmptyInput(t *testing.T) {
	svc := NewService(stubAnalyzer{}, newMemGraphRepo(), nil)

	_, err := svc.AnalyzePatterns(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestAnalyzePatternsAnnotatesAndStores(t *testing.T) {
	analysis := &Analysis{
		Nodes: []AnalyzedNode{
			{NodeID: "customer_c1", NodeType: NodeTypeCustomer, Risk: 0.85},
			{NodeID: "card_card1", NodeType: NodeTypeCard, Risk: 0.65},
			{NodeID: "ip_10.0.0.1", NodeType: NodeTypeIP, Risk: 0.45},
			{NodeID: "customer_c2", NodeType: NodeTypeCustomer, Risk: 0.1},
		},
		Edges: []Edge{{From: "card_card1", To: "customer_c1", Weight: 100}},
		Rings: []Ring{{Members: []string{"customer_c1", "card_card1"}, Size: 2, Density: 1}},
	}
	repo := newMemGraphRepo()
	svc := NewService(stubAnalyzer{analysis: analysis}, repo, nil)

	report, err := svc.AnalyzePatterns(context.Background(), someRecords())
	require.NoError(t, err)

	assert.Equal(t, 1, report.RingsDetected)
	assert.Equal(t, 4, report.NodeCount)
	assert.Equal(t, 1, report.EdgeCount)

	byID := map[string]*Node{}
	for _, n := range report.Nodes {
		byID[n.NodeID] = n
	}

	high := byID["customer_c1"]
	assert.Equal(t, RiskTier("Detected"), high.Group)
	assert.Equal(t, 30, high.Size)
	assert.Equal(t, "Risk: 0.85", high.Title)
	assert.Equal(t, "customer_c1", high.Label)

	assert.Equal(t, RiskTier("Investigation"), byID["card_card1"].Group)
	assert.Equal(t, 20, byID["card_card1"].Size)
	assert.Equal(t, TierSuspicious, byID["ip_10.0.0.1"].Group)
	assert.Equal(t, 15, byID["ip_10.0.0.1"].Size)
	assert.Equal(t, TierSafe, byID["customer_c2"].Group)
	assert.Equal(t, 10, byID["customer_c2"].Size)

	// Stored graph matches the report
	data, err := svc.GraphData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 4)
	assert.Len(t, data.Edges, 1)
}

func TestAnalyzePatternsAccumulatesNodesAcrossBatches(t *testing.T) {
	repo := newMemGraphRepo()

	first := &Analysis{Nodes: []AnalyzedNode{{NodeID: "customer_c1", NodeType: NodeTypeCustomer, Risk: 0.1}}}
	svc := NewService(stubAnalyzer{analysis: first}, repo, nil)
	_, err := svc.AnalyzePatterns(context.Background(), someRecords())
	require.NoError(t, err)

	second := &Analysis{Nodes: []AnalyzedNode{{NodeID: "customer_c2", NodeType: NodeTypeCustomer, Risk: 0.1}}}
	svc = NewService(stubAnalyzer{analysis: second}, repo, nil)
	_, err = svc.AnalyzePatterns(context.Background(), someRecords())
	require.NoError(t, err)

	data, err := svc.GraphData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 2)
}

func TestAnalyzePatternsReplacesStoredRisk(t *testing.T) {
	repo := newMemGraphRepo()

	first := &Analysis{Nodes: []AnalyzedNode{{NodeID: "customer_c1", NodeType: NodeTypeCustomer, Risk: 0.9}}}
	svc := NewService(stubAnalyzer{analysis: first}, repo, nil)
	_, err := svc.AnalyzePatterns(context.Background(), someRecords())
	require.NoError(t, err)

	second := &Analysis{Nodes: []AnalyzedNode{{NodeID: "customer_c1", NodeType: NodeTypeCustomer, Risk: 0.2}}}
	svc = NewService(stubAnalyzer{analysis: second}, repo, nil)
	_, err = svc.AnalyzePatterns(context.Background(), someRecords())
	require.NoError(t, err)

	data, err := svc.GraphData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Nodes, 1)
	assert.Equal(t, TierSafe, data.Nodes[0].Group)
	assert.InDelta(t, 0.2, data.Nodes[0].Risk, 1e-9)
}
