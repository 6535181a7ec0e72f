package graph

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis-fraud-platform/internal/domain/graph"
)

func record(customer, card, ip string, amount int64) graph.TransactionRecord {
	return graph.TransactionRecord{
		CustomerID: customer,
		CardID:     card,
		IPAddress:  ip,
		Amount:     decimal.NewFromInt(amount),
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := NewAnalyzer(nil)
	_, err := a.Analyze(nil)
	assert.ErrorIs(t, err, graph.ErrNoTransactions)
}

func TestAnalyzeSingleTransaction(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis, err := a.Analyze([]graph.TransactionRecord{
		record("c1", "card1", "10.0.0.1", 500),
	})
	require.NoError(t, err)

	require.Len(t, analysis.Nodes, 3)
	require.Len(t, analysis.Edges, 2)
	assert.Empty(t, analysis.Rings)

	assert.Equal(t, "card_card1", analysis.Nodes[0].NodeID)
	assert.Equal(t, "customer_c1", analysis.Nodes[1].NodeID)
	assert.Equal(t, "ip_10.0.0.1", analysis.Nodes[2].NodeID)

	weights := map[string]float64{}
	for _, e := range analysis.Edges {
		weights[e.From+"|"+e.To] = e.Weight
	}
	assert.InDelta(t, 500, weights["card_card1|customer_c1"], 1e-9)
	assert.InDelta(t, 1.0, weights["customer_c1|ip_10.0.0.1"], 1e-9)
}

func TestAnalyzeMissingIdentifiersBecomeUnknown(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis, err := a.Analyze([]graph.TransactionRecord{
		record("c1", "", "", 100),
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(analysis.Nodes))
	for _, n := range analysis.Nodes {
		ids = append(ids, n.NodeID)
	}
	assert.Contains(t, ids, "card_unknown")
	assert.Contains(t, ids, "ip_unknown")
}

func TestAnalyzeRepeatedPairKeepsLatestWeight(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis, err := a.Analyze([]graph.TransactionRecord{
		record("c1", "card1", "10.0.0.1", 100),
		record("c1", "card1", "10.0.0.1", 900),
	})
	require.NoError(t, err)

	require.Len(t, analysis.Nodes, 3)
	require.Len(t, analysis.Edges, 2)
	for _, e := range analysis.Edges {
		if e.From == "card_card1" && e.To == "customer_c1" {
			assert.InDelta(t, 900, e.Weight, 1e-9)
		}
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := NewAnalyzer(nil)
	records := []graph.TransactionRecord{
		record("c1", "card1", "10.0.0.1", 100),
		record("c2", "card1", "10.0.0.2", 200),
		record("c3", "card2", "10.0.0.1", 300),
	}

	first, err := a.Analyze(records)
	require.NoError(t, err)
	second, err := a.Analyze(records)
	require.NoError(t, err)

	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Edges, second.Edges)
}

func TestDetectRingsDenseSharedCardCluster(t *testing.T) {
	a := NewAnalyzer(nil)

	// Three customers sharing two cards and one IP form a 6-node
	// cluster with 9 of 15 possible edges. A separate ordinary
	// customer stays out of it.
	records := []graph.TransactionRecord{
		record("c1", "cardA", "10.0.0.1", 100),
		record("c1", "cardB", "10.0.0.1", 150),
		record("c2", "cardA", "10.0.0.1", 200),
		record("c2", "cardB", "10.0.0.1", 250),
		record("c3", "cardA", "10.0.0.1", 300),
		record("c3", "cardB", "10.0.0.1", 350),

		record("solo", "cardS", "192.168.1.1", 40),
	}

	analysis, err := a.Analyze(records)
	require.NoError(t, err)

	require.Len(t, analysis.Rings, 1)
	ring := analysis.Rings[0]
	assert.Equal(t, 6, ring.Size)
	assert.Greater(t, ring.Density, 0.5)
	assert.ElementsMatch(t, []string{
		"customer_c1", "customer_c2", "customer_c3",
		"card_cardA", "card_cardB", "ip_10.0.0.1",
	}, ring.Members)
}

func TestDetectRingsSmallClusterIsNotARing(t *testing.T) {
	a := NewAnalyzer(nil)

	// Three fully connected nodes are dense but below the size cutoff
	analysis, err := a.Analyze([]graph.TransactionRecord{
		record("c1", "card1", "10.0.0.1", 100),
	})
	require.NoError(t, err)
	assert.Empty(t, analysis.Rings)
}

func TestNodeRiskGrowsWithDegree(t *testing.T) {
	a := NewAnalyzer(nil)

	// One customer using many cards: the hub should score higher than
	// any single card.
	records := make([]graph.TransactionRecord, 0, 8)
	for i := 0; i < 8; i++ {
		records = append(records, record("hub", fmt.Sprintf("card%d", i), "", 100))
	}

	analysis, err := a.Analyze(records)
	require.NoError(t, err)

	risks := map[string]float64{}
	for _, n := range analysis.Nodes {
		risks[n.NodeID] = n.Risk
	}
	assert.Greater(t, risks["customer_hub"], risks["card_card0"])
}

func TestNodeRiskBounded(t *testing.T) {
	a := NewAnalyzer(nil)

	records := make([]graph.TransactionRecord, 0, 40)
	for i := 0; i < 20; i++ {
		records = append(records,
			record(fmt.Sprintf("c%d", i), "shared", "10.0.0.1", 100),
		)
	}

	analysis, err := a.Analyze(records)
	require.NoError(t, err)

	for _, n := range analysis.Nodes {
		assert.GreaterOrEqual(t, n.Risk, 0.0, "node %s", n.NodeID)
		assert.LessOrEqual(t, n.Risk, 1.0, "node %s", n.NodeID)
	}
}

func TestNodeTypes(t *testing.T) {
	a := NewAnalyzer(nil)

	analysis, err := a.Analyze([]graph.TransactionRecord{
		record("c1", "card1", "10.0.0.1", 100),
	})
	require.NoError(t, err)

	types := map[string]string{}
	for _, n := range analysis.Nodes {
		types[n.NodeID] = n.NodeType
	}
	assert.Equal(t, graph.NodeTypeCustomer, types["customer_c1"])
	assert.Equal(t, graph.NodeTypeCard, types["card_card1"])
	assert.Equal(t, graph.NodeTypeIP, types["ip_10.0.0.1"])
}
