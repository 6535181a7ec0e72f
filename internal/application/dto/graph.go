package dto

import (
	"github.com/shopspring/decimal"

	"aegis-fraud-platform/internal/domain/graph"
)

// GraphTransaction is one transaction record for pattern analysis
type GraphTransaction struct {
	CustomerID string          `json:"customer_id"`
	CardID     string          `json:"card_id"`
	IPAddress  string          `json:"ip_address"`
	Amount     decimal.Decimal `json:"amount"`
}

// AnalyzePatternsRequest carries the transactions to analyze
type AnalyzePatternsRequest struct {
	Transactions []GraphTransaction `json:"transactions"`
}

// ToRecords converts the request to domain transaction records
func (r AnalyzePatternsRequest) ToRecords() []graph.TransactionRecord {
	records := make([]graph.TransactionRecord, 0, len(r.Transactions))
	for _, t := range r.Transactions {
		records = append(records, graph.TransactionRecord{
			CustomerID: t.CustomerID,
			CardID:     t.CardID,
			IPAddress:  t.IPAddress,
			Amount:     t.Amount,
		})
	}
	return records
}

// GraphNodeResponse is the API representation of a graph node
type GraphNodeResponse struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Label string  `json:"label"`
	Group string  `json:"group"`
	Size  int     `json:"size"`
	Title string  `json:"title"`
	Risk  float64 `json:"risk"`
}

// GraphEdgeResponse is the API representation of a graph edge
type GraphEdgeResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// FraudRingResponse describes one detected fraud ring
type FraudRingResponse struct {
	Members []string `json:"members"`
	Size    int      `json:"size"`
	Density float64  `json:"density"`
}

// AnalyzePatternsResponse is the pattern analysis result payload
type AnalyzePatternsResponse struct {
	RingsDetected int                  `json:"rings_detected"`
	FraudRings    []FraudRingResponse  `json:"fraud_rings"`
	NodeCount     int                  `json:"node_count"`
	EdgeCount     int                  `json:"edge_count"`
	Nodes         []*GraphNodeResponse `json:"nodes"`
	Edges         []GraphEdgeResponse  `json:"edges"`
}

// GraphDataResponse is the stored graph payload for visualization
type GraphDataResponse struct {
	Nodes []*GraphNodeResponse `json:"nodes"`
	Edges []GraphEdgeResponse  `json:"edges"`
}

// NewGraphNodeResponses converts domain nodes to their API form
func NewGraphNodeResponses(nodes []*graph.Node) []*GraphNodeResponse {
	out := make([]*GraphNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &GraphNodeResponse{
			ID:    n.NodeID,
			Type:  n.NodeType,
			Label: n.Label,
			Group: string(n.Group),
			Size:  n.Size,
			Title: n.Title,
			Risk:  n.Risk,
		})
	}
	return out
}

// NewGraphEdgeResponses converts domain edges to their API form
func NewGraphEdgeResponses(edges []graph.Edge) []GraphEdgeResponse {
	out := make([]GraphEdgeResponse, 0, len(edges))
	for _, e := range edges {
		out = append(out, GraphEdgeResponse{From: e.From, To: e.To, Weight: e.Weight})
	}
	return out
}

// NewFraudRingResponses converts domain rings to their API form
func NewFraudRingResponses(rings []graph.Ring) []FraudRingResponse {
	out := make([]FraudRingResponse, 0, len(rings))
	for _, r := range rings {
		out = append(out, FraudRingResponse{Members: r.Members, Size: r.Size, Density: r.Density})
	}
	return out
}
