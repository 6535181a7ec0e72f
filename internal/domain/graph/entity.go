package graph

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Node type prefixes. Node IDs are formed as "<type>_<identifier>" so
// a customer and a card sharing a raw ID never collide.
const (
	NodeTypeCustomer = "customer"
	NodeTypeCard     = "card"
	NodeTypeIP       = "ip"
)

// RiskTier labels a node by its composite structural risk.
type RiskTier string

const (
	TierFraudRing     RiskTier = "Detected"
	TierInvestigation RiskTier = "Investigation"
	TierSuspicious    RiskTier = "Suspicious"
	TierSafe          RiskTier = "Safe"
)

// TierForRisk maps a composite risk in [0,1] to its tier and the
// display size used when rendering the graph.
func TierForRisk(risk float64) (RiskTier, int) {
	switch {
	case risk >= 0.8:
		return TierFraudRing, 30
	case risk >= 0.6:
		return TierInvestigation, 20
	case risk >= 0.4:
		return TierSuspicious, 15
	default:
		return TierSafe, 10
	}
}

// TransactionRecord is one transaction's contribution to the
// relationship graph. Empty identifiers become "unknown" placeholder
// nodes rather than being dropped.
type TransactionRecord struct {
	CustomerID string          `json:"customer_id"`
	CardID     string          `json:"card_id"`
	IPAddress  string          `json:"ip_address"`
	Amount     decimal.Decimal `json:"amount"`
}

// NodeID builds the namespaced graph identifier for an entity. Missing
// identifiers collapse onto one "unknown" placeholder per type
// (card_unknown, ip_unknown); they are deliberately not merged into a
// single cross-type unknown node.
func NodeID(nodeType, rawID string) string {
	if rawID == "" {
		rawID = "unknown"
	}
	return fmt.Sprintf("%s_%s", nodeType, rawID)
}

// Node is a stored graph vertex annotated with its risk assessment.
type Node struct {
	NodeID    string    `json:"id"`
	NodeType  string    `json:"type"`
	Label     string    `json:"label"`
	Group     RiskTier  `json:"group"`
	Size      int       `json:"size"`
	Title     string    `json:"title"`
	Risk      float64   `json:"risk"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Edge is a stored relationship between two nodes. Weight is the
// transaction amount for customer-card edges and 1.0 for customer-ip
// edges; repeated pairs keep the most recent weight.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// Ring is a detected fraud-ring community: a dense cluster of more
// than three connected entities.
type Ring struct {
	Members []string `json:"members"`
	Size    int      `json:"size"`
	Density float64  `json:"density"`
}

// AnalyzedNode is the analyzer's raw per-node output before tiering.
type AnalyzedNode struct {
	NodeID   string
	NodeType string
	Risk     float64
}

// Analysis is the structural result of one analyzer pass.
type Analysis struct {
	Nodes []AnalyzedNode
	Edges []Edge
	Rings []Ring
}

// Report is the persisted outcome of a pattern-analysis request.
type Report struct {
	RingsDetected int     `json:"rings_detected"`
	Rings         []Ring  `json:"fraud_rings"`
	NodeCount     int     `json:"node_count"`
	EdgeCount     int     `json:"edge_count"`
	Nodes         []*Node `json:"nodes"`
	Edges         []Edge  `json:"edges"`
}

// Data is the stored graph returned for visualization.
type Data struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`
}
