package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForRisk(t *testing.T) {
	// Tier strings are stored and grouped on literally downstream, so
	// pin the exact values rather than the constants.
	cases := []struct {
		risk float64
		tier RiskTier
		size int
	}{
		{0.95, "Detected", 30},
		{0.80, "Detected", 30},
		{0.79, "Investigation", 20},
		{0.60, "Investigation", 20},
		{0.59, "Suspicious", 15},
		{0.40, "Suspicious", 15},
		{0.39, "Safe", 10},
		{0, "Safe", 10},
	}

	for _, tc := range cases {
		tier, size := TierForRisk(tc.risk)
		assert.Equal(t, tc.tier, tier, "risk %v", tc.risk)
		assert.Equal(t, tc.size, size, "risk %v", tc.risk)
	}
}

func TestNodeID(t *testing.T) {
	assert.Equal(t, "customer_c1", NodeID(NodeTypeCustomer, "c1"))
	assert.Equal(t, "card_unknown", NodeID(NodeTypeCard, ""))
	assert.Equal(t, "ip_10.0.0.1", NodeID(NodeTypeIP, "10.0.0.1"))
}
