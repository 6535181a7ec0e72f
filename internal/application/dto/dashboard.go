package dto

import "time"

// RiskDistribution buckets stored risk profiles by score band
type RiskDistribution struct {
	Critical int64 `json:"critical"`
	High     int64 `json:"high"`
	Medium   int64 `json:"medium"`
	Low      int64 `json:"low"`
}

// DashboardMetrics is the aggregated operational snapshot
type DashboardMetrics struct {
	TotalTransactions   int64            `json:"total_transactions"`
	TotalAlerts         int64            `json:"total_alerts"`
	ActiveAlerts        int64            `json:"active_alerts"`
	BlockedTransactions int64            `json:"blocked_transactions"`
	HighRiskCustomers   int64            `json:"high_risk_customers"`
	RiskDistribution    RiskDistribution `json:"risk_distribution"`
	GeneratedAt         time.Time        `json:"generated_at"`
}
