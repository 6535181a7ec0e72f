package risk

import (
	"time"

	"github.com/google/uuid"
)

// ProfileStatus is the handling status assigned to a customer based on
// their current risk score
type ProfileStatus string

const (
	StatusRestricted  ProfileStatus = "Restricted"
	StatusUnderReview ProfileStatus = "Under Review"
	StatusMonitoring  ProfileStatus = "Monitoring"
	StatusNormal      ProfileStatus = "Normal"
)

// StatusForScore maps a risk score onto a profile status
func StatusForScore(score int) ProfileStatus {
	switch {
	case score >= 90:
		return StatusRestricted
	case score >= 70:
		return StatusUnderReview
	case score >= 50:
		return StatusMonitoring
	default:
		return StatusNormal
	}
}

// RiskProfile is the current risk state for one customer. Profiles are
// upserted: every new signal recalculates and overwrites the row, no
// history is kept.
type RiskProfile struct {
	ID           uuid.UUID     `json:"id"`
	CustomerID   string        `json:"customer_id"`
	CustomerName string        `json:"customer_name"`
	RiskScore    int           `json:"risk_score"` // 0-100
	RiskFactors  []string      `json:"risk_factors"`
	Status       ProfileStatus `json:"status"`
	AccountAge   string        `json:"account_age"`
	LastActivity time.Time     `json:"last_activity"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewRiskProfile creates a profile for a customer
func NewRiskProfile(customerID, customerName string, score int, factors []string, accountAge string) *RiskProfile {
	if customerName == "" {
		customerName = "Unknown"
	}
	if accountAge == "" {
		accountAge = "0 days"
	}
	if factors == nil {
		factors = make([]string, 0)
	}

	now := time.Now()
	return &RiskProfile{
		ID:           uuid.New(),
		CustomerID:   customerID,
		CustomerName: customerName,
		RiskScore:    score,
		RiskFactors:  factors,
		Status:       StatusForScore(score),
		AccountAge:   accountAge,
		LastActivity: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
