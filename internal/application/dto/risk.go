package dto

import (
	"time"

	"aegis-fraud-platform/internal/domain/risk"
)

// ScoreCustomerRequest is the customer risk scoring payload. Signals
// is a free-form mapping of behavioral signals; unknown keys are
// ignored and an empty mapping scores the baseline.
type ScoreCustomerRequest struct {
	CustomerID   string                 `json:"customer_id"`
	CustomerName string                 `json:"customer_name,omitempty"`
	Signals      map[string]interface{} `json:"signals"`
}

// ToInput converts the request to the domain customer input
func (r ScoreCustomerRequest) ToInput() risk.CustomerInput {
	return risk.CustomerInput{
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Signals:      r.Signals,
	}
}

// RiskProfileResponse is the API representation of a risk profile
type RiskProfileResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	RiskScore    int       `json:"risk_score"`
	RiskFactors  []string  `json:"risk_factors"`
	Status       string    `json:"status"`
	AccountAge   string    `json:"account_age"`
	LastActivity time.Time `json:"last_activity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewRiskProfileResponse converts a domain profile to its API form
func NewRiskProfileResponse(profile *risk.RiskProfile) *RiskProfileResponse {
	factors := profile.RiskFactors
	if factors == nil {
		factors = []string{}
	}
	return &RiskProfileResponse{
		ID:           profile.ID.String(),
		CustomerID:   profile.CustomerID,
		CustomerName: profile.CustomerName,
		RiskScore:    profile.RiskScore,
		RiskFactors:  factors,
		Status:       string(profile.Status),
		AccountAge:   profile.AccountAge,
		LastActivity: profile.LastActivity,
		UpdatedAt:    profile.UpdatedAt,
	}
}

// NewRiskProfileList converts a slice of domain profiles
func NewRiskProfileList(profiles []*risk.RiskProfile) []*RiskProfileResponse {
	out := make([]*RiskProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewRiskProfileResponse(p))
	}
	return out
}
