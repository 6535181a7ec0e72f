package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"aegis-fraud-platform/internal/domain/fraud"
)

// AnalyzeTransactionRequest is the fraud analysis request payload.
// AccountAgeDays is a pointer so an absent field can default to an
// established account while an explicit zero means a brand-new one.
type AnalyzeTransactionRequest struct {
	TransactionID    string          `json:"transaction_id"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name,omitempty"`
	FraudType        string          `json:"fraud_type,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency,omitempty"`
	MerchantID       string          `json:"merchant_id,omitempty"`
	MerchantCategory string          `json:"merchant_category,omitempty"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	IPAddress        string          `json:"ip_address,omitempty"`
	DeviceID         string          `json:"device_id,omitempty"`
	Location         string          `json:"location,omitempty"`
	Timestamp        string          `json:"timestamp,omitempty"`

	TransactionVelocity  float64  `json:"transaction_velocity,omitempty"`
	AvgTransactionAmount float64  `json:"avg_transaction_amount,omitempty"`
	AccountAgeDays       *float64 `json:"account_age_days,omitempty"`
	DistanceFromHome     float64  `json:"distance_from_home,omitempty"`
	NewDevice            bool     `json:"new_device,omitempty"`
	VPNUsage             bool     `json:"vpn_usage,omitempty"`
	FailedLoginAttempts  float64  `json:"failed_login_attempts,omitempty"`
}

// ToInput converts the request to the domain transaction input
func (r AnalyzeTransactionRequest) ToInput() fraud.TransactionInput {
	accountAge := 365.0
	if r.AccountAgeDays != nil {
		accountAge = *r.AccountAgeDays
	}
	return fraud.TransactionInput{
		TransactionID:    r.TransactionID,
		CustomerID:       r.CustomerID,
		CustomerName:     r.CustomerName,
		FraudType:        r.FraudType,
		Amount:           r.Amount,
		Currency:         r.Currency,
		MerchantID:       r.MerchantID,
		MerchantCategory: r.MerchantCategory,
		PaymentMethod:    r.PaymentMethod,
		IPAddress:        r.IPAddress,
		DeviceID:         r.DeviceID,
		Location:         r.Location,
		Timestamp:        r.Timestamp,
		Signals: fraud.Signals{
			TransactionVelocity:  r.TransactionVelocity,
			AvgTransactionAmount: r.AvgTransactionAmount,
			AccountAgeDays:       accountAge,
			DistanceFromHome:     r.DistanceFromHome,
			NewDevice:            r.NewDevice,
			VPNUsage:             r.VPNUsage,
			FailedLoginAttempts:  r.FailedLoginAttempts,
		},
	}
}

// FraudAlertResponse is the API representation of a fraud alert
type FraudAlertResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	RiskScore     int             `json:"risk_score"`
	Indicators    []string        `json:"indicators"`
	Status        string          `json:"status"`
	MLConfidence  float64         `json:"ml_confidence"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewFraudAlertResponse converts a domain alert to its API form
func NewFraudAlertResponse(alert *fraud.FraudAlert) *FraudAlertResponse {
	indicators := alert.Indicators
	if indicators == nil {
		indicators = []string{}
	}
	return &FraudAlertResponse{
		ID:            alert.ID.String(),
		TransactionID: alert.TransactionID,
		Type:          alert.Type,
		Amount:        alert.Amount,
		CustomerID:    alert.CustomerID,
		CustomerName:  alert.CustomerName,
		RiskScore:     alert.RiskScore,
		Indicators:    indicators,
		Status:        string(alert.Status),
		MLConfidence:  alert.MLConfidence,
		CreatedAt:     alert.CreatedAt,
		UpdatedAt:     alert.UpdatedAt,
	}
}

// AnalyzeTransactionResponse is the fraud analysis result payload
type AnalyzeTransactionResponse struct {
	IsFraud        bool                `json:"is_fraud"`
	Confidence     float64             `json:"confidence"`
	RiskIndicators []string            `json:"risk_indicators"`
	Alert          *FraudAlertResponse `json:"alert,omitempty"`
}

// UpdateAlertStatusRequest is the alert status change payload
type UpdateAlertStatusRequest struct {
	Status string `json:"status"`
}
