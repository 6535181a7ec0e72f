package fraud

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertStatus represents the lifecycle state of a fraud alert
type AlertStatus string

const (
	StatusBlocked            AlertStatus = "Blocked"
	StatusUnderInvestigation AlertStatus = "Under Investigation"
	StatusPendingReview      AlertStatus = "Pending Review"
	StatusCleared            AlertStatus = "Cleared"
)

// ValidStatus reports whether s is one of the enumerated alert statuses.
// Status updates outside this set are rejected as invariant violations.
func ValidStatus(s AlertStatus) bool {
	switch s {
	case StatusBlocked, StatusUnderInvestigation, StatusPendingReview, StatusCleared:
		return true
	}
	return false
}

// StatusForScore derives the initial alert status from the risk score.
// Assigned once at creation; later changes only happen through explicit
// status updates.
func StatusForScore(riskScore int) AlertStatus {
	switch {
	case riskScore >= 90:
		return StatusBlocked
	case riskScore >= 75:
		return StatusUnderInvestigation
	default:
		return StatusPendingReview
	}
}

// FraudAlert is the persisted outcome of a fraud-positive classification.
// Exactly one alert exists per transaction; after creation only the status
// (and updated_at) may change.
type FraudAlert struct {
	ID            uuid.UUID `json:"id"`
	TransactionID string    `json:"transaction_id"`

	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`

	RiskScore  int         `json:"risk_score"` // 0-100
	Indicators []string    `json:"indicators"`
	Status     AlertStatus `json:"status"`

	// Calibrated classifier probability in [0,1]. Unreliable when the
	// classifier is running on its fail-open bootstrap model.
	MLConfidence float64 `json:"ml_confidence"`

	// Snapshot of the triggering transaction
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFraudAlert creates an alert for a fraud-positive decision. The risk
// score is round(confidence*100) clamped to [0,100] and the initial status
// follows from it.
func NewFraudAlert(input TransactionInput, confidence float64, indicators []string) *FraudAlert {
	score := int(math.Round(confidence * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	alertType := input.FraudType
	if alertType == "" {
		alertType = "Unknown Fraud"
	}
	customerName := input.CustomerName
	if customerName == "" {
		customerName = "Unknown"
	}
	if indicators == nil {
		indicators = make([]string, 0)
	}

	now := time.Now()
	return &FraudAlert{
		ID:            uuid.New(),
		TransactionID: input.TransactionID,
		Type:          alertType,
		Amount:        input.Amount,
		CustomerID:    input.CustomerID,
		CustomerName:  customerName,
		RiskScore:     score,
		Indicators:    indicators,
		Status:        StatusForScore(score),
		MLConfidence:  confidence,
		Metadata:      input.Snapshot(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpdateStatus applies an out-of-band status transition
func (a *FraudAlert) UpdateStatus(status AlertStatus) error {
	if !ValidStatus(status) {
		return ErrInvalidAlertStatus
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}
