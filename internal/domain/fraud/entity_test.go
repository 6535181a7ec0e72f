package fraud

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusForScore(t *testing.T) {
	assert.Equal(t, StatusBlocked, StatusForScore(100))
	assert.Equal(t, StatusBlocked, StatusForScore(90))
	assert.Equal(t, StatusUnderInvestigation, StatusForScore(89))
	assert.Equal(t, StatusUnderInvestigation, StatusForScore(75))
	assert.Equal(t, StatusPendingReview, StatusForScore(74))
	assert.Equal(t, StatusPendingReview, StatusForScore(0))
}

func TestNewFraudAlertDefaults(t *testing.T) {
	input := TransactionInput{
		TransactionID: "txn-42",
		CustomerID:    "cust-42",
		Amount:        decimal.NewFromInt(100),
	}

	alert := NewFraudAlert(input, 0.87, nil)

	assert.Equal(t, "Unknown Fraud", alert.Type)
	assert.Equal(t, "Unknown", alert.CustomerName)
	assert.Equal(t, 87, alert.RiskScore)
	assert.Equal(t, StatusUnderInvestigation, alert.Status)
	assert.NotNil(t, alert.Indicators)
	assert.Empty(t, alert.Indicators)
	assert.Equal(t, "txn-42", alert.Metadata["transaction_id"])
}

func TestNewFraudAlertScoreClamps(t *testing.T) {
	input := TransactionInput{TransactionID: "t", CustomerID: "c", Amount: decimal.NewFromInt(1)}

	assert.Equal(t, 100, NewFraudAlert(input, 1.4, nil).RiskScore)
	assert.Equal(t, 0, NewFraudAlert(input, -0.2, nil).RiskScore)

	// Rounding, not truncation
	assert.Equal(t, 88, NewFraudAlert(input, 0.875, nil).RiskScore)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusBlocked))
	assert.True(t, ValidStatus(StatusCleared))
	assert.False(t, ValidStatus(AlertStatus("Resolved")))
	assert.False(t, ValidStatus(AlertStatus("")))
}
