package fraud

import (
	"time"

	"github.com/shopspring/decimal"
)

// Signals are the recognized behavioral features accompanying a
// transaction. Every field defaults to its zero value when the caller
// does not supply it.
type Signals struct {
	TransactionVelocity  float64 `json:"transaction_velocity"`
	AvgTransactionAmount float64 `json:"avg_transaction_amount"`
	AccountAgeDays       float64 `json:"account_age_days"`
	DistanceFromHome     float64 `json:"distance_from_home"`
	NewDevice            bool    `json:"new_device"`
	VPNUsage             bool    `json:"vpn_usage"`
	FailedLoginAttempts  float64 `json:"failed_login_attempts"`
}

// TransactionInput is the evaluation context for a single transaction.
// Only TransactionID, CustomerID and a positive Amount are required.
type TransactionInput struct {
	TransactionID string
	CustomerID    string
	CustomerName  string
	FraudType     string

	Amount           decimal.Decimal
	Currency         string
	MerchantID       string
	MerchantCategory string
	PaymentMethod    string

	IPAddress string
	DeviceID  string
	Location  string

	// RFC3339 timestamp from the caller; empty or unparseable values
	// fall back to the time of analysis.
	Timestamp string

	Signals Signals
}

// Snapshot captures the input as free-form alert metadata
func (in TransactionInput) Snapshot() map[string]interface{} {
	snap := map[string]interface{}{
		"transaction_id": in.TransactionID,
		"customer_id":    in.CustomerID,
		"amount":         in.Amount.InexactFloat64(),
		"currency":       in.Currency,
		"merchant_id":    in.MerchantID,
		"payment_method": in.PaymentMethod,
	}
	if in.IPAddress != "" {
		snap["ip_address"] = in.IPAddress
	}
	if in.DeviceID != "" {
		snap["device_id"] = in.DeviceID
	}
	if in.Location != "" {
		snap["location"] = in.Location
	}
	if in.Timestamp != "" {
		snap["timestamp"] = in.Timestamp
	}
	return snap
}

// ParsedTimestamp returns the caller-supplied timestamp, falling back to
// now when absent or unparseable. Parsing never fails the caller.
func (in TransactionInput) ParsedTimestamp() time.Time {
	if in.Timestamp == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, in.Timestamp); err == nil {
			return ts
		}
	}
	return time.Now()
}
