package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the processing state of a transaction
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFlagged   Status = "flagged"
	StatusDeclined  Status = "declined"
)

// Transaction represents a payment transaction observed by the platform.
// Transactions are immutable once created; the only field the engine writes
// after creation is the fraud probability annotation set by classification.
type Transaction struct {
	TransactionID string `json:"transaction_id"`
	CustomerID    string `json:"customer_id"`

	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	MerchantID       string          `json:"merchant_id"`
	MerchantCategory string          `json:"merchant_category,omitempty"`
	PaymentMethod    string          `json:"payment_method"`

	// Optional context
	IPAddress string `json:"ip_address,omitempty"`
	DeviceID  string `json:"device_id,omitempty"`
	Location  string `json:"location,omitempty"`

	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`

	// Free-form feature bag captured with the transaction
	Features map[string]interface{} `json:"features,omitempty"`

	// Written once when classification runs
	FraudProbability *float64 `json:"fraud_probability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a transaction with defaults applied
func New(transactionID, customerID string, amount decimal.Decimal, currency string) (*Transaction, error) {
	if transactionID == "" || customerID == "" {
		return nil, ErrMissingIdentity
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = "INR"
	}

	now := time.Now()
	return &Transaction{
		TransactionID: transactionID,
		CustomerID:    customerID,
		Amount:        amount,
		Currency:      currency,
		MerchantID:    "unknown",
		PaymentMethod: "unknown",
		Status:        StatusPending,
		Timestamp:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Validate checks the transaction invariants
func (t *Transaction) Validate() error {
	if t.TransactionID == "" || t.CustomerID == "" {
		return ErrMissingIdentity
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Annotate records the fraud probability produced by classification
func (t *Transaction) Annotate(probability float64) {
	p := probability
	t.FraudProbability = &p
	t.UpdatedAt = time.Now()
}
