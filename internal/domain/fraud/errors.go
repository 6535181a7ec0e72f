package fraud

import "errors"

var (
	// Alert errors
	ErrAlertNotFound      = errors.New("fraud alert not found")
	ErrAlertExists        = errors.New("transaction already has a fraud alert")
	ErrInvalidAlertStatus = errors.New("invalid alert status")

	// Analysis errors
	ErrMissingTransactionData = errors.New("missing required transaction data")
	ErrNotFraudulent          = errors.New("transaction was not classified as fraud")
)
