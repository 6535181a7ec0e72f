package transaction

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("invalid amount: must be greater than zero")
	ErrMissingIdentity     = errors.New("transaction_id and customer_id are required")
)
