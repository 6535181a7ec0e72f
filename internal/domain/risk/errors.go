package risk

import "errors"

var (
	ErrProfileNotFound   = errors.New("risk profile not found")
	ErrMissingCustomerID = errors.New("customer ID is required")
)
