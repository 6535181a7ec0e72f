package transaction

import "context"

// Repository manages persisted transactions
type Repository interface {
	// Get retrieves a transaction by its external transaction ID
	Get(ctx context.Context, transactionID string) (*Transaction, error)

	// Upsert inserts the transaction or, if a row with the same
	// transaction ID exists, updates only its fraud probability
	// annotation and status. The write must be atomic on the unique
	// transaction ID so concurrent callers cannot create duplicates.
	Upsert(ctx context.Context, tx *Transaction) error

	// Count returns the total number of stored transactions
	Count(ctx context.Context) (int64, error)
}
