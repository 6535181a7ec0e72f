package risk

import "context"

// ProfileRepository persists customer risk profiles. Implementations
// must return ErrProfileNotFound when a lookup misses.
type ProfileRepository interface {
	// Upsert inserts the profile or, when one already exists for the
	// customer, replaces its score, factors, status and activity fields
	Upsert(ctx context.Context, profile *RiskProfile) error

	// GetByCustomer returns the profile for a customer ID
	GetByCustomer(ctx context.Context, customerID string) (*RiskProfile, error)

	// List returns profiles with RiskScore >= minScore, highest first.
	// minScore 0 returns every profile.
	List(ctx context.Context, minScore int) ([]*RiskProfile, error)

	// Count returns the total number of stored profiles
	Count(ctx context.Context) (int64, error)
}
