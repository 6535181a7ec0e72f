package fraud

import (
	"context"

	"github.com/google/uuid"
)

// AlertRepository manages persisted fraud alerts
type AlertRepository interface {
	// Create stores a new alert. Implementations must enforce the
	// one-alert-per-transaction invariant and return ErrAlertExists on
	// a duplicate transaction reference.
	Create(ctx context.Context, alert *FraudAlert) error

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id uuid.UUID) (*FraudAlert, error)

	// GetByTransactionID retrieves the alert for a transaction
	GetByTransactionID(ctx context.Context, transactionID string) (*FraudAlert, error)

	// UpdateStatus transitions an alert to the given status and stamps
	// updated_at
	UpdateStatus(ctx context.Context, id uuid.UUID, status AlertStatus) (*FraudAlert, error)

	// ListRecent returns the most recent alerts, newest first
	ListRecent(ctx context.Context, limit int) ([]*FraudAlert, error)

	// CountByStatus counts alerts in any of the given statuses
	CountByStatus(ctx context.Context, statuses ...AlertStatus) (int64, error)
}
