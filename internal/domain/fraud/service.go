package fraud

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"aegis-fraud-platform/internal/domain/transaction"
	"aegis-fraud-platform/internal/pkg/syncutil"
)

// Indicator labels appended by the rule pass in Analyze. The pass is
// independent of the classifier output, so an alert can carry an empty
// indicator list even when the classifier votes fraud.
const (
	IndicatorNewDevice = "New device"
	IndicatorVPNUsage  = "VPN usage"
	IndicatorHighValue = "High-value transaction"
)

// Service orchestrates transaction risk scoring and the alert lifecycle
type Service struct {
	txRepo    transaction.Repository
	alertRepo AlertRepository
	scorer    Scorer
	locks     *syncutil.KeyedMutex
	logger    *slog.Logger

	highValueThreshold decimal.Decimal
}

// NewService creates a fraud detection service
func NewService(txRepo transaction.Repository, alertRepo AlertRepository, scorer Scorer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		txRepo:             txRepo,
		alertRepo:          alertRepo,
		scorer:             scorer,
		locks:              syncutil.NewKeyedMutex(),
		logger:             logger,
		highValueThreshold: decimal.NewFromInt(10000),
	}
}

// SetHighValueThreshold overrides the amount above which the high-value
// indicator fires
func (s *Service) SetHighValueThreshold(threshold decimal.Decimal) {
	s.highValueThreshold = threshold
}

// Analyze runs feature extraction and classification for a transaction
// and derives risk indicators. Classification is fail-open: scorer
// errors surface as a non-fraud result, never as an analysis failure.
func (s *Service) Analyze(ctx context.Context, input TransactionInput) (*Assessment, error) {
	if input.TransactionID == "" || input.CustomerID == "" {
		return nil, ErrMissingTransactionData
	}
	if !input.Amount.IsPositive() {
		return nil, transaction.ErrInvalidAmount
	}

	isFraud, confidence := s.scorer.Score(ctx, input)
	indicators := s.identifyIndicators(input)

	s.logger.InfoContext(ctx, "transaction analyzed",
		"transaction_id", input.TransactionID,
		"is_fraud", isFraud,
		"confidence", confidence,
	)

	return &Assessment{
		IsFraud:    isFraud,
		Confidence: confidence,
		Indicators: indicators,
	}, nil
}

// identifyIndicators is a rule pass over the raw input, intentionally
// decoupled from the classifier score
func (s *Service) identifyIndicators(input TransactionInput) []string {
	indicators := make([]string, 0, 3)
	if input.Signals.NewDevice {
		indicators = append(indicators, IndicatorNewDevice)
	}
	if input.Signals.VPNUsage {
		indicators = append(indicators, IndicatorVPNUsage)
	}
	if input.Amount.GreaterThan(s.highValueThreshold) {
		indicators = append(indicators, IndicatorHighValue)
	}
	return indicators
}

// CreateAlert persists an alert for a fraud-positive assessment. The
// transaction row is upserted first so the alert's reference is always
// valid: a missing row is created, an existing row only gets its fraud
// probability annotation refreshed. Concurrent calls for the same
// transaction ID are serialized, and a second alert for a transaction is
// rejected with ErrAlertExists.
func (s *Service) CreateAlert(ctx context.Context, input TransactionInput, assessment *Assessment) (*FraudAlert, error) {
	unlock, err := s.locks.Lock(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := s.alertRepo.GetByTransactionID(ctx, input.TransactionID); err == nil {
		return nil, ErrAlertExists
	} else if err != ErrAlertNotFound {
		return nil, err
	}

	tx, err := s.buildTransaction(input, assessment.Confidence)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Upsert(ctx, tx); err != nil {
		return nil, err
	}

	alert := NewFraudAlert(input, assessment.Confidence, assessment.Indicators)
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "fraud alert created",
		"alert_id", alert.ID,
		"transaction_id", alert.TransactionID,
		"risk_score", alert.RiskScore,
		"status", alert.Status,
	)
	return alert, nil
}

func (s *Service) buildTransaction(input TransactionInput, confidence float64) (*transaction.Transaction, error) {
	tx, err := transaction.New(input.TransactionID, input.CustomerID, input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}
	if input.MerchantID != "" {
		tx.MerchantID = input.MerchantID
	}
	tx.MerchantCategory = input.MerchantCategory
	if input.PaymentMethod != "" {
		tx.PaymentMethod = input.PaymentMethod
	}
	tx.IPAddress = input.IPAddress
	tx.DeviceID = input.DeviceID
	tx.Location = input.Location
	tx.Timestamp = input.ParsedTimestamp()
	tx.Status = transaction.StatusFlagged
	tx.Annotate(confidence)
	return tx, nil
}

// GetAlert retrieves an alert by ID
func (s *Service) GetAlert(ctx context.Context, id uuid.UUID) (*FraudAlert, error) {
	return s.alertRepo.GetByID(ctx, id)
}

// GetAlertByTransaction retrieves the alert raised for a transaction
func (s *Service) GetAlertByTransaction(ctx context.Context, transactionID string) (*FraudAlert, error) {
	return s.alertRepo.GetByTransactionID(ctx, transactionID)
}

// ListRecentAlerts returns the most recent alerts
func (s *Service) ListRecentAlerts(ctx context.Context, limit int) ([]*FraudAlert, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.alertRepo.ListRecent(ctx, limit)
}

// UpdateAlertStatus applies an out-of-band transition to one of the
// enumerated statuses
func (s *Service) UpdateAlertStatus(ctx context.Context, id uuid.UUID, status AlertStatus) (*FraudAlert, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidAlertStatus
	}
	alert, err := s.alertRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "alert status updated", "alert_id", id, "status", status)
	return alert, nil
}
