package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"aegis-fraud-platform/internal/domain/fraud"
)

// FraudAlertModel is the database model for fraud alerts
type FraudAlertModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Type          string          `gorm:"type:varchar(64);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CustomerID    string          `gorm:"type:varchar(64);index;not null"`
	CustomerName  string          `gorm:"type:varchar(128)"`
	RiskScore     int             `gorm:"index;not null"`
	Indicators    string          `gorm:"type:jsonb"`
	Status        string          `gorm:"type:varchar(32);index;not null"`
	MLConfidence  float64         `gorm:"type:decimal(5,4)"`
	Metadata      string          `gorm:"type:jsonb"`
	CreatedAt     time.Time       `gorm:"index;not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for fraud alerts
func (FraudAlertModel) TableName() string {
	return "fraud_alerts"
}

// AlertRepository implements fraud.AlertRepository
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(client *Client) *AlertRepository {
	return &AlertRepository{db: client.DB()}
}

// Create stores a new alert. The unique index on transaction ID makes
// duplicate creation fail with fraud.ErrAlertExists.
func (r *AlertRepository) Create(ctx context.Context, alert *fraud.FraudAlert) error {
	model := toAlertModel(alert)
	err := r.db.WithContext(ctx).Create(model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fraud.ErrAlertExists
		}
		return err
	}
	return nil
}

// GetByID returns an alert by its UUID
func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*fraud.FraudAlert, error) {
	var model FraudAlertModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fraud.ErrAlertNotFound
		}
		return nil, err
	}
	return toAlertEntity(&model), nil
}

// GetByTransactionID returns the alert for a transaction
func (r *AlertRepository) GetByTransactionID(ctx context.Context, transactionID string) (*fraud.FraudAlert, error) {
	var model FraudAlertModel
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fraud.ErrAlertNotFound
		}
		return nil, err
	}
	return toAlertEntity(&model), nil
}

// UpdateStatus changes an alert's status and returns the updated alert
func (r *AlertRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status fraud.AlertStatus) (*fraud.FraudAlert, error) {
	result := r.db.WithContext(ctx).
		Model(&FraudAlertModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fraud.ErrAlertNotFound
	}
	return r.GetByID(ctx, id)
}

// ListRecent returns the newest alerts up to limit
func (r *AlertRepository) ListRecent(ctx context.Context, limit int) ([]*fraud.FraudAlert, error) {
	var models []FraudAlertModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]*fraud.FraudAlert, 0, len(models))
	for i := range models {
		alerts = append(alerts, toAlertEntity(&models[i]))
	}
	return alerts, nil
}

// CountByStatus counts alerts in the given statuses; with no statuses
// it counts everything.
func (r *AlertRepository) CountByStatus(ctx context.Context, statuses ...fraud.AlertStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&FraudAlertModel{})
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		query = query.Where("status IN ?", values)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func toAlertModel(alert *fraud.FraudAlert) *FraudAlertModel {
	indicators, _ := json.Marshal(alert.Indicators)
	metadata, _ := json.Marshal(alert.Metadata)
	return &FraudAlertModel{
		ID:            alert.ID,
		TransactionID: alert.TransactionID,
		Type:          alert.Type,
		Amount:        alert.Amount,
		CustomerID:    alert.CustomerID,
		CustomerName:  alert.CustomerName,
		RiskScore:     alert.RiskScore,
		Indicators:    string(indicators),
		Status:        string(alert.Status),
		MLConfidence:  alert.MLConfidence,
		Metadata:      string(metadata),
		CreatedAt:     alert.CreatedAt,
		UpdatedAt:     alert.UpdatedAt,
	}
}

func toAlertEntity(model *FraudAlertModel) *fraud.FraudAlert {
	var indicators []string
	if model.Indicators != "" {
		_ = json.Unmarshal([]byte(model.Indicators), &indicators)
	}
	var metadata map[string]interface{}
	if model.Metadata != "" {
		_ = json.Unmarshal([]byte(model.Metadata), &metadata)
	}
	return &fraud.FraudAlert{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		Type:          model.Type,
		Amount:        model.Amount,
		CustomerID:    model.CustomerID,
		CustomerName:  model.CustomerName,
		RiskScore:     model.RiskScore,
		Indicators:    indicators,
		Status:        fraud.AlertStatus(model.Status),
		MLConfidence:  model.MLConfidence,
		Metadata:      metadata,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
