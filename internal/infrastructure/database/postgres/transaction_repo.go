package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aegis-fraud-platform/internal/domain/transaction"
)

// TransactionModel is the database model for transactions
type TransactionModel struct {
	TransactionID    string          `gorm:"type:varchar(64);primaryKey"`
	CustomerID       string          `gorm:"type:varchar(64);index;not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	MerchantID       string          `gorm:"type:varchar(64)"`
	MerchantCategory string          `gorm:"type:varchar(64)"`
	PaymentMethod    string          `gorm:"type:varchar(32)"`
	IPAddress        string          `gorm:"type:varchar(45)"`
	DeviceID         string          `gorm:"type:varchar(64)"`
	Location         string          `gorm:"type:varchar(128)"`
	Status           string          `gorm:"type:varchar(20);index;not null"`
	Timestamp        time.Time       `gorm:"index;not null"`
	Features         string          `gorm:"type:jsonb"`
	FraudProbability *float64        `gorm:"type:decimal(5,4)"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for transactions
func (TransactionModel) TableName() string {
	return "transactions"
}

// TransactionRepository implements transaction.Repository
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(client *Client) *TransactionRepository {
	return &TransactionRepository{db: client.DB()}
}

// Upsert inserts the transaction or, when the ID already exists,
// updates only its fraud assessment and status.
func (r *TransactionRepository) Upsert(ctx context.Context, tx *transaction.Transaction) error {
	model := toTransactionModel(tx)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "transaction_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"fraud_probability", "status", "updated_at",
			}),
		}).
		Create(model).Error
}

// Get returns a transaction by its ID
func (r *TransactionRepository) Get(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	var model TransactionModel
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, err
	}
	return toTransactionEntity(&model)
}

// Count returns the number of stored transactions
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Count(&count).Error
	return count, err
}

func toTransactionModel(tx *transaction.Transaction) *TransactionModel {
	features, _ := json.Marshal(tx.Features)
	return &TransactionModel{
		TransactionID:    tx.TransactionID,
		CustomerID:       tx.CustomerID,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		MerchantID:       tx.MerchantID,
		MerchantCategory: tx.MerchantCategory,
		PaymentMethod:    tx.PaymentMethod,
		IPAddress:        tx.IPAddress,
		DeviceID:         tx.DeviceID,
		Location:         tx.Location,
		Status:           string(tx.Status),
		Timestamp:        tx.Timestamp,
		Features:         string(features),
		FraudProbability: tx.FraudProbability,
		CreatedAt:        tx.CreatedAt,
		UpdatedAt:        tx.UpdatedAt,
	}
}

func toTransactionEntity(model *TransactionModel) (*transaction.Transaction, error) {
	var features map[string]interface{}
	if model.Features != "" {
		if err := json.Unmarshal([]byte(model.Features), &features); err != nil {
			features = nil
		}
	}
	return &transaction.Transaction{
		TransactionID:    model.TransactionID,
		CustomerID:       model.CustomerID,
		Amount:           model.Amount,
		Currency:         model.Currency,
		MerchantID:       model.MerchantID,
		MerchantCategory: model.MerchantCategory,
		PaymentMethod:    model.PaymentMethod,
		IPAddress:        model.IPAddress,
		DeviceID:         model.DeviceID,
		Location:         model.Location,
		Status:           transaction.Status(model.Status),
		Timestamp:        model.Timestamp,
		Features:         features,
		FraudProbability: model.FraudProbability,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}, nil
}
