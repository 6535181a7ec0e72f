package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aegis-fraud-platform/internal/domain/risk"
)

// RiskProfileModel is the database model for customer risk profiles
type RiskProfileModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	CustomerName string    `gorm:"type:varchar(128)"`
	RiskScore    int       `gorm:"index;not null"`
	RiskFactors  string    `gorm:"type:jsonb"`
	Status       string    `gorm:"type:varchar(32);index;not null"`
	AccountAge   string    `gorm:"type:varchar(32)"`
	LastActivity time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for risk profiles
func (RiskProfileModel) TableName() string {
	return "risk_profiles"
}

// ProfileRepository implements risk.ProfileRepository
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{db: client.DB()}
}

// Upsert inserts the profile or replaces the assessment fields of the
// existing one for the same customer.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *risk.RiskProfile) error {
	model := toProfileModel(profile)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer_name", "risk_score", "risk_factors", "status",
				"account_age", "last_activity", "updated_at",
			}),
		}).
		Create(model).Error
}

// GetByCustomer returns the profile for a customer ID
func (r *ProfileRepository) GetByCustomer(ctx context.Context, customerID string) (*risk.RiskProfile, error) {
	var model RiskProfileModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, risk.ErrProfileNotFound
		}
		return nil, err
	}
	return toProfileEntity(&model), nil
}

// List returns profiles at or above minScore, highest first
func (r *ProfileRepository) List(ctx context.Context, minScore int) ([]*risk.RiskProfile, error) {
	var models []RiskProfileModel
	query := r.db.WithContext(ctx).Order("risk_score DESC")
	if minScore > 0 {
		query = query.Where("risk_score >= ?", minScore)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	profiles := make([]*risk.RiskProfile, 0, len(models))
	for i := range models {
		profiles = append(profiles, toProfileEntity(&models[i]))
	}
	return profiles, nil
}

// Count returns the number of stored profiles
func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RiskProfileModel{}).
		Count(&count).Error
	return count, err
}

func toProfileModel(profile *risk.RiskProfile) *RiskProfileModel {
	factors, _ := json.Marshal(profile.RiskFactors)
	return &RiskProfileModel{
		ID:           profile.ID,
		CustomerID:   profile.CustomerID,
		CustomerName: profile.CustomerName,
		RiskScore:    profile.RiskScore,
		RiskFactors:  string(factors),
		Status:       string(profile.Status),
		AccountAge:   profile.AccountAge,
		LastActivity: profile.LastActivity,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}

func toProfileEntity(model *RiskProfileModel) *risk.RiskProfile {
	var factors []string
	if model.RiskFactors != "" {
		_ = json.Unmarshal([]byte(model.RiskFactors), &factors)
	}
	return &risk.RiskProfile{
		ID:           model.ID,
		CustomerID:   model.CustomerID,
		CustomerName: model.CustomerName,
		RiskScore:    model.RiskScore,
		RiskFactors:  factors,
		Status:       risk.ProfileStatus(model.Status),
		AccountAge:   model.AccountAge,
		LastActivity: model.LastActivity,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
