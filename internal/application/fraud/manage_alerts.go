package fraud

import (
	"context"

	"github.com/google/uuid"

	"aegis-fraud-platform/internal/application/dto"
	"aegis-fraud-platform/internal/domain/fraud"
)

// ManageAlertsUseCase exposes alert lifecycle operations
type ManageAlertsUseCase struct {
	service *fraud.Service
}

// NewManageAlertsUseCase creates the use case
func NewManageAlertsUseCase(service *fraud.Service) *ManageAlertsUseCase {
	return &ManageAlertsUseCase{service: service}
}

// Get returns an alert by ID
func (uc *ManageAlertsUseCase) Get(ctx context.Context, id uuid.UUID) (*dto.FraudAlertResponse, error) {
	alert, err := uc.service.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewFraudAlertResponse(alert), nil
}

// ListRecent returns the newest alerts up to limit
func (uc *ManageAlertsUseCase) ListRecent(ctx context.Context, limit int) ([]*dto.FraudAlertResponse, error) {
	alerts, err := uc.service.ListRecentAlerts(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FraudAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.NewFraudAlertResponse(a))
	}
	return out, nil
}

// UpdateStatus applies a status transition to an alert
func (uc *ManageAlertsUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.FraudAlertResponse, error) {
	alert, err := uc.service.UpdateAlertStatus(ctx, id, fraud.AlertStatus(status))
	if err != nil {
		return nil, err
	}
	return dto.NewFraudAlertResponse(alert), nil
}
