package risk

import (
	"context"

	"aegis-fraud-platform/internal/application/dto"
	"aegis-fraud-platform/internal/domain/risk"
)

// ProfileCustomerUseCase scores customers and serves stored profiles
type ProfileCustomerUseCase struct {
	service *risk.Service
}

// NewProfileCustomerUseCase creates the use case
func NewProfileCustomerUseCase(service *risk.Service) *ProfileCustomerUseCase {
	return &ProfileCustomerUseCase{service: service}
}

// Execute scores the customer's signals and stores the profile
func (uc *ProfileCustomerUseCase) Execute(ctx context.Context, req dto.ScoreCustomerRequest) (*dto.RiskProfileResponse, error) {
	profile, err := uc.service.ScoreCustomer(ctx, req.ToInput())
	if err != nil {
		return nil, err
	}
	return dto.NewRiskProfileResponse(profile), nil
}

// Get returns the stored profile for a customer
func (uc *ProfileCustomerUseCase) Get(ctx context.Context, customerID string) (*dto.RiskProfileResponse, error) {
	profile, err := uc.service.GetProfile(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return dto.NewRiskProfileResponse(profile), nil
}

// List returns all stored profiles ordered by score
func (uc *ProfileCustomerUseCase) List(ctx context.Context) ([]*dto.RiskProfileResponse, error) {
	profiles, err := uc.service.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewRiskProfileList(profiles), nil
}

// HighRisk returns profiles at or above the high-risk threshold
func (uc *ProfileCustomerUseCase) HighRisk(ctx context.Context) ([]*dto.RiskProfileResponse, error) {
	profiles, err := uc.service.HighRisk(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewRiskProfileList(profiles), nil
}

// Distribution buckets every stored profile by score band
func (uc *ProfileCustomerUseCase) Distribution(ctx context.Context) (*dto.RiskDistribution, error) {
	dist, err := uc.service.ScoreDistribution(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RiskDistribution{
		Critical: dist.Critical,
		High:     dist.High,
		Medium:   dist.Medium,
		Low:      dist.Low,
	}, nil
}
