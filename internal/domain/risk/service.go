package risk

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultHighRiskThreshold is the minimum score a profile needs to
// appear in the high-risk listing.
const DefaultHighRiskThreshold = 70

// CustomerInput carries the identity and behavioral signals for one
// profiling request.
type CustomerInput struct {
	CustomerID   string
	CustomerName string
	Signals      map[string]interface{}
}

// Distribution buckets stored profiles by score band.
type Distribution struct {
	Critical int64 `json:"critical"` // score >= 90
	High     int64 `json:"high"`     // 70..89
	Medium   int64 `json:"medium"`   // 50..69
	Low      int64 `json:"low"`      // < 50
}

// Service scores customers and maintains their stored risk profiles.
type Service struct {
	profiles          ProfileRepository
	scorer            *Scorer
	logger            *slog.Logger
	highRiskThreshold int
}

func NewService(profiles ProfileRepository, scorer *Scorer, logger *slog.Logger) *Service {
	if scorer == nil {
		scorer = NewScorer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		profiles:          profiles,
		scorer:            scorer,
		logger:            logger,
		highRiskThreshold: DefaultHighRiskThreshold,
	}
}

// SetHighRiskThreshold overrides the high-risk listing cutoff
func (s *Service) SetHighRiskThreshold(threshold int) {
	if threshold >= 0 && threshold <= 100 {
		s.highRiskThreshold = threshold
	}
}

// ScoreCustomer computes the weighted score and risk factors for the
// customer's signals, then stores the resulting profile. The same
// customer scored again overwrites the previous profile.
func (s *Service) ScoreCustomer(ctx context.Context, input CustomerInput) (*RiskProfile, error) {
	if input.CustomerID == "" {
		return nil, ErrMissingCustomerID
	}

	score := s.scorer.CalculateScore(input.Signals)
	factors := s.scorer.IdentifyRiskFactors(input.Signals)

	var accountAge string
	if input.Signals != nil {
		accountAge = AccountAgeLabel(input.Signals[SignalAccountAge])
	}
	profile := NewRiskProfile(input.CustomerID, input.CustomerName, score, factors, accountAge)
	profile.LastActivity = time.Now().UTC()

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store risk profile: %w", err)
	}

	s.logger.InfoContext(ctx, "customer risk scored",
		slog.String("customer_id", profile.CustomerID),
		slog.Int("risk_score", profile.RiskScore),
		slog.String("status", string(profile.Status)),
		slog.Int("factors", len(profile.RiskFactors)),
	)

	return profile, nil
}

// GetProfile returns the stored profile for a customer
func (s *Service) GetProfile(ctx context.Context, customerID string) (*RiskProfile, error) {
	if customerID == "" {
		return nil, ErrMissingCustomerID
	}
	return s.profiles.GetByCustomer(ctx, customerID)
}

// HighRisk lists profiles at or above the configured threshold
func (s *Service) HighRisk(ctx context.Context) ([]*RiskProfile, error) {
	return s.profiles.List(ctx, s.highRiskThreshold)
}

// ListProfiles returns all stored profiles ordered by score
func (s *Service) ListProfiles(ctx context.Context) ([]*RiskProfile, error) {
	return s.profiles.List(ctx, 0)
}

// ScoreDistribution buckets every stored profile by score band
func (s *Service) ScoreDistribution(ctx context.Context) (*Distribution, error) {
	profiles, err := s.profiles.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list risk profiles: %w", err)
	}

	dist := &Distribution{}
	for _, p := range profiles {
		switch {
		case p.RiskScore >= 90:
			dist.Critical++
		case p.RiskScore >= 70:
			dist.High++
		case p.RiskScore >= 50:
			dist.Medium++
		default:
			dist.Low++
		}
	}
	return dist, nil
}
