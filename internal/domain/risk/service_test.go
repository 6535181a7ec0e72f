package risk

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*RiskProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*RiskProfile)}
}

func (r *memProfileRepo) Upsert(ctx context.Context, profile *RiskProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[profile.CustomerID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	r.profiles[profile.CustomerID] = profile
	return nil
}

func (r *memProfileRepo) GetByCustomer(ctx context.Context, customerID string) (*RiskProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[customerID]; ok {
		return p, nil
	}
	return nil, ErrProfileNotFound
}

func (r *memProfileRepo) List(ctx context.Context, minScore int) ([]*RiskProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	results := make([]*RiskProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if p.RiskScore >= minScore {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].RiskScore > results[j].RiskScore
	})
	return results, nil
}

func (r *memProfileRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.profiles)), nil
}

func TestScoreCustomerStoresProfile(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)

	profile, err := svc.ScoreCustomer(context.Background(), CustomerInput{
		CustomerID:   "cust-7",
		CustomerName: "Arjun Mehta",
		Signals: map[string]interface{}{
			SignalChargebacks: 2.0,
			SignalVelocity:    15.0,
			SignalAccountAge:  "12 days",
		},
	})
	require.NoError(t, err)

	// base 50 + chargebacks 25 + velocity 20 + account age -10*(12/365)/5
	assert.Equal(t, 94, profile.RiskScore)
	assert.Equal(t, StatusRestricted, profile.Status)
	assert.Equal(t, []string{
		"High transaction velocity",
		"Chargeback history",
		"New account",
	}, profile.RiskFactors)
	assert.Equal(t, "12 days", profile.AccountAge)

	stored, err := svc.GetProfile(context.Background(), "cust-7")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stored.ID)
}

func TestScoreCustomerRequiresCustomerID(t *testing.T) {
	svc := NewService(newMemProfileRepo(), nil, nil)

	_, err := svc.ScoreCustomer(context.Background(), CustomerInput{})
	assert.ErrorIs(t, err, ErrMissingCustomerID)

	_, err = svc.GetProfile(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingCustomerID)
}

func TestScoreCustomerEmptySignalsIsBaseline(t *testing.T) {
	svc := NewService(newMemProfileRepo(), nil, nil)

	profile, err := svc.ScoreCustomer(context.Background(), CustomerInput{CustomerID: "cust-1"})
	require.NoError(t, err)

	assert.Equal(t, 50, profile.RiskScore)
	assert.Equal(t, StatusMonitoring, profile.Status)
	assert.Empty(t, profile.RiskFactors)
	assert.Equal(t, "Unknown", profile.CustomerName)
}

func TestScoreCustomerRescoreOverwrites(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil, nil)

	first, err := svc.ScoreCustomer(context.Background(), CustomerInput{
		CustomerID: "cust-2",
		Signals:    map[string]interface{}{SignalChargebacks: 1.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 75, first.RiskScore)

	second, err := svc.ScoreCustomer(context.Background(), CustomerInput{CustomerID: "cust-2"})
	require.NoError(t, err)
	assert.Equal(t, 50, second.RiskScore)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestHighRiskThreshold(t *testing.T) {
	svc := NewService(newMemProfileRepo(), nil, nil)

	inputs := map[string]map[string]interface{}{
		"low":      nil,
		"high":     {SignalChargebacks: true},          // 75
		"critical": {SignalChargebacks: true, SignalVelocity: 20.0}, // 95
	}
	for id, signals := range inputs {
		_, err := svc.ScoreCustomer(context.Background(), CustomerInput{CustomerID: id, Signals: signals})
		require.NoError(t, err)
	}

	high, err := svc.HighRisk(context.Background())
	require.NoError(t, err)
	require.Len(t, high, 2)
	assert.Equal(t, "critical", high[0].CustomerID)
	assert.Equal(t, "high", high[1].CustomerID)

	svc.SetHighRiskThreshold(90)
	high, err = svc.HighRisk(context.Background())
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "critical", high[0].CustomerID)
}

func TestScoreDistribution(t *testing.T) {
	svc := NewService(newMemProfileRepo(), nil, nil)

	signals := []map[string]interface{}{
		{SignalChargebacks: true, SignalVelocity: 20.0},  // 95 critical
		{SignalChargebacks: true},                        // 75 high
		{SignalNewDevice: true},                          // 60 medium
		{SignalAccountAge: "10 years"},                   // 40 low
	}
	for i, s := range signals {
		_, err := svc.ScoreCustomer(context.Background(), CustomerInput{
			CustomerID: string(rune('a' + i)),
			Signals:    s,
		})
		require.NoError(t, err)
	}

	dist, err := svc.ScoreDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), dist.Critical)
	assert.Equal(t, int64(1), dist.High)
	assert.Equal(t, int64(1), dist.Medium)
	assert.Equal(t, int64(1), dist.Low)
}
