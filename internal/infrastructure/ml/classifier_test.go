package ml

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis-fraud-platform/internal/domain/fraud"
)

func TestExtractFeatureVector(t *testing.T) {
	extractor := NewFeatureExtractor()

	input := fraud.TransactionInput{
		TransactionID: "txn-1",
		CustomerID:    "cust-1",
		Amount:        decimal.NewFromInt(1200),
		Timestamp:     "2026-08-22T14:30:00Z", // a Saturday
		Signals: fraud.Signals{
			TransactionVelocity:  3,
			AvgTransactionAmount: 400,
			AccountAgeDays:       90,
			DistanceFromHome:     25,
			NewDevice:            true,
			VPNUsage:             false,
			FailedLoginAttempts:  2,
		},
	}

	features := extractor.Extract(input)
	vector := features.ToVector()
	require.Len(t, vector, len(FeatureNames))

	assert.InDelta(t, 1200, features.Amount, 1e-9)
	assert.InDelta(t, 14, features.HourOfDay, 1e-9)
	assert.InDelta(t, 5, features.DayOfWeek, 1e-9) // Monday-indexed Saturday
	assert.InDelta(t, 1, features.IsWeekend, 1e-9)
	assert.InDelta(t, 1, features.NewDevice, 1e-9)
	assert.InDelta(t, 0, features.VPNUsage, 1e-9)
	assert.InDelta(t, 90, features.AccountAgeDays, 1e-9)
}

func TestExtractWeekdayIsNotWeekend(t *testing.T) {
	extractor := NewFeatureExtractor()

	input := fraud.TransactionInput{
		Amount:    decimal.NewFromInt(10),
		Timestamp: "2026-08-26T09:00:00Z", // a Wednesday
	}

	features := extractor.Extract(input)
	assert.InDelta(t, 2, features.DayOfWeek, 1e-9)
	assert.InDelta(t, 0, features.IsWeekend, 1e-9)
}

func TestClassifierBootstrapWhenArtifactMissing(t *testing.T) {
	c := NewClassifier(nil, filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Equal(t, "bootstrap", c.ModelVersion())

	// Still serves predictions
	_, probability := c.Score(context.Background(), fraud.TransactionInput{
		TransactionID: "txn-1",
		CustomerID:    "cust-1",
		Amount:        decimal.NewFromInt(100),
	})
	assert.GreaterOrEqual(t, probability, 0.0)
	assert.LessOrEqual(t, probability, 1.0)
}

func TestClassifierLoadsArtifact(t *testing.T) {
	artifact := ModelArtifact{
		Version: "2026-08-01",
		Weights: make([]float64, len(FeatureNames)),
		Bias:    -1.0,
		Means:   make([]float64, len(FeatureNames)),
		Stds:    make([]float64, len(FeatureNames)),
	}
	for i := range artifact.Stds {
		artifact.Stds[i] = 1.0
	}

	path := filepath.Join(t.TempDir(), "model.json")
	data, err := json.Marshal(artifact)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c := NewClassifier(nil, path, nil)
	assert.Equal(t, "2026-08-01", c.ModelVersion())

	// Zero weights leave only the bias: sigmoid(-1) below any sane threshold
	isFraud, probability := c.Score(context.Background(), fraud.TransactionInput{
		TransactionID: "txn-1",
		CustomerID:    "cust-1",
		Amount:        decimal.NewFromInt(100),
	})
	assert.False(t, isFraud)
	assert.InDelta(t, 0.2689, probability, 1e-3)
}

func TestClassifierRejectsBadArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"x","weights":[1,2]}`), 0o644))

	c := NewClassifier(nil, path, nil)
	assert.Equal(t, "bootstrap", c.ModelVersion())

	err := c.Reload(path)
	assert.Error(t, err)
}

func TestClassifierThreshold(t *testing.T) {
	// A model that always outputs probability 0.5
	artifact := ModelArtifact{
		Version: "fixed",
		Weights: make([]float64, len(FeatureNames)),
		Bias:    0,
		Means:   make([]float64, len(FeatureNames)),
		Stds:    make([]float64, len(FeatureNames)),
	}
	for i := range artifact.Stds {
		artifact.Stds[i] = 1.0
	}
	path := filepath.Join(t.TempDir(), "model.json")
	data, err := json.Marshal(artifact)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c := NewClassifier(nil, path, nil)
	input := fraud.TransactionInput{
		TransactionID: "txn-1",
		CustomerID:    "cust-1",
		Amount:        decimal.NewFromInt(100),
	}

	isFraud, probability := c.Score(context.Background(), input)
	assert.InDelta(t, 0.5, probability, 1e-9)
	assert.False(t, isFraud) // default threshold 0.75

	c.SetThreshold(0.5)
	isFraud, _ = c.Score(context.Background(), input)
	assert.True(t, isFraud) // classification is >= threshold

	// Out-of-range thresholds are ignored
	c.SetThreshold(1.5)
	isFraud, _ = c.Score(context.Background(), input)
	assert.True(t, isFraud)
}

func TestClassifierHighRiskSignalsRaiseProbability(t *testing.T) {
	c := NewClassifier(nil, "", nil)

	clean := fraud.TransactionInput{
		TransactionID: "txn-clean",
		CustomerID:    "cust-1",
		Amount:        decimal.NewFromInt(50),
		Signals:       fraud.Signals{AccountAgeDays: 2000},
	}
	risky := fraud.TransactionInput{
		TransactionID: "txn-risky",
		CustomerID:    "cust-1",
		Amount:        decimal.NewFromInt(50000),
		Signals: fraud.Signals{
			TransactionVelocity: 25,
			AccountAgeDays:      3,
			DistanceFromHome:    800,
			NewDevice:           true,
			VPNUsage:            true,
			FailedLoginAttempts: 6,
		},
	}

	_, cleanProb := c.Score(context.Background(), clean)
	_, riskyProb := c.Score(context.Background(), risky)
	assert.Greater(t, riskyProb, cleanProb)
}
