package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 0.75, cfg.Fraud.DetectionThreshold, 1e-9)
	assert.True(t, cfg.Fraud.HighValueThreshold.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 70, cfg.Risk.HighRiskThreshold)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
	assert.Equal(t, DefaultConfig().Database.Name, cfg.Database.Name)
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("AEGIS_SERVER_PORT", "9090")
	t.Setenv("AEGIS_RISK_HIGH_RISK_THRESHOLD", "80")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 80, cfg.Risk.HighRiskThreshold)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Fraud.DetectionThreshold = 1.2
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Fraud.HighValueThreshold = decimal.NewFromInt(-1)
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Risk.HighRiskThreshold = 101
	assert.Error(t, cfg.Validate())
}
