package config

import (
	"errors"
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	if c.Fraud.DetectionThreshold <= 0 || c.Fraud.DetectionThreshold >= 1 {
		return errors.New("detection_threshold must be between 0 and 1")
	}

	if c.Fraud.HighValueThreshold.IsNegative() {
		return errors.New("high_value_threshold must not be negative")
	}

	if c.Risk.HighRiskThreshold < 0 || c.Risk.HighRiskThreshold > 100 {
		return errors.New("high_risk_threshold must be between 0 and 100")
	}

	if c.Cache.MetricsTTL < 0 {
		return errors.New("metrics_ttl must not be negative")
	}

	return nil
}
