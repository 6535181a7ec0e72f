package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Fraud    FraudConfig    `mapstructure:"fraud"`
	Risk     RiskConfig     `mapstructure:"risk"`
	ML       MLConfig       `mapstructure:"ml"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// FraudConfig holds fraud detection thresholds
type FraudConfig struct {
	DetectionThreshold float64         `mapstructure:"detection_threshold"`
	HighValueThreshold decimal.Decimal `mapstructure:"high_value_threshold"`
}

// RiskConfig holds customer risk profiling thresholds
type RiskConfig struct {
	HighRiskThreshold int `mapstructure:"high_risk_threshold"`
}

// MLConfig holds classifier configuration
type MLConfig struct {
	ModelPath string `mapstructure:"model_path"`
}

// CacheConfig holds cache tuning
type CacheConfig struct {
	MetricsTTL time.Duration `mapstructure:"metrics_ttl"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "aegis",
			Password:        "",
			Name:            "aegis_fraud",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         6379,
			DB:           0,
			PoolSize:     10,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Fraud: FraudConfig{
			DetectionThreshold: 0.75,
			HighValueThreshold: decimal.NewFromInt(10000),
		},
		Risk: RiskConfig{
			HighRiskThreshold: 70,
		},
		ML: MLConfig{
			ModelPath: "models/fraud_classifier.json",
		},
		Cache: CacheConfig{
			MetricsTTL: 15 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
