package ml

import (
	"time"

	"aegis-fraud-platform/internal/domain/fraud"
)

// FeatureNames lists the model inputs in vector order. The order is
// part of the model artifact contract and must not change without a
// model version bump.
var FeatureNames = []string{
	"amount",
	"hour_of_day",
	"day_of_week",
	"is_weekend",
	"transaction_velocity",
	"avg_transaction_amount",
	"account_age_days",
	"distance_from_home",
	"new_device",
	"vpn_usage",
	"failed_login_attempts",
}

// Features holds the extracted feature values for one transaction
type Features struct {
	Amount               float64
	HourOfDay            float64
	DayOfWeek            float64
	IsWeekend            float64
	TransactionVelocity  float64
	AvgTransactionAmount float64
	AccountAgeDays       float64
	DistanceFromHome     float64
	NewDevice            float64
	VPNUsage             float64
	FailedLoginAttempts  float64
}

// ToVector returns the features in model input order
func (f *Features) ToVector() []float64 {
	return []float64{
		f.Amount,
		f.HourOfDay,
		f.DayOfWeek,
		f.IsWeekend,
		f.TransactionVelocity,
		f.AvgTransactionAmount,
		f.AccountAgeDays,
		f.DistanceFromHome,
		f.NewDevice,
		f.VPNUsage,
		f.FailedLoginAttempts,
	}
}

// FeatureExtractor converts transaction inputs into model features
type FeatureExtractor struct{}

// NewFeatureExtractor creates a feature extractor
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{}
}

// Extract derives the feature values from a transaction. Time features
// come from the transaction's own timestamp; missing behavioral
// signals stay at their zero value.
func (e *FeatureExtractor) Extract(input fraud.TransactionInput) *Features {
	ts := input.ParsedTimestamp()

	f := &Features{
		Amount:               input.Amount.InexactFloat64(),
		HourOfDay:            float64(ts.Hour()),
		DayOfWeek:            float64(weekdayIndex(ts.Weekday())),
		TransactionVelocity:  input.Signals.TransactionVelocity,
		AvgTransactionAmount: input.Signals.AvgTransactionAmount,
		AccountAgeDays:       input.Signals.AccountAgeDays,
		DistanceFromHome:     input.Signals.DistanceFromHome,
		FailedLoginAttempts:  input.Signals.FailedLoginAttempts,
	}
	if f.DayOfWeek >= 5 {
		f.IsWeekend = 1.0
	}
	if input.Signals.NewDevice {
		f.NewDevice = 1.0
	}
	if input.Signals.VPNUsage {
		f.VPNUsage = 1.0
	}
	return f
}

// weekdayIndex maps Go's Sunday-first weekday to Monday=0..Sunday=6
func weekdayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}
