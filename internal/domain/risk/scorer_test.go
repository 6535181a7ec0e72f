package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScoreBaseline(t *testing.T) {
	s := NewScorer()

	assert.Equal(t, 50, s.CalculateScore(nil))
	assert.Equal(t, 50, s.CalculateScore(map[string]interface{}{}))

	// Unknown keys are ignored
	assert.Equal(t, 50, s.CalculateScore(map[string]interface{}{"favorite_color": "blue"}))
}

func TestCalculateScoreBooleanSignals(t *testing.T) {
	s := NewScorer()

	assert.Equal(t, 60, s.CalculateScore(map[string]interface{}{SignalNewDevice: true}))
	assert.Equal(t, 50, s.CalculateScore(map[string]interface{}{SignalNewDevice: false}))
	assert.Equal(t, 58, s.CalculateScore(map[string]interface{}{SignalVPNUsage: true}))
	assert.Equal(t, 75, s.CalculateScore(map[string]interface{}{SignalChargebacks: true}))
}

func TestCalculateScoreNumericSignalsScaleAndSaturate(t *testing.T) {
	s := NewScorer()

	// Values are capped at 1 before weighting
	assert.Equal(t, 70, s.CalculateScore(map[string]interface{}{SignalVelocity: 50}))
	assert.Equal(t, 70, s.CalculateScore(map[string]interface{}{SignalVelocity: 1}))
	assert.Equal(t, 60, s.CalculateScore(map[string]interface{}{SignalVelocity: 0.5}))
}

func TestCalculateScoreAccountAgeReducesRisk(t *testing.T) {
	s := NewScorer()

	// Five or more years earns the full -10
	assert.Equal(t, 40, s.CalculateScore(map[string]interface{}{SignalAccountAge: float64(5 * 365)}))
	assert.Equal(t, 40, s.CalculateScore(map[string]interface{}{SignalAccountAge: "10 years"}))

	// One year earns a fifth of it
	assert.Equal(t, 48, s.CalculateScore(map[string]interface{}{SignalAccountAge: float64(365)}))

	// Brand-new account changes nothing on the score side
	assert.Equal(t, 50, s.CalculateScore(map[string]interface{}{SignalAccountAge: float64(0)}))
}

func TestCalculateScoreClamps(t *testing.T) {
	s := NewScorer()

	everything := map[string]interface{}{
		SignalFailedLogins:   10.0,
		SignalNewDevice:      true,
		SignalLocationChange: true,
		SignalVelocity:       20.0,
		SignalHighValue:      true,
		SignalChargebacks:    3.0,
		SignalVPNUsage:       true,
	}
	assert.Equal(t, 100, s.CalculateScore(everything))
}

func TestIdentifyRiskFactors(t *testing.T) {
	s := NewScorer()

	factors := s.IdentifyRiskFactors(map[string]interface{}{
		SignalFailedLogins:   5.0,
		SignalNewDevice:      true,
		SignalLocationChange: true,
		SignalVelocity:       15.0,
		SignalHighValue:      true,
		SignalChargebacks:    1.0,
		SignalVPNUsage:       true,
		SignalAccountAge:     10.0,
	})

	assert.Equal(t, []string{
		"Multiple failed logins",
		"New device detected",
		"Unusual location",
		"High transaction velocity",
		"High-value purchases",
		"Chargeback history",
		"VPN usage",
		"New account",
	}, factors)
}

func TestIdentifyRiskFactorsThresholds(t *testing.T) {
	s := NewScorer()

	// Boundary values do not trigger
	assert.Empty(t, s.IdentifyRiskFactors(map[string]interface{}{
		SignalFailedLogins: 3.0,
		SignalVelocity:     10.0,
		SignalChargebacks:  0.0,
	}))
}

func TestIdentifyRiskFactorsAccountAge(t *testing.T) {
	s := NewScorer()

	// Missing account age is an established account, not a new one
	assert.Empty(t, s.IdentifyRiskFactors(map[string]interface{}{}))

	assert.Equal(t, []string{"New account"},
		s.IdentifyRiskFactors(map[string]interface{}{SignalAccountAge: "10 days"}))

	assert.Empty(t, s.IdentifyRiskFactors(map[string]interface{}{SignalAccountAge: "45 days"}))
	assert.Empty(t, s.IdentifyRiskFactors(map[string]interface{}{SignalAccountAge: "2 years"}))
}

func TestParseAccountAgeDays(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{45.0, 45, true},
		{45, 45, true},
		{"45 days", 45, true},
		{"2 years", 730, true},
		{"3 months", 90, true},
		{"1 week", 7, true},
		{"yesterday", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}

	for _, tc := range cases {
		got, ok := parseAccountAgeDays(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %v", tc.in)
		}
	}
}

func TestDetermineStatus(t *testing.T) {
	s := NewScorer()

	assert.Equal(t, StatusRestricted, s.DetermineStatus(95))
	assert.Equal(t, StatusRestricted, s.DetermineStatus(90))
	assert.Equal(t, StatusUnderReview, s.DetermineStatus(70))
	assert.Equal(t, StatusMonitoring, s.DetermineStatus(50))
	assert.Equal(t, StatusNormal, s.DetermineStatus(49))
}
