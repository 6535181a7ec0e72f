package risk

import (
	"strconv"
	"strings"
)

// Signal names recognized by the scorer. Anything else in the signal
// map is ignored.
const (
	SignalFailedLogins   = "failed_logins"
	SignalNewDevice      = "new_device"
	SignalLocationChange = "location_change"
	SignalVelocity       = "transaction_velocity"
	SignalHighValue      = "high_value_transaction"
	SignalChargebacks    = "chargeback_history"
	SignalVPNUsage       = "vpn_usage"
	SignalAccountAge     = "account_age"
)

// factorWeight pairs a signal with its score contribution. Held as a
// slice so the weight table has a stable order.
type factorWeight struct {
	signal string
	weight float64
}

// Scorer computes weighted customer risk scores. The weight table and
// the risk-factor rule list are deliberately separate passes over the
// same signals: the factor list is not derived from the score, so the
// two can disagree at the margins. That mismatch is inherited behavior,
// do not unify them without product guidance.
type Scorer struct {
	weights []factorWeight
}

// NewScorer creates a scorer with the standard weight table
func NewScorer() *Scorer {
	return &Scorer{
		weights: []factorWeight{
			{SignalFailedLogins, 15},
			{SignalNewDevice, 10},
			{SignalLocationChange, 12},
			{SignalVelocity, 20},
			{SignalHighValue, 15},
			{SignalChargebacks, 25},
			{SignalVPNUsage, 8},
			{SignalAccountAge, -10}, // older accounts reduce risk
		},
	}
}

// CalculateScore produces an integer risk score in [0,100]. The score
// starts at a base of 50 and each present signal contributes its
// weight: booleans contribute the full weight when true, numeric values
// are scaled by min(value, 1), and account age is scaled by
// min(years, 5)/5. An empty signal map yields exactly 50.
func (s *Scorer) CalculateScore(signals map[string]interface{}) int {
	score := 50.0

	for _, fw := range s.weights {
		value, present := signals[fw.signal]
		if !present {
			continue
		}

		if fw.signal == SignalAccountAge {
			days, ok := parseAccountAgeDays(value)
			if !ok {
				continue
			}
			years := days / 365
			if years > 5 {
				years = 5
			}
			score += fw.weight * years / 5
			continue
		}

		switch v := value.(type) {
		case bool:
			if v {
				score += fw.weight
			}
		default:
			if n, ok := asNumber(value); ok {
				if n > 1 {
					n = 1
				}
				score += fw.weight * n
			}
		}
	}

	final := int(score)
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	return final
}

// IdentifyRiskFactors runs the independent rule pass and returns the
// triggered factor labels in a fixed order
func (s *Scorer) IdentifyRiskFactors(signals map[string]interface{}) []string {
	factors := make([]string, 0, 8)

	if n, ok := asNumber(signals[SignalFailedLogins]); ok && n > 3 {
		factors = append(factors, "Multiple failed logins")
	}
	if truthy(signals[SignalNewDevice]) {
		factors = append(factors, "New device detected")
	}
	if truthy(signals[SignalLocationChange]) {
		factors = append(factors, "Unusual location")
	}
	if n, ok := asNumber(signals[SignalVelocity]); ok && n > 10 {
		factors = append(factors, "High transaction velocity")
	}
	if truthy(signals[SignalHighValue]) {
		factors = append(factors, "High-value purchases")
	}
	if n, ok := asNumber(signals[SignalChargebacks]); ok && n > 0 {
		factors = append(factors, "Chargeback history")
	}
	if truthy(signals[SignalVPNUsage]) {
		factors = append(factors, "VPN usage")
	}

	// Missing account age is treated as an established account
	if value, present := signals[SignalAccountAge]; present {
		if days, ok := parseAccountAgeDays(value); ok && days < 30 {
			factors = append(factors, "New account")
		}
	}

	return factors
}

// DetermineStatus maps a score to the profile status label
func (s *Scorer) DetermineStatus(score int) ProfileStatus {
	return StatusForScore(score)
}

// AccountAgeLabel renders the account age signal as a display string
func AccountAgeLabel(value interface{}) string {
	if value == nil {
		return "0 days"
	}
	if str, ok := value.(string); ok && str != "" {
		return str
	}
	if days, ok := parseAccountAgeDays(value); ok {
		return strconv.FormatInt(int64(days), 10) + " days"
	}
	return "0 days"
}

// parseAccountAgeDays accepts a numeric day count or descriptors such
// as "45 days" and "2 years"
func parseAccountAgeDays(value interface{}) (float64, bool) {
	if n, ok := asNumber(value); ok {
		return n, true
	}
	str, ok := value.(string)
	if !ok {
		return 0, false
	}

	fields := strings.Fields(strings.ToLower(strings.TrimSpace(str)))
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	if len(fields) > 1 {
		switch {
		case strings.HasPrefix(fields[1], "year"):
			n *= 365
		case strings.HasPrefix(fields[1], "month"):
			n *= 30
		case strings.HasPrefix(fields[1], "week"):
			n *= 7
		}
	}
	return n, true
}

// asNumber converts the JSON-decoded numeric types to float64.
// Booleans are not numbers here; they take the boolean path in the
// weight loop.
func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}
