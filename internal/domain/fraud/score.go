package fraud

import "context"

// Scorer produces a fraud probability for a transaction. Implementations
// must never fail the caller: any internal error degrades to
// (false, 0.0).
type Scorer interface {
	Score(ctx context.Context, input TransactionInput) (isFraud bool, probability float64)
}

// Assessment is the outcome of analyzing one transaction
type Assessment struct {
	IsFraud    bool     `json:"is_fraud"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"risk_indicators"`
}
