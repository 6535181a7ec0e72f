package fraud

import (
	"context"
	"errors"

	"aegis-fraud-platform/internal/application/dto"
	"aegis-fraud-platform/internal/domain/fraud"
)

// AnalyzeTransactionUseCase runs fraud analysis and raises an alert
// when the transaction is classified as fraudulent.
type AnalyzeTransactionUseCase struct {
	service *fraud.Service
}

// NewAnalyzeTransactionUseCase creates the use case
func NewAnalyzeTransactionUseCase(service *fraud.Service) *AnalyzeTransactionUseCase {
	return &AnalyzeTransactionUseCase{service: service}
}

// Execute analyzes the transaction. Fraudulent transactions also get
// an alert; if one already exists for the transaction the existing
// alert is returned instead of a duplicate.
func (uc *AnalyzeTransactionUseCase) Execute(ctx context.Context, req dto.AnalyzeTransactionRequest) (*dto.AnalyzeTransactionResponse, error) {
	input := req.ToInput()

	assessment, err := uc.service.Analyze(ctx, input)
	if err != nil {
		return nil, err
	}
	transactionsAnalyzed.Inc()

	resp := &dto.AnalyzeTransactionResponse{
		IsFraud:        assessment.IsFraud,
		Confidence:     assessment.Confidence,
		RiskIndicators: assessment.Indicators,
	}
	if resp.RiskIndicators == nil {
		resp.RiskIndicators = []string{}
	}

	if !assessment.IsFraud {
		return resp, nil
	}
	fraudsDetected.Inc()

	alert, err := uc.service.CreateAlert(ctx, input, assessment)
	if err != nil {
		if errors.Is(err, fraud.ErrAlertExists) {
			duplicateAlerts.Inc()
			existing, lookupErr := uc.service.GetAlertByTransaction(ctx, input.TransactionID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			resp.Alert = dto.NewFraudAlertResponse(existing)
			return resp, nil
		}
		return nil, err
	}
	alertsCreated.Inc()

	resp.Alert = dto.NewFraudAlertResponse(alert)
	return resp, nil
}
