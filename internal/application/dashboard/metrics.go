package dashboard

import (
	"context"
	"log/slog"
	"time"

	"aegis-fraud-platform/internal/application/dto"
	"aegis-fraud-platform/internal/domain/fraud"
	"aegis-fraud-platform/internal/domain/risk"
	"aegis-fraud-platform/internal/domain/transaction"
)

// MetricsCache caches the rendered snapshot between requests. Get must
// return an error on miss.
type MetricsCache interface {
	Get(ctx context.Context, dest interface{}) error
	Set(ctx context.Context, value interface{}) error
}

// MetricsUseCase aggregates the operational dashboard snapshot from
// the stores, with a short-TTL cache in front.
type MetricsUseCase struct {
	transactions transaction.Repository
	alerts       fraud.AlertRepository
	riskService  *risk.Service
	cache        MetricsCache
	logger       *slog.Logger
}

// NewMetricsUseCase creates the use case; cache may be nil
func NewMetricsUseCase(
	transactions transaction.Repository,
	alerts fraud.AlertRepository,
	riskService *risk.Service,
	cache MetricsCache,
	logger *slog.Logger,
) *MetricsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsUseCase{
		transactions: transactions,
		alerts:       alerts,
		riskService:  riskService,
		cache:        cache,
		logger:       logger,
	}
}

// Execute returns the dashboard snapshot, serving the cached copy when
// one is fresh.
func (uc *MetricsUseCase) Execute(ctx context.Context) (*dto.DashboardMetrics, error) {
	if uc.cache != nil {
		var cached dto.DashboardMetrics
		if err := uc.cache.Get(ctx, &cached); err == nil {
			return &cached, nil
		}
	}

	metrics, err := uc.build(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, metrics); err != nil {
			// Stale cache is not worth failing the request over
			uc.logger.WarnContext(ctx, "failed to cache dashboard metrics", slog.String("error", err.Error()))
		}
	}
	return metrics, nil
}

func (uc *MetricsUseCase) build(ctx context.Context) (*dto.DashboardMetrics, error) {
	totalTx, err := uc.transactions.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAlerts, err := uc.alerts.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	activeAlerts, err := uc.alerts.CountByStatus(ctx, fraud.StatusPendingReview, fraud.StatusUnderInvestigation)
	if err != nil {
		return nil, err
	}
	blocked, err := uc.alerts.CountByStatus(ctx, fraud.StatusBlocked)
	if err != nil {
		return nil, err
	}

	highRisk, err := uc.riskService.HighRisk(ctx)
	if err != nil {
		return nil, err
	}
	dist, err := uc.riskService.ScoreDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardMetrics{
		TotalTransactions:   totalTx,
		TotalAlerts:         totalAlerts,
		ActiveAlerts:        activeAlerts,
		BlockedTransactions: blocked,
		HighRiskCustomers:   int64(len(highRisk)),
		RiskDistribution: dto.RiskDistribution{
			Critical: dist.Critical,
			High:     dist.High,
			Medium:   dist.Medium,
			Low:      dist.Low,
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}
