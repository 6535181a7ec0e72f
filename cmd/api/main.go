package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"aegis-fraud-platform/internal/application/dashboard"
	fraudapp "aegis-fraud-platform/internal/application/fraud"
	graphapp "aegis-fraud-platform/internal/application/graph"
	riskapp "aegis-fraud-platform/internal/application/risk"
	"aegis-fraud-platform/internal/domain/fraud"
	"aegis-fraud-platform/internal/domain/graph"
	"aegis-fraud-platform/internal/domain/risk"
	"aegis-fraud-platform/internal/domain/transaction"
	"aegis-fraud-platform/internal/infrastructure/cache/redis"
	"aegis-fraud-platform/internal/infrastructure/database/postgres"
	infragraph "aegis-fraud-platform/internal/infrastructure/graph"
	"aegis-fraud-platform/internal/infrastructure/http/router"
	"aegis-fraud-platform/internal/infrastructure/ml"
	"aegis-fraud-platform/internal/interfaces/http/handler"
	"aegis-fraud-platform/internal/pkg/config"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting fraud platform API",
		slog.String("version", version),
		slog.String("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
	)

	// Database connection. A failed connection drops the service into
	// standalone mode with in-memory stores.
	var (
		txRepo      transaction.Repository
		alertRepo   fraud.AlertRepository
		profileRepo risk.ProfileRepository
		graphRepo   graph.Repository
	)

	dbClient, err := postgres.NewClient(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Warn("database connection failed, running in standalone mode", slog.String("error", err.Error()))
		dbClient = nil
		txRepo = NewMockTransactionRepository()
		alertRepo = NewMockAlertRepository()
		profileRepo = NewMockProfileRepository()
		graphRepo = NewMockGraphRepository()
	} else {
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.Database.Host),
			slog.Int("port", cfg.Database.Port),
		)
		if err := dbClient.Migrate(); err != nil {
			logger.Error("schema migration failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		txRepo = postgres.NewTransactionRepository(dbClient)
		alertRepo = postgres.NewAlertRepository(dbClient)
		profileRepo = postgres.NewProfileRepository(dbClient)
		graphRepo = postgres.NewGraphRepository(dbClient)
	}

	// Redis connection. Without it the dashboard just skips caching.
	var metricsCache dashboard.MetricsCache
	redisClient, err := redis.NewClient(redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Warn("redis connection failed, dashboard caching disabled", slog.String("error", err.Error()))
		redisClient = nil
	} else {
		logger.Info("connected to Redis",
			slog.String("host", cfg.Redis.Host),
			slog.Int("port", cfg.Redis.Port),
		)
		metricsCache = redis.NewMetricsCache(redisClient, cfg.Cache.MetricsTTL)
	}

	// Classifier
	classifier := ml.NewClassifier(ml.NewFeatureExtractor(), cfg.ML.ModelPath, logger)
	classifier.SetThreshold(cfg.Fraud.DetectionThreshold)
	logger.Info("classifier ready", slog.String("model_version", classifier.ModelVersion()))

	// Domain services
	fraudService := fraud.NewService(txRepo, alertRepo, classifier, logger)
	fraudService.SetHighValueThreshold(cfg.Fraud.HighValueThreshold)

	riskService := risk.NewService(profileRepo, risk.NewScorer(), logger)
	riskService.SetHighRiskThreshold(cfg.Risk.HighRiskThreshold)

	graphService := graph.NewService(infragraph.NewAnalyzer(logger), graphRepo, logger)

	// Use cases
	analyzeUseCase := fraudapp.NewAnalyzeTransactionUseCase(fraudService)
	alertsUseCase := fraudapp.NewManageAlertsUseCase(fraudService)
	profileUseCase := riskapp.NewProfileCustomerUseCase(riskService)
	patternsUseCase := graphapp.NewAnalyzePatternsUseCase(graphService)
	metricsUseCase := dashboard.NewMetricsUseCase(txRepo, alertRepo, riskService, metricsCache, logger)

	// Handlers
	fraudHandler := handler.NewFraudHandler(analyzeUseCase, alertsUseCase)
	riskHandler := handler.NewRiskHandler(profileUseCase)
	graphHandler := handler.NewGraphHandler(patternsUseCase)
	dashboardHandler := handler.NewDashboardHandler(metricsUseCase)

	var dbHealthChecker handler.HealthChecker
	var redisHealthChecker handler.HealthChecker
	if dbClient != nil {
		dbHealthChecker = dbClient
	}
	if redisClient != nil {
		redisHealthChecker = redisClient
	}
	healthHandler := handler.NewHealthHandler(dbHealthChecker, redisHealthChecker, version)

	r := router.NewRouter(fraudHandler, riskHandler, graphHandler, dashboardHandler, healthHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	if dbClient != nil {
		dbClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// In-memory repositories for standalone mode (when DB is not available)

// MockTransactionRepository implements transaction.Repository for standalone mode
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*transaction.Transaction
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*transaction.Transaction),
	}
}

func (r *MockTransactionRepository) Upsert(ctx context.Context, tx *transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.transactions[tx.TransactionID]; ok {
		existing.FraudProbability = tx.FraudProbability
		existing.Status = tx.Status
		existing.UpdatedAt = tx.UpdatedAt
		return nil
	}
	r.transactions[tx.TransactionID] = tx
	return nil
}

func (r *MockTransactionRepository) Get(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if tx, ok := r.transactions[transactionID]; ok {
		return tx, nil
	}
	return nil, transaction.ErrTransactionNotFound
}

func (r *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.transactions)), nil
}

// MockAlertRepository implements fraud.AlertRepository for standalone mode
type MockAlertRepository struct {
	mu     sync.RWMutex
	alerts map[string]*fraud.FraudAlert
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{
		alerts: make(map[string]*fraud.FraudAlert),
	}
}

func (r *MockAlertRepository) Create(ctx context.Context, alert *fraud.FraudAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.TransactionID == alert.TransactionID {
			return fraud.ErrAlertExists
		}
	}
	r.alerts[alert.ID.String()] = alert
	return nil
}

func (r *MockAlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*fraud.FraudAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.alerts[id.String()]; ok {
		return a, nil
	}
	return nil, fraud.ErrAlertNotFound
}

func (r *MockAlertRepository) GetByTransactionID(ctx context.Context, transactionID string) (*fraud.FraudAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.alerts {
		if a.TransactionID == transactionID {
			return a, nil
		}
	}
	return nil, fraud.ErrAlertNotFound
}

func (r *MockAlertRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status fraud.AlertStatus) (*fraud.FraudAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[id.String()]
	if !ok {
		return nil, fraud.ErrAlertNotFound
	}
	if err := a.UpdateStatus(status); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *MockAlertRepository) ListRecent(ctx context.Context, limit int) ([]*fraud.FraudAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	results := make([]*fraud.FraudAlert, 0, len(r.alerts))
	for _, a := range r.alerts {
		results = append(results, a)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *MockAlertRepository) CountByStatus(ctx context.Context, statuses ...fraud.AlertStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(statuses) == 0 {
		return int64(len(r.alerts)), nil
	}
	var count int64
	for _, a := range r.alerts {
		for _, s := range statuses {
			if a.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

// MockProfileRepository implements risk.ProfileRepository for standalone mode
type MockProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*risk.RiskProfile
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[string]*risk.RiskProfile),
	}
}

func (r *MockProfileRepository) Upsert(ctx context.Context, profile *risk.RiskProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[profile.CustomerID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	r.profiles[profile.CustomerID] = profile
	return nil
}

func (r *MockProfileRepository) GetByCustomer(ctx context.Context, customerID string) (*risk.RiskProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.profiles[customerID]; ok {
		return p, nil
	}
	return nil, risk.ErrProfileNotFound
}

func (r *MockProfileRepository) List(ctx context.Context, minScore int) ([]*risk.RiskProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	results := make([]*risk.RiskProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if p.RiskScore >= minScore {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].RiskScore > results[j].RiskScore
	})
	return results, nil
}

func (r *MockProfileRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.profiles)), nil
}

// MockGraphRepository implements graph.Repository for standalone mode
type MockGraphRepository struct {
	mu    sync.RWMutex
	nodes map[string]*graph.Node
	edges map[string]graph.Edge
}

func NewMockGraphRepository() *MockGraphRepository {
	return &MockGraphRepository{
		nodes: make(map[string]*graph.Node),
		edges: make(map[string]graph.Edge),
	}
}

func (r *MockGraphRepository) UpsertNodes(ctx context.Context, nodes []*graph.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range nodes {
		r.nodes[n.NodeID] = n
	}
	return nil
}

func (r *MockGraphRepository) UpsertEdges(ctx context.Context, edges []graph.Edge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range edges {
		r.edges[e.From+"|"+e.To] = e
	}
	return nil
}

func (r *MockGraphRepository) ListNodes(ctx context.Context) ([]*graph.Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	results := make([]*graph.Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		results = append(results, n)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].NodeID < results[j].NodeID
	})
	return results, nil
}

func (r *MockGraphRepository) ListEdges(ctx context.Context) ([]graph.Edge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	results := make([]graph.Edge, 0, len(r.edges))
	for _, e := range r.edges {
		results = append(results, e)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].From != results[j].From {
			return results[i].From < results[j].From
		}
		return results[i].To < results[j].To
	})
	return results, nil
}
