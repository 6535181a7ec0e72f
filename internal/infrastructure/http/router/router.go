package router

import (
	"net/http"

	"aegis-fraud-platform/internal/interfaces/http/handler"
)

// Router holds all HTTP handlers
type Router struct {
	mux              *http.ServeMux
	fraudHandler     *handler.FraudHandler
	riskHandler      *handler.RiskHandler
	graphHandler     *handler.GraphHandler
	dashboardHandler *handler.DashboardHandler
	healthHandler    *handler.HealthHandler
}

// NewRouter creates a new router with all routes configured
func NewRouter(
	fraudHandler *handler.FraudHandler,
	riskHandler *handler.RiskHandler,
	graphHandler *handler.GraphHandler,
	dashboardHandler *handler.DashboardHandler,
	healthHandler *handler.HealthHandler,
) *Router {
	r := &Router{
		mux:              http.NewServeMux(),
		fraudHandler:     fraudHandler,
		riskHandler:      riskHandler,
		graphHandler:     graphHandler,
		dashboardHandler: dashboardHandler,
		healthHandler:    healthHandler,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Health endpoints
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	r.mux.HandleFunc("GET /ready", r.healthHandler.Ready)
	r.mux.HandleFunc("GET /live", r.healthHandler.Live)

	// Prometheus metrics
	r.mux.Handle("GET /metrics", handler.MetricsHandler())

	// Fraud analysis and alerts
	r.mux.HandleFunc("POST /api/v1/fraud/analyze", r.fraudHandler.AnalyzeTransaction)
	r.mux.HandleFunc("GET /api/v1/fraud/alerts", r.fraudHandler.ListAlerts)
	r.mux.HandleFunc("GET /api/v1/fraud/alerts/{id}", r.fraudHandler.GetAlert)
	r.mux.HandleFunc("PATCH /api/v1/fraud/alerts/{id}/status", r.fraudHandler.UpdateAlertStatus)

	// Customer risk profiles
	r.mux.HandleFunc("POST /api/v1/risk/score", r.riskHandler.ScoreCustomer)
	r.mux.HandleFunc("GET /api/v1/risk/profiles", r.riskHandler.ListProfiles)
	r.mux.HandleFunc("GET /api/v1/risk/profiles/{customerID}", r.riskHandler.GetProfile)
	r.mux.HandleFunc("GET /api/v1/risk/distribution", r.riskHandler.GetDistribution)

	// Relationship graph
	r.mux.HandleFunc("POST /api/v1/graph/analyze", r.graphHandler.AnalyzePatterns)
	r.mux.HandleFunc("GET /api/v1/graph/data", r.graphHandler.GetGraphData)

	// Dashboard
	r.mux.HandleFunc("GET /api/v1/dashboard/metrics", r.dashboardHandler.GetMetrics)
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Add CORS headers
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if req.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.mux.ServeHTTP(w, req)
}

// Handler returns the http.Handler
func (r *Router) Handler() http.Handler {
	return r
}
