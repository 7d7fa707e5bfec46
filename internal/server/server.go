package server

import (
	"log/slog"
	"net/http"

	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/i18n"
	"sales-dashboard/internal/services"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	apiHandlers  *handlers.APIHandlers
	sseHandlers  *handlers.SSEHandlers
	pageHandlers *handlers.PageHandlers
}

func NewServer(data *services.Dataset, translator *i18n.Translator, logger *slog.Logger) *Server {
	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		apiHandlers:  handlers.NewAPIHandlers(data, logger),
		sseHandlers:  handlers.NewSSEHandlers(data, translator, logger),
		pageHandlers: handlers.NewPageHandlers(data, translator, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Dashboard pages
	s.mux.HandleFunc("GET /{$}", s.pageHandlers.HandleToyStore)
	s.mux.HandleFunc("GET /transportation", s.pageHandlers.HandleTransportation)
	s.mux.HandleFunc("GET /predict", s.pageHandlers.HandlePredict)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/kpis", s.apiHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /api/sales-over-time", s.apiHandlers.HandleSalesOverTime)
	s.mux.HandleFunc("GET /api/top-customers", s.apiHandlers.HandleTopCustomers)
	s.mux.HandleFunc("GET /api/top-products", s.apiHandlers.HandleTopProducts)
	s.mux.HandleFunc("GET /api/product-line-totals", s.apiHandlers.HandleProductLineTotals)
	s.mux.HandleFunc("GET /api/filters", s.apiHandlers.HandleFilterOptions)
	s.mux.HandleFunc("GET /api/model", s.apiHandlers.HandleModel)
	s.mux.HandleFunc("GET /api/model/predict", s.apiHandlers.HandleModelPredict)
	s.mux.HandleFunc("GET /api/export.csv", s.apiHandlers.HandleExportCSV)
	s.mux.HandleFunc("GET /api/export.xlsx", s.apiHandlers.HandleExportXLSX)
	s.mux.HandleFunc("POST /api/feedback", s.apiHandlers.HandleFeedback)
	s.mux.HandleFunc("GET /plots/model.png", s.apiHandlers.HandleModelPlot)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /sse/predict", s.sseHandlers.HandlePredict)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
