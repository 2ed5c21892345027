package server

import (
	"log/slog"
	"net/http"

	"vgsales-dashboard/internal/dataset"
	"vgsales-dashboard/internal/handlers"
)

type Server struct {
	store       *dataset.Store
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(store *dataset.Store, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		store:       store,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(store, logger),
		sseHandlers: handlers.NewSSEHandlers(store, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints; all accept the filter selection as query params
	s.mux.HandleFunc("GET /api/options", s.apiHandlers.HandleOptions)
	s.mux.HandleFunc("GET /api/kpis", s.apiHandlers.HandleKpis)
	s.mux.HandleFunc("GET /api/market-kpis", s.apiHandlers.HandleMarketKpis)
	s.mux.HandleFunc("GET /api/genre-sales", s.apiHandlers.HandleGenreSales)
	s.mux.HandleFunc("GET /api/top-genres", s.apiHandlers.HandleTopGenres)
	s.mux.HandleFunc("GET /api/yearly-sales", s.apiHandlers.HandleYearlySales)
	s.mux.HandleFunc("GET /api/top-platforms", s.apiHandlers.HandleTopPlatforms)
	s.mux.HandleFunc("GET /api/regional-totals", s.apiHandlers.HandleRegionalTotals)
	s.mux.HandleFunc("GET /api/region-shares", s.apiHandlers.HandleRegionShares)
	s.mux.HandleFunc("GET /api/regional-yearly", s.apiHandlers.HandleRegionalYearly)
	s.mux.HandleFunc("GET /api/top-publishers", s.apiHandlers.HandleTopPublishers)
	s.mux.HandleFunc("GET /api/platform-performance", s.apiHandlers.HandlePlatformPerformance)
	s.mux.HandleFunc("GET /api/publisher-platform-matrix", s.apiHandlers.HandlePublisherPlatformMatrix)

	// Datastar SSE endpoints, one per dashboard page
	s.mux.HandleFunc("GET /sse/overview", s.sseHandlers.HandleOverview)
	s.mux.HandleFunc("GET /sse/regional", s.sseHandlers.HandleRegional)
	s.mux.HandleFunc("GET /sse/market", s.sseHandlers.HandleMarket)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
