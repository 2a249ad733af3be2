package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/wheelwise/internal/config"
	"github.com/aristath/wheelwise/internal/database"
	"github.com/aristath/wheelwise/internal/modules/advisor"
	"github.com/aristath/wheelwise/internal/modules/analytics"
	"github.com/aristath/wheelwise/internal/modules/auth"
	"github.com/aristath/wheelwise/internal/modules/trading"
)

// Config holds server configuration
type Config struct {
	Port    int
	Log     zerolog.Logger
	DB      *database.DB
	Config  *config.Config
	Advisor *advisor.Service
	DevMode bool
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	db      *database.DB
	cfg     *config.Config
	started time.Time
}

// New creates a new HTTP server with all module handlers wired up
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		db:      cfg.DB,
		cfg:     cfg.Config,
		started: time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	conn := s.db.Conn()

	tradeRepo := trading.NewTradeRepository(conn, cfg.Log)
	userRepo := auth.NewUserRepository(conn, cfg.Log)

	sessionTTL := time.Duration(s.cfg.SessionTTLHours) * time.Hour
	authHandlers := auth.NewAuthHandlers(userRepo, sessionTTL, cfg.Log)
	tradingHandlers := trading.NewTradingHandlers(tradeRepo, cfg.Log)
	analyticsHandlers := analytics.NewAnalyticsHandlers(tradeRepo, cfg.Log)
	advisorHandlers := advisor.NewAdvisorHandlers(cfg.Advisor, tradeRepo, cfg.Log)

	// Health check
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Public
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandlers.HandleRegister)
			r.Post("/login", authHandlers.HandleLogin)
			r.Post("/logout", authHandlers.HandleLogout)
		})

		// Everything else requires a session
		r.Group(func(r chi.Router) {
			r.Use(authHandlers.RequireAuth)

			r.Route("/trades", func(r chi.Router) {
				r.Get("/", tradingHandlers.HandleListTrades)
				r.Post("/", tradingHandlers.HandleCreateTrade)
				r.Patch("/{id}", tradingHandlers.HandleUpdateTrade)
				r.Delete("/{id}", tradingHandlers.HandleDeleteTrade)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", analyticsHandlers.HandleDashboardStats)
				r.Get("/equity", analyticsHandlers.HandleEquityCurve)
				r.Get("/tickers", analyticsHandlers.HandleTickerRanking)
				r.Get("/risk", analyticsHandlers.HandleRiskSummary)
			})

			r.Get("/portfolio/positions", analyticsHandlers.HandlePortfolioPositions)

			r.Route("/insights", func(r chi.Router) {
				r.Get("/", advisorHandlers.HandleAnalyzeTrades)
				r.Get("/{ticker}", advisorHandlers.HandleTickerInsight)
			})

			r.Get("/system/status", s.handleSystemStatus)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
