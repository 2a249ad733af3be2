package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/wheelwise/internal/modules/trading"
	"github.com/rs/zerolog"
)

// AnalyticsHandlers serves the derived dashboard and portfolio views. Each
// handler loads a fresh snapshot and runs one pure calculator over it.
type AnalyticsHandlers struct {
	tradeRepo *trading.TradeRepository
	log       zerolog.Logger
}

// NewAnalyticsHandlers creates a new analytics handlers instance
func NewAnalyticsHandlers(tradeRepo *trading.TradeRepository, log zerolog.Logger) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		tradeRepo: tradeRepo,
		log:       log.With().Str("handler", "analytics").Logger(),
	}
}

// HandleDashboardStats returns the headline statistics
// GET /api/dashboard/stats
func (h *AnalyticsHandlers) HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, ComputeDashboardStats(trades))
}

// HandleEquityCurve returns the cumulative realized-profit series
// GET /api/dashboard/equity
func (h *AnalyticsHandlers) HandleEquityCurve(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, BuildEquityCurve(trades))
}

// HandleTickerRanking returns per-ticker realized profit, best first
// GET /api/dashboard/tickers
func (h *AnalyticsHandlers) HandleTickerRanking(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, RankTickerPerformance(trades))
}

// HandleRiskSummary returns drawdown and premium distribution metrics
// GET /api/dashboard/risk
func (h *AnalyticsHandlers) HandleRiskSummary(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, ComputeRiskSummary(trades))
}

// HandlePortfolioPositions returns currently-held synthesized stock positions
// GET /api/portfolio/positions
func (h *AnalyticsHandlers) HandlePortfolioPositions(w http.ResponseWriter, r *http.Request) {
	trades, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, ComputePortfolioPositions(trades))
}

// snapshot loads the trade collection, writing a 500 on failure
func (h *AnalyticsHandlers) snapshot(w http.ResponseWriter) ([]trading.Trade, bool) {
	trades, err := h.tradeRepo.ListAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load trade snapshot")
		http.Error(w, "Failed to load trades", http.StatusInternalServerError)
		return nil, false
	}
	return trades, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v) // Ignore encode error - already committed response
}
