package advisor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/wheelwise/internal/modules/trading"
)

// AdvisorHandlers serves AI-generated guidance text
type AdvisorHandlers struct {
	service   *Service
	tradeRepo *trading.TradeRepository
	log       zerolog.Logger
}

// NewAdvisorHandlers creates a new advisor handlers instance
func NewAdvisorHandlers(service *Service, tradeRepo *trading.TradeRepository, log zerolog.Logger) *AdvisorHandlers {
	return &AdvisorHandlers{
		service:   service,
		tradeRepo: tradeRepo,
		log:       log.With().Str("handler", "advisor").Logger(),
	}
}

// insightResponse wraps the opaque advice text
type insightResponse struct {
	Insight string `json:"insight"`
}

// HandleAnalyzeTrades returns AI commentary on the whole trade log
// GET /api/insights
func (h *AdvisorHandlers) HandleAnalyzeTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.tradeRepo.ListAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load trades")
		http.Error(w, "Failed to load trades", http.StatusInternalServerError)
		return
	}

	insight, err := h.service.AnalyzeTrades(r.Context(), trades)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate analysis")
		http.Error(w, "AI advisor is unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(insightResponse{Insight: insight})
}

// HandleTickerInsight returns AI commentary on one symbol
// GET /api/insights/{ticker}
func (h *AdvisorHandlers) HandleTickerInsight(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if ticker == "" {
		http.Error(w, "Ticker is required", http.StatusBadRequest)
		return
	}

	insight, err := h.service.TickerInsight(r.Context(), ticker)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to generate ticker insight")
		http.Error(w, "AI advisor is unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(insightResponse{Insight: insight})
}
