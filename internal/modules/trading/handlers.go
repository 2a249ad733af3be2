package trading

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// TradingHandlers contains HTTP handlers for the trade log API
type TradingHandlers struct {
	tradeRepo *TradeRepository
	log       zerolog.Logger
}

// NewTradingHandlers creates a new trading handlers instance
func NewTradingHandlers(tradeRepo *TradeRepository, log zerolog.Logger) *TradingHandlers {
	return &TradingHandlers{
		tradeRepo: tradeRepo,
		log:       log.With().Str("handler", "trading").Logger(),
	}
}

// HandleListTrades returns all trades in insertion order
// GET /api/trades
func (h *TradingHandlers) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	var (
		trades []Trade
		err    error
	)

	if ticker := r.URL.Query().Get("ticker"); ticker != "" {
		trades, err = h.tradeRepo.ListByTicker(ticker)
	} else {
		trades, err = h.tradeRepo.ListAll()
	}

	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list trades")
		http.Error(w, "Failed to list trades", http.StatusInternalServerError)
		return
	}

	if trades == nil {
		trades = []Trade{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(trades) // Ignore encode error - already committed response
}

// HandleCreateTrade logs a new trade
// POST /api/trades
func (h *TradingHandlers) HandleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var trade Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// New trades always start Open unless the caller logs a historical state
	if trade.Status == "" {
		trade.Status = TradeStatusOpen
	}

	created, err := h.tradeRepo.Create(trade)
	if err != nil {
		h.log.Warn().Err(err).Str("ticker", trade.Ticker).Msg("Rejected trade")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandleUpdateTrade applies a partial patch to a trade (status transition,
// closing price, notes)
// PATCH /api/trades/{id}
func (h *TradingHandlers) HandleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update TradeUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if update.IsEmpty() {
		http.Error(w, "Update carries no fields", http.StatusBadRequest)
		return
	}

	updated, err := h.tradeRepo.Update(id, update)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Trade not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update trade")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// A Closed trade without a closing price contributes zero profit.
	// Not an error, but worth surfacing in the logs.
	if updated.Status == TradeStatusClosed && updated.ClosingPrice == nil {
		h.log.Warn().
			Str("id", id).
			Msg("Trade closed without a closing price; it will realize zero profit")
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

// HandleDeleteTrade removes a trade
// DELETE /api/trades/{id}
func (h *TradingHandlers) HandleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.tradeRepo.Delete(id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Trade not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete trade")
		http.Error(w, "Failed to delete trade", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
