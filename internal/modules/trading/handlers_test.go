package trading

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T) (*TradingHandlers, *TradeRepository) {
	t.Helper()
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())
	return NewTradingHandlers(repo, zerolog.Nop()), repo
}

// withURLParam injects a chi route parameter for direct handler invocation
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleCreateTrade(t *testing.T) {
	handlers, _ := newTestHandlers(t)

	body, _ := json.Marshal(validTrade())
	req := httptest.NewRequest("POST", "/api/trades", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handlers.HandleCreateTrade(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created Trade
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "NVDA", created.Ticker)
	assert.Equal(t, TradeStatusOpen, created.Status)
}

func TestHandleCreateTrade_DefaultsToOpen(t *testing.T) {
	handlers, _ := newTestHandlers(t)

	trade := validTrade()
	trade.Status = ""
	body, _ := json.Marshal(trade)

	req := httptest.NewRequest("POST", "/api/trades", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handlers.HandleCreateTrade(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created Trade
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, TradeStatusOpen, created.Status)
}

func TestHandleCreateTrade_RejectsInvalid(t *testing.T) {
	handlers, _ := newTestHandlers(t)

	trade := validTrade()
	trade.StrikePrice = -1
	body, _ := json.Marshal(trade)

	req := httptest.NewRequest("POST", "/api/trades", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handlers.HandleCreateTrade(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListTrades(t *testing.T) {
	handlers, repo := newTestHandlers(t)

	_, err := repo.Create(validTrade())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/trades", nil)
	w := httptest.NewRecorder()
	handlers.HandleListTrades(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var trades []Trade
	require.NoError(t, json.NewDecoder(w.Body).Decode(&trades))
	assert.Len(t, trades, 1)
}

func TestHandleListTrades_EmptyIsArrayNotNull(t *testing.T) {
	handlers, _ := newTestHandlers(t)

	req := httptest.NewRequest("GET", "/api/trades", nil)
	w := httptest.NewRecorder()
	handlers.HandleListTrades(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHandleUpdateTrade_StatusTransition(t *testing.T) {
	handlers, repo := newTestHandlers(t)

	created, err := repo.Create(validTrade())
	require.NoError(t, err)

	body := []byte(`{"status":"Closed","closingPrice":1.25}`)
	req := httptest.NewRequest("PATCH", "/api/trades/"+created.ID, bytes.NewReader(body))
	req = withURLParam(req, "id", created.ID)
	w := httptest.NewRecorder()
	handlers.HandleUpdateTrade(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var updated Trade
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, TradeStatusClosed, updated.Status)
	require.NotNil(t, updated.ClosingPrice)
	assert.InDelta(t, 1.25, *updated.ClosingPrice, 1e-9)
}

func TestHandleUpdateTrade_EmptyPatchRejected(t *testing.T) {
	handlers, repo := newTestHandlers(t)

	created, err := repo.Create(validTrade())
	require.NoError(t, err)

	req := httptest.NewRequest("PATCH", "/api/trades/"+created.ID, bytes.NewReader([]byte(`{}`)))
	req = withURLParam(req, "id", created.ID)
	w := httptest.NewRecorder()
	handlers.HandleUpdateTrade(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateTrade_NotFound(t *testing.T) {
	handlers, _ := newTestHandlers(t)

	req := httptest.NewRequest("PATCH", "/api/trades/missing", bytes.NewReader([]byte(`{"status":"Expired"}`)))
	req = withURLParam(req, "id", "missing")
	w := httptest.NewRecorder()
	handlers.HandleUpdateTrade(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteTrade(t *testing.T) {
	handlers, repo := newTestHandlers(t)

	created, err := repo.Create(validTrade())
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", "/api/trades/"+created.ID, nil)
	req = withURLParam(req, "id", created.ID)
	w := httptest.NewRecorder()
	handlers.HandleDeleteTrade(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err = repo.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
