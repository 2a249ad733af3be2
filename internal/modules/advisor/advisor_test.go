package advisor

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/wheelwise/internal/modules/trading"
)

func disabledService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(context.Background(), "", "gemini-2.5-flash", zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestNew_EmptyKeyDisablesService(t *testing.T) {
	svc := disabledService(t)
	assert.False(t, svc.Enabled())
}

func TestAnalyzeTrades_NoTrades(t *testing.T) {
	svc := disabledService(t)

	insight, err := svc.AnalyzeTrades(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Add some trades to get AI analysis.", insight)
}

func TestAnalyzeTrades_Disabled(t *testing.T) {
	svc := disabledService(t)

	trades := []trading.Trade{{
		Ticker:      "NVDA",
		Type:        trading.TradeTypeCashSecuredPut,
		StrikePrice: 850,
		Premium:     15.50,
		Contracts:   1,
		Status:      trading.TradeStatusOpen,
	}}

	insight, err := svc.AnalyzeTrades(context.Background(), trades)
	require.NoError(t, err)
	assert.Contains(t, insight, "not configured")
}

func TestTickerInsight_Disabled(t *testing.T) {
	svc := disabledService(t)

	insight, err := svc.TickerInsight(context.Background(), "nvda")
	require.NoError(t, err)
	assert.Contains(t, insight, "not configured")
}

func TestTradeSummary(t *testing.T) {
	trades := []trading.Trade{
		{
			Ticker:      "NVDA",
			Type:        trading.TradeTypeCashSecuredPut,
			StrikePrice: 850,
			Premium:     15.50,
			Status:      trading.TradeStatusAssigned,
		},
		{
			Ticker:      "AAPL",
			Type:        trading.TradeTypeCoveredCall,
			StrikePrice: 185,
			Premium:     2.15,
			Status:      trading.TradeStatusClosed,
		},
	}

	summary := tradeSummary(trades)
	assert.Equal(t,
		"NVDA: Cash Secured Put @ $850, Premium: $15.5, Status: Assigned\n"+
			"AAPL: Covered Call @ $185, Premium: $2.15, Status: Closed",
		summary)
}
