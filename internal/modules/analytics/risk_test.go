package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/wheelwise/internal/modules/trading"
)

func TestComputeRiskSummary_Empty(t *testing.T) {
	assert.Equal(t, RiskSummary{}, ComputeRiskSummary(nil))
}

func TestComputeRiskSummary_DrawdownFromRealizedLoss(t *testing.T) {
	trades := []trading.Trade{
		withEntryDate(newTrade("A", trading.TradeTypeCashSecuredPut, trading.TradeStatusExpired, 100, 5.00, 1), "2025-01-01"),
		// Peak at 500, then a 300 loss
		withEntryDate(withClosingPrice(
			newTrade("B", trading.TradeTypeCoveredCall, trading.TradeStatusClosed, 100, 1.00, 1), 4.00,
		), "2025-01-10"),
	}

	summary := ComputeRiskSummary(trades)

	assert.InDelta(t, 300.00, summary.MaxDrawdown, 1e-9)
	// Premiums: 500 and 100
	assert.InDelta(t, 300.00, summary.AvgPremium, 1e-9)
	assert.Greater(t, summary.PremiumStdDev, 0.0)
}

func TestComputeRiskSummary_RisingCurveHasNoDrawdown(t *testing.T) {
	trades := []trading.Trade{
		withEntryDate(newTrade("A", trading.TradeTypeCashSecuredPut, trading.TradeStatusExpired, 100, 1.00, 1), "2025-01-01"),
		withEntryDate(newTrade("B", trading.TradeTypeCashSecuredPut, trading.TradeStatusExpired, 100, 2.00, 1), "2025-01-08"),
	}

	assert.InDelta(t, 0, ComputeRiskSummary(trades).MaxDrawdown, 1e-9)
}
