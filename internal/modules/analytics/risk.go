package analytics

import (
	"github.com/aristath/wheelwise/internal/modules/trading"
	"github.com/aristath/wheelwise/pkg/formulas"
)

// ComputeRiskSummary describes the realized-profit history: the deepest
// peak-to-trough drop of the cumulative curve (in dollars) and the
// distribution of gross premium per trade.
func ComputeRiskSummary(trades []trading.Trade) RiskSummary {
	curve := BuildEquityCurve(trades)
	equity := make([]float64, 0, len(curve))
	for _, p := range curve {
		equity = append(equity, p.Profit)
	}

	premiums := make([]float64, 0, len(trades))
	for _, t := range trades {
		premiums = append(premiums, GrossPremium(t))
	}

	return RiskSummary{
		MaxDrawdown:   formulas.MaxDrawdown(equity),
		AvgPremium:    formulas.Mean(premiums),
		PremiumStdDev: formulas.StdDev(premiums),
	}
}
