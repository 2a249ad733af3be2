package analytics

import "github.com/aristath/wheelwise/internal/modules/trading"

// ComputeDashboardStats derives the headline numbers from a trade snapshot.
//
// TotalPremiums is gross premium over every trade regardless of status.
// TotalProfit sums realized contributions only (Closed/Expired). WinRate is
// wins over resolved trades, 0 when nothing has resolved yet - never NaN.
// ActivePositions counts Open trades; Rolled trades appear in neither count.
func ComputeDashboardStats(trades []trading.Trade) DashboardStats {
	var stats DashboardStats
	var resolved, wins int

	for _, t := range trades {
		stats.TotalPremiums += GrossPremium(t)
		stats.TotalProfit += RealizedProfit(t)

		if t.Status == trading.TradeStatusOpen {
			stats.ActivePositions++
		}

		if isResolved(t) {
			resolved++
			if IsWin(t) {
				wins++
			}
		}
	}

	if resolved > 0 {
		stats.WinRate = float64(wins) / float64(resolved) * 100
	}

	return stats
}
