package analytics

import (
	"sort"

	"github.com/aristath/wheelwise/internal/modules/trading"
)

// RankTickerPerformance aggregates realized profit per distinct ticker and
// returns the result sorted descending by profit. Ties keep the order in
// which the tickers were first encountered in the input.
func RankTickerPerformance(trades []trading.Trade) []TickerPerformance {
	profits := make(map[string]float64)
	var order []string

	for _, t := range trades {
		if _, seen := profits[t.Ticker]; !seen {
			order = append(order, t.Ticker)
		}
		profits[t.Ticker] += RealizedProfit(t)
	}

	ranking := make([]TickerPerformance, 0, len(order))
	for _, ticker := range order {
		ranking = append(ranking, TickerPerformance{Ticker: ticker, Profit: profits[ticker]})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Profit > ranking[j].Profit
	})

	return ranking
}
