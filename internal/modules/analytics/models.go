package analytics

// DashboardStats are the headline numbers shown on the dashboard.
// Derived on demand from the trade collection, never persisted by the engine.
type DashboardStats struct {
	TotalProfit     float64 `json:"totalProfit"`
	WinRate         float64 `json:"winRate"`
	ActivePositions int     `json:"activePositions"`
	TotalPremiums   float64 `json:"totalPremiums"`
}

// EquityPoint is one sample on the cumulative-profit curve. Date is the
// trade's entry date rendered for display ("Jan 2").
type EquityPoint struct {
	Date   string  `json:"date"`
	Profit float64 `json:"profit"`
}

// TickerPerformance is the realized profit aggregated for one symbol
type TickerPerformance struct {
	Ticker string  `json:"ticker"`
	Profit float64 `json:"profit"`
}

// PortfolioPosition is a stock holding synthesized from assignment events.
// Shares is always a positive multiple of 100; closed-out tickers are never
// emitted.
type PortfolioPosition struct {
	Ticker                string  `json:"ticker"`
	Shares                int     `json:"shares"`
	AveragePrice          float64 `json:"averagePrice"`
	TotalPremiumCollected float64 `json:"totalPremiumCollected"`
	CurrentCostBasis      float64 `json:"currentCostBasis"`
}

// RiskSummary describes the shape of the realized-profit history
type RiskSummary struct {
	MaxDrawdown   float64 `json:"maxDrawdown"`
	AvgPremium    float64 `json:"avgPremium"`
	PremiumStdDev float64 `json:"premiumStdDev"`
}
