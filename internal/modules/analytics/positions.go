package analytics

import "github.com/aristath/wheelwise/internal/modules/trading"

// positionAccumulator is the per-ticker running state built while folding the
// trade collection. Shares may go negative mid-fold; the reset rule below
// snaps it back to zero.
type positionAccumulator struct {
	shares    int
	totalCost float64
	premiums  float64
}

// ComputePortfolioPositions synthesizes currently-held stock positions from
// assignment events.
//
// The fold runs over the collection in the order given - the repository's
// insertion order, not entry-date order. That ordering is a documented
// contract: re-ordering the input changes results for tickers with multiple
// assignment events.
//
// Every trade banks its gross premium for its ticker unconditionally. An
// assigned cash-secured put buys contracts x 100 shares at the strike; an
// assigned covered call sells the same amount, and when that empties (or
// overshoots) the position both shares and accumulated cost reset to zero -
// a deliberate non-proportional reset, the cost history is discarded.
//
// Only tickers ending with shares > 0 are emitted, in first-encountered
// order. AveragePrice is the weighted assignment strike; CurrentCostBasis is
// the break-even after netting all collected premium.
func ComputePortfolioPositions(trades []trading.Trade) []PortfolioPosition {
	book := make(map[string]*positionAccumulator)
	var order []string

	for _, t := range trades {
		acc, ok := book[t.Ticker]
		if !ok {
			acc = &positionAccumulator{}
			book[t.Ticker] = acc
			order = append(order, t.Ticker)
		}

		acc.premiums += GrossPremium(t)

		if t.Status != trading.TradeStatusAssigned {
			continue
		}

		switch t.Type {
		case trading.TradeTypeCashSecuredPut:
			acc.shares += t.Contracts * ContractMultiplier
			acc.totalCost += t.StrikePrice * float64(t.Contracts) * ContractMultiplier
		case trading.TradeTypeCoveredCall:
			acc.shares -= t.Contracts * ContractMultiplier
			if acc.shares <= 0 {
				acc.shares = 0
				acc.totalCost = 0
			}
		}
	}

	positions := make([]PortfolioPosition, 0, len(order))
	for _, ticker := range order {
		acc := book[ticker]
		if acc.shares <= 0 {
			continue
		}

		shares := float64(acc.shares)
		positions = append(positions, PortfolioPosition{
			Ticker:                ticker,
			Shares:                acc.shares,
			AveragePrice:          acc.totalCost / shares,
			TotalPremiumCollected: acc.premiums,
			CurrentCostBasis:      (acc.totalCost - acc.premiums) / shares,
		})
	}

	return positions
}
