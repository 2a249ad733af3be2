// Package analytics is the trade accounting engine: a set of pure functions
// that derive dashboard statistics, the cumulative-profit curve, per-ticker
// rankings and synthesized stock positions from a snapshot of the trade
// collection. Nothing here mutates its input or touches I/O, so every
// calculator can simply be re-run whenever the collection changes.
package analytics

import "github.com/aristath/wheelwise/internal/modules/trading"

// ContractMultiplier converts a per-share amount to a per-contract dollar
// amount: one option contract covers 100 shares.
const ContractMultiplier = 100

// RealizedProfit returns the realized profit contribution of a single trade.
//
//   - Closed: (premium - closingPrice) x contracts x 100. A Closed trade
//     without a closing price contributes zero; that is a data-integrity
//     condition the write path warns about, not an error here.
//   - Expired: the option expired worthless, the full premium is kept.
//   - Open, Assigned, Rolled: zero. An assignment's economic effect lives in
//     the position tracker, never here, so the premium is not double-counted.
func RealizedProfit(t trading.Trade) float64 {
	switch t.Status {
	case trading.TradeStatusClosed:
		if t.ClosingPrice == nil {
			return 0
		}
		return (t.Premium - *t.ClosingPrice) * float64(t.Contracts) * ContractMultiplier
	case trading.TradeStatusExpired:
		return t.Premium * float64(t.Contracts) * ContractMultiplier
	default:
		return 0
	}
}

// GrossPremium returns the premium ever collected on a trade, regardless of
// its status: premium x contracts x 100.
func GrossPremium(t trading.Trade) float64 {
	return t.Premium * float64(t.Contracts) * ContractMultiplier
}

// IsWin reports whether a trade counts as a win. Expired trades always win
// (full premium kept); Closed trades win only when bought back cheaper than
// sold - a buyback at exactly the premium is not a win. Every other status is
// still unresolved.
func IsWin(t trading.Trade) bool {
	switch t.Status {
	case trading.TradeStatusExpired:
		return true
	case trading.TradeStatusClosed:
		return t.ClosingPrice != nil && t.Premium > *t.ClosingPrice
	default:
		return false
	}
}

// isResolved reports whether a trade enters the win-rate denominator
func isResolved(t trading.Trade) bool {
	return t.Status == trading.TradeStatusClosed || t.Status == trading.TradeStatusExpired
}
