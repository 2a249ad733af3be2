package analytics

import (
	"github.com/aristath/wheelwise/internal/modules/trading"
)

// newTrade builds a minimal well-formed trade for engine tests
func newTrade(ticker string, typ trading.TradeType, status trading.TradeStatus, strike, premium float64, contracts int) trading.Trade {
	return trading.Trade{
		ID:          ticker + "-" + string(status),
		Ticker:      ticker,
		Type:        typ,
		StrikePrice: strike,
		Premium:     premium,
		Contracts:   contracts,
		EntryDate:   "2025-01-15",
		ExpiryDate:  "2025-02-21",
		Status:      status,
	}
}

func withEntryDate(t trading.Trade, date string) trading.Trade {
	t.EntryDate = date
	return t
}

func withClosingPrice(t trading.Trade, price float64) trading.Trade {
	t.ClosingPrice = &price
	return t
}
