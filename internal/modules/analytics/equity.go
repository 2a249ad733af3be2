package analytics

import (
	"sort"
	"time"

	"github.com/aristath/wheelwise/internal/modules/trading"
)

// displayDateFormat renders curve labels the way the dashboard charts them
const displayDateFormat = "Jan 2"

// BuildEquityCurve produces the cumulative realized-profit series: one point
// per trade, ordered by entry date ascending with a stable sort so same-day
// trades keep their original relative order. Unresolved trades contribute
// zero and hold the curve flat, but still emit a point. The input slice is
// left untouched.
func BuildEquityCurve(trades []trading.Trade) []EquityPoint {
	sorted := make([]trading.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		// YYYY-MM-DD strings compare chronologically
		return sorted[i].EntryDate < sorted[j].EntryDate
	})

	curve := make([]EquityPoint, 0, len(sorted))
	running := 0.0
	for _, t := range sorted {
		running += RealizedProfit(t)
		curve = append(curve, EquityPoint{
			Date:   displayDate(t.EntryDate),
			Profit: running,
		})
	}

	return curve
}

// displayDate converts a YYYY-MM-DD date to the chart label format, falling
// back to the raw value if it does not parse
func displayDate(date string) string {
	d, err := time.Parse(trading.DateFormat, date)
	if err != nil {
		return date
	}
	return d.Format(displayDateFormat)
}
