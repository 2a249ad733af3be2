package formulas

// MaxDrawdown calculates the deepest peak-to-trough decline of a running
// series, in the series' own units. Unlike a price drawdown this is absolute
// rather than percentage-based, because a cumulative-profit curve may sit at
// or below zero where a ratio is meaningless.
//
// Returns 0 for flat, empty or strictly rising series.
func MaxDrawdown(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	maxDrawdown := 0.0
	peak := values[0]

	for _, v := range values {
		if v > peak {
			peak = v
		}
		if dd := peak - v; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}

	return maxDrawdown
}
