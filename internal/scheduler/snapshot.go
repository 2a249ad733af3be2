package scheduler

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/wheelwise/internal/modules/analytics"
	"github.com/aristath/wheelwise/internal/modules/trading"
)

// SnapshotSchema defines the dashboard history table. One row per run; the
// engine itself never persists anything, this is the surrounding layer
// recording its output over time.
const SnapshotSchema = `
CREATE TABLE IF NOT EXISTS stats_snapshots (
    id INTEGER PRIMARY KEY,
    taken_at TEXT NOT NULL,
    total_profit REAL NOT NULL,
    win_rate REAL NOT NULL,
    active_positions INTEGER NOT NULL,
    total_premiums REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stats_snapshots_taken_at ON stats_snapshots(taken_at);
`

// InitSnapshotSchema ensures the snapshot table exists
func InitSnapshotSchema(db *sql.DB) error {
	_, err := db.Exec(SnapshotSchema)
	return err
}

// StatsSnapshotJob recomputes the dashboard statistics from the full trade
// collection and appends them to the stats_snapshots table. Recomputation is
// idempotent, so a missed or doubled run only affects history granularity.
type StatsSnapshotJob struct {
	db        *sql.DB
	tradeRepo *trading.TradeRepository
	log       zerolog.Logger
}

// NewStatsSnapshotJob creates a new stats snapshot job
func NewStatsSnapshotJob(db *sql.DB, tradeRepo *trading.TradeRepository, log zerolog.Logger) *StatsSnapshotJob {
	return &StatsSnapshotJob{
		db:        db,
		tradeRepo: tradeRepo,
		log:       log.With().Str("job", "stats_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *StatsSnapshotJob) Name() string {
	return "stats_snapshot"
}

// Run takes one snapshot
func (j *StatsSnapshotJob) Run() error {
	trades, err := j.tradeRepo.ListAll()
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}

	stats := analytics.ComputeDashboardStats(trades)

	_, err = j.db.Exec(
		`INSERT INTO stats_snapshots
		 (taken_at, total_profit, win_rate, active_positions, total_premiums)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		stats.TotalProfit,
		stats.WinRate,
		stats.ActivePositions,
		stats.TotalPremiums,
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	j.log.Info().
		Float64("total_profit", stats.TotalProfit).
		Int("active_positions", stats.ActivePositions).
		Msg("Dashboard stats snapshot taken")

	return nil
}
