package trading

import "database/sql"

// TradesSchema defines the trades table. Entry and expiry dates are stored as
// YYYY-MM-DD text; the implicit rowid keeps the insertion order that the
// portfolio accumulator depends on.
const TradesSchema = `
CREATE TABLE IF NOT EXISTS trades (
    id TEXT PRIMARY KEY,
    ticker TEXT NOT NULL,
    type TEXT NOT NULL,
    strike_price REAL NOT NULL,
    premium REAL NOT NULL,
    contracts INTEGER NOT NULL,
    entry_date TEXT NOT NULL,
    expiry_date TEXT NOT NULL,
    status TEXT NOT NULL,
    closing_price REAL,
    notes TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);
CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
CREATE INDEX IF NOT EXISTS idx_trades_entry_date ON trades(entry_date);
`

// InitSchema ensures the trades table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(TradesSchema)
	return err
}
