package trading

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a trade id does not exist
var ErrNotFound = errors.New("trade not found")

// TradeRepository handles trade database operations
type TradeRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *sql.DB, log zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		db:  db,
		log: log.With().Str("repo", "trade").Logger(),
	}
}

// Create inserts a new trade record. A missing ID is assigned here and never
// reused; the caller gets the stored record back.
func (r *TradeRepository) Create(trade Trade) (Trade, error) {
	if err := trade.Validate(); err != nil {
		return Trade{}, fmt.Errorf("invalid trade: %w", err)
	}

	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	trade.CreatedAt = &now

	query := `
		INSERT INTO trades
		(id, ticker, type, strike_price, premium, contracts,
		 entry_date, expiry_date, status, closing_price, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		trade.ID,
		trade.Ticker,
		string(trade.Type),
		trade.StrikePrice,
		trade.Premium,
		trade.Contracts,
		trade.EntryDate,
		trade.ExpiryDate,
		string(trade.Status),
		nullFloat64Ptr(trade.ClosingPrice),
		nullString(trade.Notes),
		now.Format(time.RFC3339Nano),
	)

	if err != nil {
		return Trade{}, fmt.Errorf("failed to create trade: %w", err)
	}

	r.log.Info().
		Str("id", trade.ID).
		Str("ticker", trade.Ticker).
		Str("type", string(trade.Type)).
		Int("contracts", trade.Contracts).
		Msg("Trade created")

	return trade, nil
}

// GetByID retrieves a single trade
func (r *TradeRepository) GetByID(id string) (Trade, error) {
	row := r.db.QueryRow(selectColumns+" FROM trades WHERE id = ?", id)

	trade, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Trade{}, ErrNotFound
	}
	if err != nil {
		return Trade{}, fmt.Errorf("failed to get trade: %w", err)
	}

	return trade, nil
}

// ListAll retrieves every trade in insertion order. This ordering is a
// contract: the portfolio cost-basis accumulator folds trades in exactly the
// order this returns them. rowid is sqlite's monotonic insert sequence, so
// trades created within the same timestamp still come back in insert order.
func (r *TradeRepository) ListAll() ([]Trade, error) {
	rows, err := r.db.Query(selectColumns + " FROM trades ORDER BY rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// ListByTicker retrieves trades for one symbol, insertion order
func (r *TradeRepository) ListByTicker(ticker string) ([]Trade, error) {
	query := selectColumns + " FROM trades WHERE ticker = ? ORDER BY rowid ASC"

	rows, err := r.db.Query(query, strings.ToUpper(strings.TrimSpace(ticker)))
	if err != nil {
		return nil, fmt.Errorf("failed to list trades by ticker: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// Update applies a partial patch to a stored trade and returns the merged
// record. The row is replaced wholesale from the merged copy, keeping the
// merge semantics in one place (TradeUpdate.Apply).
func (r *TradeRepository) Update(id string, update TradeUpdate) (Trade, error) {
	if err := update.Validate(); err != nil {
		return Trade{}, fmt.Errorf("invalid update: %w", err)
	}

	current, err := r.GetByID(id)
	if err != nil {
		return Trade{}, err
	}

	updated := update.Apply(current)

	query := `
		UPDATE trades
		SET status = ?, closing_price = ?, notes = ?
		WHERE id = ?
	`

	_, err = r.db.Exec(query,
		string(updated.Status),
		nullFloat64Ptr(updated.ClosingPrice),
		nullString(updated.Notes),
		id,
	)
	if err != nil {
		return Trade{}, fmt.Errorf("failed to update trade: %w", err)
	}

	r.log.Info().
		Str("id", id).
		Str("status", string(updated.Status)).
		Msg("Trade updated")

	return updated, nil
}

// Delete removes a trade by id
func (r *TradeRepository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.log.Info().Str("id", id).Msg("Trade deleted")
	return nil
}

// CountByStatus returns the number of trades in a given status
func (r *TradeRepository) CountByStatus(status TradeStatus) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM trades WHERE status = ?", string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}

// Count returns the total number of trades
func (r *TradeRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM trades").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}

// Helpers

const selectColumns = `SELECT id, ticker, type, strike_price, premium, contracts,
	entry_date, expiry_date, status, closing_price, notes, created_at`

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(s scanner) (Trade, error) {
	var trade Trade
	var tradeType, status string
	var closingPrice sql.NullFloat64
	var notes, createdAt sql.NullString

	err := s.Scan(
		&trade.ID,
		&trade.Ticker,
		&tradeType,
		&trade.StrikePrice,
		&trade.Premium,
		&trade.Contracts,
		&trade.EntryDate,
		&trade.ExpiryDate,
		&status,
		&closingPrice,
		&notes,
		&createdAt,
	)
	if err != nil {
		return trade, err
	}

	trade.Type = TradeType(tradeType)
	trade.Status = TradeStatus(status)

	if closingPrice.Valid {
		trade.ClosingPrice = &closingPrice.Float64
	}
	if notes.Valid {
		trade.Notes = notes.String
	}
	if createdAt.Valid {
		if t, err := time.Parse(time.RFC3339Nano, createdAt.String); err == nil {
			trade.CreatedAt = &t
		}
	}

	return trade, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat64Ptr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
