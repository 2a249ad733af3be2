package trading

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func TestTradeRepository_CreateAssignsIDAndCreatedAt(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())

	created, err := repo.Create(validTrade())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.CreatedAt)
	assert.Equal(t, "NVDA", created.Ticker)

	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, TradeStatusOpen, fetched.Status)
	assert.Nil(t, fetched.ClosingPrice)
}

func TestTradeRepository_CreateRejectsInvalid(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())

	bad := validTrade()
	bad.Contracts = 0

	_, err := repo.Create(bad)
	assert.Error(t, err)
}

func TestTradeRepository_ListAllKeepsInsertionOrder(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())

	// Entry dates deliberately out of order: the list contract is
	// insertion order, not chronology
	for i, date := range []string{"2025-03-01", "2025-01-01", "2025-02-01"} {
		trade := validTrade()
		trade.EntryDate = date
		trade.Notes = string(rune('a' + i))
		_, err := repo.Create(trade)
		require.NoError(t, err)
	}

	trades, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, "a", trades[0].Notes)
	assert.Equal(t, "b", trades[1].Notes)
	assert.Equal(t, "c", trades[2].Notes)
}

func TestTradeRepository_ListAllOrderSurvivesEqualTimestamps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTradeRepository(db, zerolog.Nop())

	// Two rows sharing one created_at, with ids chosen so that id order
	// disagrees with insert order
	insert := func(id string) {
		_, err := db.Exec(`INSERT INTO trades
			(id, ticker, type, strike_price, premium, contracts,
			 entry_date, expiry_date, status, created_at)
			VALUES (?, 'NVDA', 'Cash Secured Put', 850, 15.50, 1,
			 '2025-01-15', '2025-02-21', 'Open', '2025-01-15T10:00:00Z')`, id)
		require.NoError(t, err)
	}
	insert("zzz")
	insert("aaa")

	trades, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "zzz", trades[0].ID)
	assert.Equal(t, "aaa", trades[1].ID)
}

func TestTradeRepository_ListByTicker(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())

	nvda := validTrade()
	_, err := repo.Create(nvda)
	require.NoError(t, err)

	aapl := validTrade()
	aapl.Ticker = "AAPL"
	_, err = repo.Create(aapl)
	require.NoError(t, err)

	trades, err := repo.ListByTicker("nvda")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "NVDA", trades[0].Ticker)
}

func TestTradeRepository_UpdateAppliesPatch(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())

	created, err := repo.Create(validTrade())
	require.NoError(t, err)

	status := TradeStatusClosed
	price := 3.10
	updated, err := repo.Update(created.ID, TradeUpdate{Status: &status, ClosingPrice: &price})
	require.NoError(t, err)

	assert.Equal(t, TradeStatusClosed, updated.Status)
	require.NotNil(t, updated.ClosingPrice)
	assert.InDelta(t, 3.10, *updated.ClosingPrice, 1e-9)

	// Round-trips through the database
	fetched, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, TradeStatusClosed, fetched.Status)
	require.NotNil(t, fetched.ClosingPrice)
	assert.InDelta(t, 3.10, *fetched.ClosingPrice, 1e-9)
}

func TestTradeRepository_UpdateUnknownID(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())

	status := TradeStatusExpired
	_, err := repo.Update("nope", TradeUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTradeRepository_Delete(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())

	created, err := repo.Create(validTrade())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))

	_, err = repo.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(created.ID), ErrNotFound)
}

func TestTradeRepository_Counts(t *testing.T) {
	repo := NewTradeRepository(setupTestDB(t), zerolog.Nop())

	open := validTrade()
	_, err := repo.Create(open)
	require.NoError(t, err)

	expired := validTrade()
	expired.Status = TradeStatusExpired
	_, err = repo.Create(expired)
	require.NoError(t, err)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	openCount, err := repo.CountByStatus(TradeStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, 1, openCount)
}
