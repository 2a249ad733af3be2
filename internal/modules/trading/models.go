package trading

import (
	"fmt"
	"strings"
	"time"
)

// TradeType represents the option strategy leg being logged
type TradeType string

const (
	TradeTypeCashSecuredPut  TradeType = "Cash Secured Put"
	TradeTypeCoveredCall     TradeType = "Covered Call"
	TradeTypeStockAdjustment TradeType = "Stock Adjustment"
)

// IsValid checks if the trade type is valid
func (tt TradeType) IsValid() bool {
	switch tt {
	case TradeTypeCashSecuredPut, TradeTypeCoveredCall, TradeTypeStockAdjustment:
		return true
	}
	return false
}

// TradeStatus represents the lifecycle state of a trade.
//
// Open is the initial state; Closed, Assigned, Expired and Rolled are all
// terminal here - nothing ever re-opens a trade. Transitions are triggered by
// the user (PATCH), the accounting engine only interprets the resulting state.
// Rolled trades currently have no economic effect at all: they are excluded
// from realized profit, win rate and the active-position count. Known gap.
type TradeStatus string

const (
	TradeStatusOpen     TradeStatus = "Open"
	TradeStatusClosed   TradeStatus = "Closed"
	TradeStatusAssigned TradeStatus = "Assigned"
	TradeStatusExpired  TradeStatus = "Expired"
	TradeStatusRolled   TradeStatus = "Rolled"
)

// IsValid checks if the trade status is valid
func (ts TradeStatus) IsValid() bool {
	switch ts {
	case TradeStatusOpen, TradeStatusClosed, TradeStatusAssigned, TradeStatusExpired, TradeStatusRolled:
		return true
	}
	return false
}

// IsTerminal returns true once the trade has left the Open state
func (ts TradeStatus) IsTerminal() bool {
	return ts.IsValid() && ts != TradeStatusOpen
}

// DateFormat is the calendar-date layout used for entry and expiry dates.
// Dates are stored and compared as plain YYYY-MM-DD strings, which sort
// lexicographically in chronological order.
const DateFormat = "2006-01-02"

// Trade is an immutable-once-created record of one options transaction leg.
// Premium is the net credit per share; one contract covers 100 shares.
// ClosingPrice is only present after a Closed transition supplied it.
type Trade struct {
	ID           string      `json:"id"`
	Ticker       string      `json:"ticker"`
	Type         TradeType   `json:"type"`
	StrikePrice  float64     `json:"strikePrice"`
	Premium      float64     `json:"premium"`
	Contracts    int         `json:"contracts"`
	EntryDate    string      `json:"entryDate"`
	ExpiryDate   string      `json:"expiryDate"`
	Status       TradeStatus `json:"status"`
	ClosingPrice *float64    `json:"closingPrice,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    *time.Time  `json:"createdAt,omitempty"`
}

// Validate validates trade data and normalizes the ticker symbol.
// This is a boundary check for the creation path; the accounting engine
// assumes well-formed records and never re-validates.
func (t *Trade) Validate() error {
	if strings.TrimSpace(t.Ticker) == "" {
		return fmt.Errorf("ticker cannot be empty")
	}

	if !t.Type.IsValid() {
		return fmt.Errorf("invalid trade type: %s", t.Type)
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("invalid trade status: %s", t.Status)
	}

	if t.StrikePrice <= 0 {
		return fmt.Errorf("strike price must be positive")
	}

	if t.Contracts < 1 {
		return fmt.Errorf("contracts must be at least 1")
	}

	if _, err := time.Parse(DateFormat, t.EntryDate); err != nil {
		return fmt.Errorf("invalid entry date %q: %w", t.EntryDate, err)
	}

	if _, err := time.Parse(DateFormat, t.ExpiryDate); err != nil {
		return fmt.Errorf("invalid expiry date %q: %w", t.ExpiryDate, err)
	}

	// Normalize ticker
	t.Ticker = strings.ToUpper(strings.TrimSpace(t.Ticker))

	return nil
}

// TradeUpdate is a typed partial patch for a trade. Only non-nil fields are
// applied; the merge produces a new record, the stored trade is never mutated
// in place.
type TradeUpdate struct {
	Status       *TradeStatus `json:"status,omitempty"`
	ClosingPrice *float64     `json:"closingPrice,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
}

// IsEmpty returns true when the patch carries no fields
func (u TradeUpdate) IsEmpty() bool {
	return u.Status == nil && u.ClosingPrice == nil && u.Notes == nil
}

// Validate checks the patch fields that are present
func (u TradeUpdate) Validate() error {
	if u.Status != nil && !u.Status.IsValid() {
		return fmt.Errorf("invalid trade status: %s", *u.Status)
	}
	return nil
}

// Apply merges the patch onto a trade and returns the updated copy
func (u TradeUpdate) Apply(t Trade) Trade {
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.ClosingPrice != nil {
		price := *u.ClosingPrice
		t.ClosingPrice = &price
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	return t
}
