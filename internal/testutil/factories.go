package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
)

// InstrumentBuilder provides a fluent interface for creating test instruments.
//
// Example usage:
//
//	// Simple creation with defaults
//	instrument := testutil.NewInstrument().Build(t, db)
//
//	// Customized instrument
//	instrument := testutil.NewInstrument().
//	    WithSymbol("BTC").
//	    WithType("crypto").
//	    Build(t, db)
type InstrumentBuilder struct {
	ID             string
	Symbol         string
	Name           string
	InstrumentType string
	Currency       string
}

// NewInstrument creates an InstrumentBuilder with sensible defaults.
func NewInstrument() *InstrumentBuilder {
	return &InstrumentBuilder{
		ID:             MakeID(),
		Symbol:         MakeSymbol("TEST"),
		Name:           MakeInstrumentName("Test Instrument"),
		InstrumentType: model.InstrumentTypeStock,
		Currency:       "USD",
	}
}

// WithID sets a custom ID.
func (b *InstrumentBuilder) WithID(id string) *InstrumentBuilder {
	b.ID = id
	return b
}

// WithSymbol sets a custom symbol.
func (b *InstrumentBuilder) WithSymbol(symbol string) *InstrumentBuilder {
	b.Symbol = symbol
	return b
}

// WithName sets a custom name.
func (b *InstrumentBuilder) WithName(name string) *InstrumentBuilder {
	b.Name = name
	return b
}

// WithType sets the instrument type (stock, etf, crypto).
func (b *InstrumentBuilder) WithType(instrumentType string) *InstrumentBuilder {
	b.InstrumentType = instrumentType
	return b
}

// WithCurrency sets a custom currency.
func (b *InstrumentBuilder) WithCurrency(currency string) *InstrumentBuilder {
	b.Currency = currency
	return b
}

// Build creates the instrument in the database and returns it.
func (b *InstrumentBuilder) Build(t *testing.T, db *sql.DB) model.Instrument {
	t.Helper()

	createdAt := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO instrument (id, symbol, name, instrument_type, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Symbol, b.Name, b.InstrumentType, b.Currency, createdAt.Format(time.DateTime))
	if err != nil {
		t.Fatalf("Failed to create test instrument: %v", err)
	}

	return model.Instrument{
		ID:             b.ID,
		Symbol:         b.Symbol,
		Name:           b.Name,
		InstrumentType: b.InstrumentType,
		Currency:       b.Currency,
		CreatedAt:      createdAt,
	}
}

// CreateInstrument creates an instrument with the given symbol and type.
//
// Example usage:
//
//	instrument := testutil.CreateInstrument(t, db, "AAPL", "stock")
func CreateInstrument(t *testing.T, db *sql.DB, symbol, instrumentType string) model.Instrument {
	t.Helper()
	return NewInstrument().WithSymbol(symbol).WithType(instrumentType).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating test transactions.
// Builders insert rows directly and bypass the ledger integrity check, so
// tests can also construct ledgers the service would refuse.
//
// Example usage:
//
//	testutil.NewTransaction(instrument.ID).
//	    Buy("10", "100").
//	    WithCommission("5").
//	    OnDate(testutil.Day(1)).
//	    Build(t, db)
type TransactionBuilder struct {
	InstrumentID string
	Type         string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Commission   decimal.Decimal
	Date         time.Time
}

// NewTransaction creates a TransactionBuilder for a buy of 1 unit at 100 on Day(1).
func NewTransaction(instrumentID string) *TransactionBuilder {
	return &TransactionBuilder{
		InstrumentID: instrumentID,
		Type:         "buy",
		Quantity:     decimal.NewFromInt(1),
		Price:        decimal.NewFromInt(100),
		Commission:   decimal.Zero,
		Date:         Day(1),
	}
}

// Buy sets the transaction to a buy of quantity units at price.
func (b *TransactionBuilder) Buy(quantity, price string) *TransactionBuilder {
	b.Type = "buy"
	b.Quantity = decimal.RequireFromString(quantity)
	b.Price = decimal.RequireFromString(price)
	return b
}

// Sell sets the transaction to a sell of quantity units at price.
func (b *TransactionBuilder) Sell(quantity, price string) *TransactionBuilder {
	b.Type = "sell"
	b.Quantity = decimal.RequireFromString(quantity)
	b.Price = decimal.RequireFromString(price)
	return b
}

// WithCommission sets the commission.
func (b *TransactionBuilder) WithCommission(commission string) *TransactionBuilder {
	b.Commission = decimal.RequireFromString(commission)
	return b
}

// OnDate sets the transaction date.
func (b *TransactionBuilder) OnDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// Build creates the transaction in the database and returns it with its generated ID.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (instrument_id, type, quantity, price, commission, date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query,
		b.InstrumentID,
		b.Type,
		b.Quantity.String(),
		b.Price.String(),
		b.Commission.String(),
		b.Date.Format(time.DateOnly),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read test transaction id: %v", err)
	}

	return model.Transaction{
		ID:           id,
		InstrumentID: b.InstrumentID,
		Type:         b.Type,
		Quantity:     b.Quantity,
		Price:        b.Price,
		Commission:   b.Commission,
		Date:         b.Date,
	}
}

// Day returns the n-th day of January 2024 (UTC), for readable test ledgers.
func Day(n int) time.Time {
	return time.Date(2024, time.January, n, 0, 0, 0, 0, time.UTC)
}
