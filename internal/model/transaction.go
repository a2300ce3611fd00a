package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/fifo"
)

// Transaction represents a stored buy or sell of an instrument.
type Transaction struct {
	ID           int64           `json:"id"`
	InstrumentID string          `json:"instrument_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Commission   decimal.Decimal `json:"commission"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at,omitzero"`
}

// Ledger converts the stored row into the engine's transaction type.
// The conversion re-validates the row, so corrupt data is reported rather
// than silently matched.
func (t Transaction) Ledger() (fifo.Transaction, error) {
	kind, err := fifo.ParseKind(t.Type)
	if err != nil {
		return fifo.Transaction{}, fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	return fifo.NewTransaction(t.ID, kind, t.Quantity, t.Price, t.Commission, t.Date)
}

// Ledger converts a list of stored rows into engine transactions.
func Ledger(txs []Transaction) ([]fifo.Transaction, error) {
	out := make([]fifo.Transaction, 0, len(txs))
	for _, tx := range txs {
		ltx, err := tx.Ledger()
		if err != nil {
			return nil, err
		}
		out = append(out, ltx)
	}
	return out, nil
}
