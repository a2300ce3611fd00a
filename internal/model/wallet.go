package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the portfolio's cash account: uninvested cash and the
// commissions booked against it. Neither amount may go below zero.
type Wallet struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	Commissions decimal.Decimal `json:"commissions"`
	UpdatedAt   time.Time       `json:"updated_at,omitzero"`
}
