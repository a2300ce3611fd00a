package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest is the body of POST /api/instrument/{uuid}/transaction.
// Decimal fields accept JSON strings or numbers; strings avoid any float
// rounding on the client side.
type CreateTransactionRequest struct {
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	Date       string          `json:"date"`
}

// UpdateTransactionRequest is the body of PUT /api/transaction/{id}.
// Omitted fields keep their stored value.
type UpdateTransactionRequest struct {
	Type       *string          `json:"type,omitempty"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Commission *decimal.Decimal `json:"commission,omitempty"`
	Date       *string          `json:"date,omitempty"`
}
