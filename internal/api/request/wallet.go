package request

import "github.com/shopspring/decimal"

// UpdateWalletRequest is the body of POST /api/wallet. Both fields are
// amounts added to the stored values; negative amounts withdraw.
// Omitted fields leave the stored value unchanged.
type UpdateWalletRequest struct {
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Commissions *decimal.Decimal `json:"commissions,omitempty"`
}
