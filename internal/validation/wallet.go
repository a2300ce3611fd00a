package validation

import (
	"fmt"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
)

// walletPlaces is the precision of wallet amounts.
const walletPlaces = 2

// ValidateUpdateWallet validates a wallet update request.
// At least one of balance and commissions must be given, each with at most
// two decimal places. Whether the result stays non-negative depends on the
// stored wallet and is checked by the service.
func ValidateUpdateWallet(req request.UpdateWalletRequest) error {
	errors := make(map[string]string)

	if req.Balance == nil && req.Commissions == nil {
		errors["request"] = "balance or commissions is required"
	}
	if req.Balance != nil && !checkPlaces(*req.Balance, walletPlaces) {
		errors["balance"] = fmt.Sprintf("balance cannot have more than %d decimal places", walletPlaces)
	}
	if req.Commissions != nil && !checkPlaces(*req.Commissions, walletPlaces) {
		errors["commissions"] = fmt.Sprintf("commissions cannot have more than %d decimal places", walletPlaces)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
