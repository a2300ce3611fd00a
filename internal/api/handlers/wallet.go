package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/validation"
)

// WalletHandler handles HTTP requests for the cash wallet.
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler with the provided service dependency.
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Wallet handles GET requests for the wallet.
//
// Endpoint: GET /api/wallet
// Response: 200 OK with model.Wallet
// Error: 404 Not Found if the wallet row is missing
func (h *WalletHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.walletService.GetWallet(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveWallet.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, wallet)
}

// UpdateWallet handles POST requests that deposit to or withdraw from the
// wallet.
//
// Endpoint: POST /api/wallet
// Request Body: UpdateWalletRequest (balance and/or commissions, signed amounts)
// Response: 200 OK with the updated model.Wallet
// Error: 400 Bad Request if validation fails or either amount would become negative
// Error: 404 Not Found if the wallet row is missing
func (h *WalletHandler) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateWalletRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateWallet(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	wallet, err := h.walletService.UpdateWallet(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateWallet.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, wallet)
}
