package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/marketdata"
)

// PriceHandler exposes manual control of the price cache.
type PriceHandler struct {
	refresher *marketdata.Refresher
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(refresher *marketdata.Refresher) *PriceHandler {
	return &PriceHandler{refresher: refresher}
}

// Refresh handles POST requests to drop every cached price and fetch the
// current price of every instrument.
//
// Endpoint: POST /api/prices/refresh
// Response: 200 OK with marketdata.RefreshResult
// Error: 500 Internal Server Error if the instrument list cannot be read
func (h *PriceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.refresher.Refresh(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to refresh prices")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
