package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/fifo"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields and trailing
// data are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	if dec.More() {
		return req, errors.New("request body must contain a single JSON object")
	}
	return req, nil
}

// OversellDetails is the error detail of a 409 response for a refused
// ledger change.
type OversellDetails struct {
	Date          string          `json:"date"`
	TransactionID int64           `json:"transaction_id"`
	Held          decimal.Decimal `json:"held"`
	Requested     decimal.Decimal `json:"requested"`
}

// respondServiceError maps a service error to its HTTP status. Errors with
// no specific mapping become 500 with fallback as the message.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var fieldErr *validation.Error
	var violation *fifo.OversellViolation

	switch {
	case errors.As(err, &fieldErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", fieldErr.Fields)
	case errors.As(err, &violation):
		response.RespondError(w, http.StatusConflict, apperrors.ErrOversell.Error(), OversellDetails{
			Date:          violation.Date.Format(time.DateOnly),
			TransactionID: violation.TransactionID,
			Held:          violation.Held,
			Requested:     violation.Requested,
		})
	case errors.Is(err, apperrors.ErrInstrumentNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrInstrumentNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrWalletNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrWalletNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDuplicateSymbol):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateSymbol.Error(), err.Error())
	case errors.Is(err, apperrors.ErrSymbolNotFound):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrSymbolNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrMalformedTransaction):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMalformedTransaction.Error(), err.Error())
	case errors.Is(err, apperrors.ErrFailedToRetrievePrice):
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrievePrice.Error(), err.Error())
	default:
		slog.Error(fallback, "error", err)
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
