package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/validation"
)

// InstrumentHandler handles HTTP requests for instrument endpoints.
type InstrumentHandler struct {
	instrumentService *service.InstrumentService
}

// NewInstrumentHandler creates a new InstrumentHandler with the provided service dependency.
func NewInstrumentHandler(instrumentService *service.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{
		instrumentService: instrumentService,
	}
}

// Instruments handles GET requests to list every instrument.
//
// Endpoint: GET /api/instrument
// Response: 200 OK with array of model.Instrument
// Error: 500 Internal Server Error if retrieval fails
func (h *InstrumentHandler) Instruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.instrumentService.GetInstruments(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInstruments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, instruments)
}

// GetInstrument handles GET requests for a single instrument.
//
// Endpoint: GET /api/instrument/{uuid}
// Response: 200 OK with model.Instrument
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the instrument does not exist
func (h *InstrumentHandler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	instrument, err := h.instrumentService.GetInstrument(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInstrument.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, instrument)
}

// CreateInstrument handles POST requests to register an instrument.
// The symbol must be unknown locally and quoted by the price source.
//
// Endpoint: POST /api/instrument
// Request Body: CreateInstrumentRequest (symbol, instrument_type, optional name and currency)
// Response: 201 Created with model.Instrument
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the symbol is already registered
// Error: 422 Unprocessable Entity if the price source does not know the symbol
// Error: 502 Bad Gateway if the price source could not be reached
func (h *InstrumentHandler) CreateInstrument(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInstrumentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInstrument(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	instrument, err := h.instrumentService.CreateInstrument(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create instrument")
		return
	}

	response.RespondJSON(w, http.StatusCreated, instrument)
}

// DeleteInstrument handles DELETE requests. The instrument's ledger is removed with it.
//
// Endpoint: DELETE /api/instrument/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the instrument does not exist
func (h *InstrumentHandler) DeleteInstrument(w http.ResponseWriter, r *http.Request) {
	if err := h.instrumentService.DeleteInstrument(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete instrument")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
