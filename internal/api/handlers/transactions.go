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

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions handles GET requests for the ledger of one instrument,
// in chronological order.
//
// Endpoint: GET /api/instrument/{uuid}/transaction
// Response: 200 OK with array of model.Transaction
// Error: 404 Not Found if the instrument does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactions(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles POST requests to add a buy or sell to an
// instrument's ledger. The change is refused if any sell in the resulting
// ledger would exceed the units held at its date.
//
// Endpoint: POST /api/instrument/{uuid}/transaction
// Request Body: CreateTransactionRequest (type, quantity, price, commission, date)
// Response: 201 Created with model.Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the instrument does not exist
// Error: 409 Conflict with OversellDetails if the ledger would oversell
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to create transaction")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
// Omitted fields keep their value.
//
// Endpoint: PUT /api/transaction/{id}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated model.Transaction
// Error: 400 Bad Request if the ID is invalid or validation fails
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict with OversellDetails if the ledger would oversell
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidID.Error(), err.Error())
		return
	}

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "failed to update transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
// Deleting a buy that later sells depend on is refused.
//
// Endpoint: DELETE /api/transaction/{id}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the ID is invalid
// Error: 404 Not Found if transaction not found
// Error: 409 Conflict with OversellDetails if the ledger would oversell
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidID.Error(), err.Error())
		return
	}

	if err := h.transactionService.DeleteTransaction(r.Context(), id); err != nil {
		respondServiceError(w, err, "failed to delete transaction")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
