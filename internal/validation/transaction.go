package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/fifo"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - type: buy or sell
//   - quantity: positive, at most 12 decimal places
//   - price: positive, at most 8 decimal places
//   - commission: non-negative, at most 2 decimal places (defaults to 0)
//   - date: YYYY-MM-DD, not in the future
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	validateType(errors, req.Type)
	validatePositive(errors, "quantity", req.Quantity, fifo.QuantityPlaces)
	validatePositive(errors, "price", req.Price, fifo.PricePlaces)
	validateNonNegative(errors, "commission", req.Commission, fifo.CommissionPlaces)
	if _, err := ParseDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Type != nil {
		validateType(errors, *req.Type)
	}
	if req.Quantity != nil {
		validatePositive(errors, "quantity", *req.Quantity, fifo.QuantityPlaces)
	}
	if req.Price != nil {
		validatePositive(errors, "price", *req.Price, fifo.PricePlaces)
	}
	if req.Commission != nil {
		validateNonNegative(errors, "commission", *req.Commission, fifo.CommissionPlaces)
	}
	if req.Date != nil {
		if _, err := ParseDate(*req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateType(errors map[string]string, t string) {
	normalized := strings.ToLower(strings.TrimSpace(t))
	if normalized == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[normalized] {
		errors["type"] = fmt.Sprintf("invalid type: %s", t)
	}
}
