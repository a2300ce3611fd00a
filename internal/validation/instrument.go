package validation

import (
	"strings"
	"unicode"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
)

// ValidateCreateInstrument validates an instrument creation request.
//
// Required fields:
//   - symbol: 1 to 20 characters, letters, digits, '-' and '.' only
//   - instrument_type: stock, etf or crypto
//
// Optional fields:
//   - name: at most 100 characters
//   - currency: three letters if provided
func ValidateCreateInstrument(req request.CreateInstrumentRequest) error {
	errors := make(map[string]string)

	symbol := strings.TrimSpace(req.Symbol)
	switch {
	case symbol == "":
		errors["symbol"] = "symbol is required"
	case len(symbol) > 20:
		errors["symbol"] = "symbol must be between 1 and 20 characters"
	case strings.IndexFunc(symbol, invalidSymbolRune) >= 0:
		errors["symbol"] = "symbol contains invalid characters"
	}

	if strings.TrimSpace(req.InstrumentType) == "" {
		errors["instrument_type"] = "instrument_type is required"
	} else if !model.IsValidInstrumentType(strings.ToLower(strings.TrimSpace(req.InstrumentType))) {
		errors["instrument_type"] = "instrument_type must be one of: stock, etf, crypto"
	}

	if len(req.Name) > 100 {
		errors["name"] = "name cannot exceed 100 characters"
	}

	if c := strings.TrimSpace(req.Currency); c != "" {
		if len(c) != 3 || strings.IndexFunc(c, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			errors["currency"] = "currency must be a three-letter code"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func invalidSymbolRune(r rune) bool {
	return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r == '-' || r == '.')
}
