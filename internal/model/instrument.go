package model

import "time"

// Instrument types accepted by the API.
const (
	InstrumentTypeStock  = "stock"
	InstrumentTypeETF    = "etf"
	InstrumentTypeCrypto = "crypto"
)

// Instrument represents a tradable security tracked by the portfolio.
type Instrument struct {
	ID             string    `json:"id"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	InstrumentType string    `json:"instrument_type"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsValidInstrumentType reports whether t is one of the supported instrument types.
func IsValidInstrumentType(t string) bool {
	switch t {
	case InstrumentTypeStock, InstrumentTypeETF, InstrumentTypeCrypto:
		return true
	}
	return false
}

// RiskLevel classifies an instrument type for the distribution breakdown.
// ETFs are medium risk, everything else is high.
func RiskLevel(instrumentType string) string {
	if instrumentType == InstrumentTypeETF {
		return "medium"
	}
	return "high"
}
