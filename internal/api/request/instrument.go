package request

// CreateInstrumentRequest is the body of POST /api/instrument.
type CreateInstrumentRequest struct {
	Symbol         string `json:"symbol"`
	Name           string `json:"name"`
	InstrumentType string `json:"instrument_type"`
	Currency       string `json:"currency"`
}
