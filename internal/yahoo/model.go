package yahoo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response represents the raw JSON response structure from Yahoo Finance API.
// This type maps directly to the Yahoo Finance chart API response format.
// Prices decode straight into decimals; Yahoo reports missing data points
// as null, which NullDecimal keeps distinguishable from zero.
type Response struct {
	Chart struct {
		Result []Result `json:"result"`
		Error  *Error   `json:"error"`
	} `json:"chart"`
}

// Result is one symbol's chart data.
type Result struct {
	Meta struct {
		Currency           string              `json:"currency"`
		Symbol             string              `json:"symbol"`
		ExchangeName       string              `json:"exchangeName"`
		LongName           string              `json:"longName"`
		Shortname          string              `json:"shortName"`
		RegularMarketPrice decimal.NullDecimal `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open  []decimal.NullDecimal `json:"open"`
			Close []decimal.NullDecimal `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// Error is the error object Yahoo embeds in the chart envelope.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *Error) Error() string {
	return "yahoo error: " + e.Code + ": " + e.Description
}

// PriceChart represents a parsed and structured price chart from Yahoo Finance.
type PriceChart struct {
	Currency           string
	Symbol             string
	ExchangeName       string
	LongName           string
	Shortname          string
	RegularMarketPrice decimal.NullDecimal
	Indicators         []Indicators
}

// Indicators represents a single day's price data for a financial instrument.
// A data point Yahoo reported as null has Valid=false on the price.
type Indicators struct {
	Date       time.Time
	PriceOpen  decimal.NullDecimal
	PriceClose decimal.NullDecimal
}

// LastClose returns the most recent non-null closing price.
func (c PriceChart) LastClose() (decimal.Decimal, bool) {
	for i := len(c.Indicators) - 1; i >= 0; i-- {
		if p := c.Indicators[i].PriceClose; p.Valid && p.Decimal.IsPositive() {
			return p.Decimal, true
		}
	}
	return decimal.Zero, false
}

// CurrentPrice returns the regular market price, falling back to the last
// close when Yahoo carries no live quote.
func (c PriceChart) CurrentPrice() (decimal.Decimal, bool) {
	if p := c.RegularMarketPrice; p.Valid && p.Decimal.IsPositive() {
		return p.Decimal, true
	}
	return c.LastClose()
}
