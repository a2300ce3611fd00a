package model

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/fifo"
)

// InstrumentMetrics is the gain report for one instrument at the current price.
// PriceAvailable is false when no quote could be obtained; the unrealized part
// is then computed against a zero price.
type InstrumentMetrics struct {
	Instrument     Instrument            `json:"instrument"`
	CurrentPrice   decimal.Decimal       `json:"current_price"`
	PriceAvailable bool                  `json:"price_available"`
	Metrics        fifo.InstrumentTotals `json:"metrics"`
}

// OpenLots lists the unconsumed buy lots of an instrument in FIFO order.
type OpenLots struct {
	InstrumentID string          `json:"instrument_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Lots         []fifo.Lot      `json:"lots"`
}

// PortfolioSummary aggregates every instrument that has at least one transaction.
type PortfolioSummary struct {
	Totals          fifo.PortfolioTotals `json:"totals"`
	Instruments     []InstrumentMetrics  `json:"instruments"`
	UnpricedSymbols []string             `json:"unpriced_symbols"`
}

// DistributionEntry is one slice of a distribution chart.
type DistributionEntry struct {
	Label      string          `json:"label"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

// PortfolioDistribution breaks the current value of priced holdings down by
// instrument type, risk level and individual instrument.
type PortfolioDistribution struct {
	TotalValue   decimal.Decimal     `json:"total_value"`
	ByType       []DistributionEntry `json:"by_type"`
	ByRisk       []DistributionEntry `json:"by_risk"`
	ByInstrument []DistributionEntry `json:"by_instrument"`
}
