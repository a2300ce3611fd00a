package fifo

import "github.com/shopspring/decimal"

// Totals combines realized and unrealized results of one instrument.
type Totals struct {
	TotalGain           decimal.Decimal `json:"total_gain"`
	TotalGainPercentage decimal.Decimal `json:"total_gain_percentage"`
	TotalInvestment     decimal.Decimal `json:"total_investment"`
	TotalCommissions    decimal.Decimal `json:"total_commissions"`
}

// InstrumentTotals is the complete gain result of one instrument.
type InstrumentTotals struct {
	Realized   Realized   `json:"realized"`
	Unrealized Unrealized `json:"unrealized"`
	Totals     Totals     `json:"totals"`
}

// Totals builds the gain result of the matching valued at currentPrice.
// Totals are derived from unrounded sums and rounded once.
//
// Total commissions count every commission once: sell commissions and buy
// commission portions already attributed to sells, plus what is still
// carried by open lots.
func (m Matching) Totals(currentPrice decimal.Decimal) InstrumentTotals {
	r := m.realized()
	u := m.unrealized(nonNegative(currentPrice))

	totalGain := r.gain().Add(u.gain())
	investment := u.costBasis.Add(r.costBasis)

	return InstrumentTotals{
		Realized:   m.reportRealized(r),
		Unrealized: u.report(),
		Totals: Totals{
			TotalGain:           round(totalGain),
			TotalGainPercentage: round(percentage(totalGain, investment)),
			TotalInvestment:     round(investment),
			TotalCommissions:    round(r.commissions.Add(u.commissions)),
		},
	}
}

// CalculateInstrumentTotals matches txs once and reports realized,
// unrealized and combined totals at currentPrice.
func CalculateInstrumentTotals(txs []Transaction, currentPrice decimal.Decimal) (InstrumentTotals, error) {
	m, err := Match(txs)
	if err != nil {
		return InstrumentTotals{}, err
	}
	return m.Totals(currentPrice), nil
}
