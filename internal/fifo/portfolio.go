package fifo

import "github.com/shopspring/decimal"

// PortfolioTotals sums instrument results. Percentages use portfolio-wide
// denominators, never an average of instrument percentages.
type PortfolioTotals struct {
	TotalInvestment          decimal.Decimal `json:"total_investment"`
	CostBasis                decimal.Decimal `json:"cost_basis"`
	CostBasisSold            decimal.Decimal `json:"cost_basis_sold"`
	CurrentValue             decimal.Decimal `json:"current_value"`
	UnrealizedGain           decimal.Decimal `json:"unrealized_gain"`
	UnrealizedGainPercentage decimal.Decimal `json:"unrealized_gain_percentage"`
	RealizedGain             decimal.Decimal `json:"realized_gain"`
	RealizedGainPercentage   decimal.Decimal `json:"realized_gain_percentage"`
	TotalGain                decimal.Decimal `json:"total_gain"`
	TotalGainPercentage      decimal.Decimal `json:"total_gain_percentage"`
	TotalCommissions         decimal.Decimal `json:"total_commissions"`
	Instruments              int             `json:"instruments"`
}

// AggregatePortfolio sums the reported per-instrument records.
func AggregatePortfolio(records []InstrumentTotals) PortfolioTotals {
	p := PortfolioTotals{
		TotalInvestment:  decimal.Zero,
		CostBasis:        decimal.Zero,
		CostBasisSold:    decimal.Zero,
		CurrentValue:     decimal.Zero,
		UnrealizedGain:   decimal.Zero,
		RealizedGain:     decimal.Zero,
		TotalGain:        decimal.Zero,
		TotalCommissions: decimal.Zero,
		Instruments:      len(records),
	}

	for _, r := range records {
		p.TotalInvestment = p.TotalInvestment.Add(r.Totals.TotalInvestment)
		p.CostBasis = p.CostBasis.Add(r.Unrealized.CostBasis)
		p.CostBasisSold = p.CostBasisSold.Add(r.Realized.CostBasisSold)
		p.CurrentValue = p.CurrentValue.Add(r.Unrealized.CurrentValue)
		p.UnrealizedGain = p.UnrealizedGain.Add(r.Unrealized.Gain)
		p.RealizedGain = p.RealizedGain.Add(r.Realized.Gain)
		p.TotalGain = p.TotalGain.Add(r.Totals.TotalGain)
		p.TotalCommissions = p.TotalCommissions.Add(r.Totals.TotalCommissions)
	}

	p.UnrealizedGainPercentage = round(percentage(p.UnrealizedGain, p.CostBasis))
	p.RealizedGainPercentage = round(percentage(p.RealizedGain, p.CostBasisSold))
	p.TotalGainPercentage = round(percentage(p.TotalGain, p.TotalInvestment))
	return p
}
