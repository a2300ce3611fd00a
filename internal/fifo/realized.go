package fifo

import "github.com/shopspring/decimal"

// Realized is the gain locked in by completed sales.
type Realized struct {
	Gain            decimal.Decimal `json:"gain"`
	GainPercentage  decimal.Decimal `json:"gain_percentage"`
	TotalSoldNet    decimal.Decimal `json:"total_sold_net"`
	CostBasisSold   decimal.Decimal `json:"cost_basis_sold"`
	CommissionsPaid decimal.Decimal `json:"commissions_paid"`
}

type realizedSums struct {
	soldNet     decimal.Decimal
	costBasis   decimal.Decimal
	commissions decimal.Decimal // sell commissions + buy commission portions consumed
}

func (m Matching) realized() realizedSums {
	s := realizedSums{soldNet: decimal.Zero, costBasis: decimal.Zero, commissions: decimal.Zero}
	for _, sell := range m.Sells {
		s.soldNet = s.soldNet.Add(sell.NetProceeds)
		s.costBasis = s.costBasis.Add(sell.CostBasis())
		s.commissions = s.commissions.Add(sell.Commission).Add(sell.LotCommission())
	}
	return s
}

func (s realizedSums) gain() decimal.Decimal {
	return s.soldNet.Sub(s.costBasis)
}

// reportRealized rounds the sums. Without sells the commissions paid are all buy
// commissions, money spent that no closed position carries yet.
func (m Matching) reportRealized(s realizedSums) Realized {
	if len(m.Sells) == 0 {
		return Realized{
			Gain:            decimal.Zero,
			GainPercentage:  decimal.Zero,
			TotalSoldNet:    decimal.Zero,
			CostBasisSold:   decimal.Zero,
			CommissionsPaid: round(m.BuyCommissions),
		}
	}
	gain := s.gain()
	return Realized{
		Gain:            round(gain),
		GainPercentage:  round(percentage(gain, s.costBasis)),
		TotalSoldNet:    round(s.soldNet),
		CostBasisSold:   round(s.costBasis),
		CommissionsPaid: round(s.commissions),
	}
}

// CalculateRealized computes realized gains of a ledger with FIFO matching.
func CalculateRealized(txs []Transaction) (Realized, error) {
	m, err := Match(txs)
	if err != nil {
		return Realized{}, err
	}
	return m.reportRealized(m.realized()), nil
}
