package fifo

import "github.com/shopspring/decimal"

// Unrealized is the paper gain on units still held.
type Unrealized struct {
	Gain            decimal.Decimal `json:"gain"`
	GainPercentage  decimal.Decimal `json:"gain_percentage"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
	CurrentValue    decimal.Decimal `json:"current_value"`
	AveragePrice    decimal.Decimal `json:"average_price"`
	CommissionsPaid decimal.Decimal `json:"commissions_paid"`
}

type unrealizedSums struct {
	quantity    decimal.Decimal
	costBasis   decimal.Decimal
	value       decimal.Decimal
	commissions decimal.Decimal
}

// unrealized values the open lots at price. A closed position yields zero
// sums.
func (m Matching) unrealized(price decimal.Decimal) unrealizedSums {
	s := unrealizedSums{quantity: decimal.Zero, costBasis: decimal.Zero, value: decimal.Zero, commissions: decimal.Zero}
	for _, l := range m.Open {
		s.quantity = s.quantity.Add(l.RemainingQuantity)
		s.costBasis = s.costBasis.Add(l.Cost())
		s.commissions = s.commissions.Add(l.RemainingCommission)
	}
	if !s.quantity.IsPositive() {
		return unrealizedSums{quantity: decimal.Zero, costBasis: decimal.Zero, value: decimal.Zero, commissions: decimal.Zero}
	}
	s.value = s.quantity.Mul(price)
	return s
}

func (s unrealizedSums) gain() decimal.Decimal {
	return s.value.Sub(s.costBasis)
}

func (s unrealizedSums) report() Unrealized {
	average := decimal.Zero
	if s.quantity.IsPositive() {
		average = s.costBasis.DivRound(s.quantity, divisionScale)
	}
	gain := s.gain()
	return Unrealized{
		Gain:            round(gain),
		GainPercentage:  round(percentage(gain, s.costBasis)),
		CurrentQuantity: s.quantity.Round(QuantityPlaces),
		CostBasis:       round(s.costBasis),
		CurrentValue:    round(s.value),
		AveragePrice:    round(average),
		CommissionsPaid: round(s.commissions),
	}
}

// CalculateUnrealized values what remains of a ledger after FIFO matching
// at currentPrice. A zero price stands for an unavailable quote and yields
// a zero current value rather than an error.
func CalculateUnrealized(txs []Transaction, currentPrice decimal.Decimal) (Unrealized, error) {
	m, err := Match(txs)
	if err != nil {
		return Unrealized{}, err
	}
	return m.unrealized(nonNegative(currentPrice)).report(), nil
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
