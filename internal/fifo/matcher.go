package fifo

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellMatch is the outcome of matching one sell against the lot queue.
type SellMatch struct {
	SellID      int64           `json:"sell_id"`
	Date        time.Time       `json:"date"`
	Quantity    decimal.Decimal `json:"quantity"`
	NetProceeds decimal.Decimal `json:"net_proceeds"`
	Commission  decimal.Decimal `json:"commission"`
	Consumed    []Consumption   `json:"consumed"`
}

// CostBasis is Σ(consumed quantity × lot price) + Σ(commission portions).
func (m SellMatch) CostBasis() decimal.Decimal {
	total := decimal.Zero
	for _, c := range m.Consumed {
		total = total.Add(c.Cost())
	}
	return total
}

// LotCommission is the buy commission attributed to this sell.
func (m SellMatch) LotCommission() decimal.Decimal {
	total := decimal.Zero
	for _, c := range m.Consumed {
		total = total.Add(c.Commission)
	}
	return total
}

// Matching is the full, unrounded result of applying every sell of a ledger
// to its buy lots.
type Matching struct {
	Sells          []SellMatch
	Open           []Lot
	BuyCommissions decimal.Decimal
}

// Match validates txs, builds the lot queue from the buys and consumes it
// with the sells, both in chronological order. A sell that cannot be fully
// satisfied stops matching with an *OversellViolation.
func Match(txs []Transaction) (Matching, error) {
	var queue LotQueue
	var sells []Transaction
	m := Matching{BuyCommissions: decimal.Zero}

	for _, tx := range SortChronologically(txs) {
		if err := tx.Validate(); err != nil {
			return Matching{}, err
		}
		switch tx.Kind {
		case Buy:
			queue.Push(tx)
			m.BuyCommissions = m.BuyCommissions.Add(tx.Commission)
		case Sell:
			sells = append(sells, tx)
		}
	}

	for _, sell := range sells {
		held := queue.Quantity()
		consumed, short := queue.Consume(sell.Quantity)
		if short.IsPositive() {
			return Matching{}, &OversellViolation{
				Date:          Day(sell.Date),
				TransactionID: sell.ID,
				Held:          held,
				Requested:     sell.Quantity,
			}
		}
		m.Sells = append(m.Sells, SellMatch{
			SellID:      sell.ID,
			Date:        Day(sell.Date),
			Quantity:    sell.Quantity,
			NetProceeds: sell.Gross().Sub(sell.Commission),
			Commission:  sell.Commission,
			Consumed:    consumed,
		})
	}

	m.Open = queue.Open()
	return m, nil
}
