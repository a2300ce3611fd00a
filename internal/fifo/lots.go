package fifo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is an open purchase lot: what is left of one buy after earlier sells
// have consumed part of it.
type Lot struct {
	BuyID               int64           `json:"buy_id"`
	Date                time.Time       `json:"date"`
	RemainingQuantity   decimal.Decimal `json:"remaining_quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	RemainingCommission decimal.Decimal `json:"remaining_commission"`
}

// Cost is remaining quantity × unit price, commission excluded.
func (l Lot) Cost() decimal.Decimal {
	return l.RemainingQuantity.Mul(l.UnitPrice)
}

// Consumption is the part of a lot taken by one sell.
type Consumption struct {
	BuyID      int64           `json:"buy_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Commission decimal.Decimal `json:"commission"`
}

// Cost is the matched cost of the consumption, commission portion included.
func (c Consumption) Cost() decimal.Decimal {
	return c.Quantity.Mul(c.UnitPrice).Add(c.Commission)
}

// LotQueue holds open lots in the order their buys happened. Consumption
// always starts at the front; retired lots are never revisited.
type LotQueue struct {
	lots []Lot
	head int
}

// Push appends a lot created from a buy. Buys must be pushed in
// chronological order.
func (q *LotQueue) Push(buy Transaction) {
	q.lots = append(q.lots, Lot{
		BuyID:               buy.ID,
		Date:                Day(buy.Date),
		RemainingQuantity:   buy.Quantity,
		UnitPrice:           buy.UnitPrice,
		RemainingCommission: buy.Commission,
	})
}

// Len is the number of open lots.
func (q *LotQueue) Len() int {
	return len(q.lots) - q.head
}

// Open returns a copy of the open lots, oldest first.
func (q *LotQueue) Open() []Lot {
	open := make([]Lot, q.Len())
	copy(open, q.lots[q.head:])
	return open
}

// Quantity is the sum of the open lots' remaining quantities.
func (q *LotQueue) Quantity() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.lots[q.head:] {
		total = total.Add(l.RemainingQuantity)
	}
	return total
}

// Consume takes quantity units from the front of the queue. It returns the
// consumptions made and the quantity that could not be satisfied because
// the queue ran empty.
func (q *LotQueue) Consume(quantity decimal.Decimal) ([]Consumption, decimal.Decimal) {
	var taken []Consumption
	remaining := quantity

	for remaining.IsPositive() && q.Len() > 0 {
		front := &q.lots[q.head]

		if front.RemainingQuantity.LessThanOrEqual(remaining) {
			// Whole lot
			taken = append(taken, Consumption{
				BuyID:      front.BuyID,
				Quantity:   front.RemainingQuantity,
				UnitPrice:  front.UnitPrice,
				Commission: front.RemainingCommission,
			})
			remaining = remaining.Sub(front.RemainingQuantity)
			front.RemainingQuantity = decimal.Zero
			front.RemainingCommission = decimal.Zero
			q.head++
			continue
		}

		// Partial lot
		portion := remaining.Mul(front.RemainingCommission).DivRound(front.RemainingQuantity, divisionScale)
		taken = append(taken, Consumption{
			BuyID:      front.BuyID,
			Quantity:   remaining,
			UnitPrice:  front.UnitPrice,
			Commission: portion,
		})
		front.RemainingQuantity = front.RemainingQuantity.Sub(remaining)
		front.RemainingCommission = front.RemainingCommission.Sub(portion)
		remaining = decimal.Zero
	}

	return taken, remaining
}
