package fifo

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

var day1 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func onDay(n int) time.Time { return day1.AddDate(0, 0, n-1) }

func buy(id int64, day int, qty, price, commission string) Transaction {
	return Transaction{ID: id, Kind: Buy, Quantity: d(qty), UnitPrice: d(price), Commission: d(commission), Date: onDay(day)}
}

func sell(id int64, day int, qty, price, commission string) Transaction {
	return Transaction{ID: id, Kind: Sell, Quantity: d(qty), UnitPrice: d(price), Commission: d(commission), Date: onDay(day)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, d(want).String(), got.String())
}

// randomLedger builds a ledger that never sells more than it holds.
func randomLedger(seed uint64, n int) []Transaction {
	r := rand.New(rand.NewPCG(seed, seed+1))
	var txs []Transaction
	balance := decimal.Zero

	for i := 1; i <= n; i++ {
		price := decimal.New(int64(r.IntN(100000)+1), -2)
		commission := decimal.New(int64(r.IntN(500)), -2)
		if balance.IsPositive() && r.IntN(3) == 0 {
			qty := balance.Mul(decimal.New(int64(r.IntN(10)+1), -1)).Truncate(4)
			if qty.IsPositive() {
				txs = append(txs, Transaction{ID: int64(i), Kind: Sell, Quantity: qty, UnitPrice: price, Commission: commission, Date: onDay(i)})
				balance = balance.Sub(qty)
				continue
			}
		}
		qty := decimal.New(int64(r.IntN(100000)+1), -3)
		txs = append(txs, Transaction{ID: int64(i), Kind: Buy, Quantity: qty, UnitPrice: price, Commission: commission, Date: onDay(i)})
		balance = balance.Add(qty)
	}
	return txs
}
