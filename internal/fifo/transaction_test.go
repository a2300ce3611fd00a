package fifo

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestNewTransaction(t *testing.T) {
	t.Run("truncates the date to its calendar day", func(t *testing.T) {
		at := time.Date(2024, time.March, 5, 17, 45, 0, 0, time.FixedZone("CET", 3600))
		tx, err := NewTransaction(1, Buy, d("1"), d("10"), d("0"), at)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), tx.Date)
	})

	tests := []struct {
		name  string
		tx    Transaction
		field string
	}{
		{"zero quantity", buy(1, 1, "0", "10", "0"), "quantity"},
		{"negative quantity", buy(1, 1, "-1", "10", "0"), "quantity"},
		{"too many quantity digits", buy(1, 1, "0.0000000000001", "10", "0"), "quantity"},
		{"zero price", buy(1, 1, "1", "0", "0"), "unit_price"},
		{"too many price digits", buy(1, 1, "1", "0.000000001", "0"), "unit_price"},
		{"negative commission", buy(1, 1, "1", "10", "-0.01"), "commission"},
		{"too many commission digits", buy(1, 1, "1", "10", "0.001"), "commission"},
		{"missing date", Transaction{ID: 1, Kind: Sell, Quantity: d("1"), UnitPrice: d("1"), Commission: d("0")}, "date"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewTransaction(tt.tx.ID, tt.tx.Kind, tt.tx.Quantity, tt.tx.UnitPrice, tt.tx.Commission, tt.tx.Date)
			assert.IsError(t, err, ErrMalformedTransaction)
			var m *MalformedTransaction
			assert.True(t, errors.As(err, &m))
			assert.Equal(t, tt.field, m.Field)
		})
	}

	t.Run("accepts the maximum precision", func(t *testing.T) {
		_, err := NewTransaction(1, Buy, d("0.000000000001"), d("0.00000001"), d("0.01"), day1)
		assert.NoError(t, err)
	})
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" SELL ")
	assert.NoError(t, err)
	assert.Equal(t, Sell, k)
	assert.Equal(t, "sell", k.String())

	_, err = ParseKind("dividend")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	t.Run("orders by date first", func(t *testing.T) {
		assert.True(t, Compare(sell(1, 1, "1", "1", "0"), buy(2, 2, "1", "1", "0")) < 0)
	})

	t.Run("puts buys before sells on the same day", func(t *testing.T) {
		assert.True(t, Compare(buy(9, 1, "1", "1", "0"), sell(1, 1, "1", "1", "0")) < 0)
	})

	t.Run("breaks remaining ties by id", func(t *testing.T) {
		assert.True(t, Compare(buy(1, 1, "1", "1", "0"), buy(2, 1, "1", "1", "0")) < 0)
		assert.Equal(t, 0, Compare(buy(1, 1, "1", "1", "0"), buy(1, 1, "5", "3", "0")))
	})

	t.Run("ignores the time of day", func(t *testing.T) {
		a := buy(1, 1, "1", "1", "0")
		b := buy(2, 1, "1", "1", "0")
		a.Date = a.Date.Add(23 * time.Hour)
		assert.True(t, Compare(a, b) < 0)
	})

	t.Run("sorts a copy", func(t *testing.T) {
		txs := []Transaction{sell(3, 2, "1", "1", "0"), buy(2, 2, "1", "1", "0"), buy(1, 1, "1", "1", "0")}
		sorted := SortChronologically(txs)
		assert.Equal(t, []int64{1, 2, 3}, ids(sorted))
		assert.Equal(t, []int64{3, 2, 1}, ids(txs))
	})
}

func ids(txs []Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}
