package fifo

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fractional digit limits accepted on a transaction.
const (
	QuantityPlaces   int32 = 12
	PricePlaces      int32 = 8
	CommissionPlaces int32 = 2
	MoneyPlaces      int32 = 2
)

// divisionScale is the number of fractional digits kept by intermediate
// divisions before results are rounded for reporting.
const divisionScale int32 = 28

var hundred = decimal.NewFromInt(100)

// Kind is the side of a transaction.
type Kind int

const (
	Buy Kind = iota
	Sell
)

func (k Kind) String() string {
	switch k {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseKind parses "buy" or "sell", ignoring case and surrounding spaces.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// Transaction is one ledger entry of an instrument. It is read-only to the
// engine.
type Transaction struct {
	ID         int64
	Kind       Kind
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Commission decimal.Decimal
	Date       time.Time
}

// NewTransaction builds a validated transaction. The date is reduced to its
// calendar day.
func NewTransaction(id int64, kind Kind, quantity, unitPrice, commission decimal.Decimal, date time.Time) (Transaction, error) {
	tx := Transaction{
		ID:         id,
		Kind:       kind,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Commission: commission,
		Date:       Day(date),
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Validate reports a *MalformedTransaction when the transaction cannot enter
// a lot queue.
func (t Transaction) Validate() error {
	switch {
	case t.Kind != Buy && t.Kind != Sell:
		return malformed(t.ID, "kind", "must be buy or sell")
	case !t.Quantity.IsPositive():
		return malformed(t.ID, "quantity", "must be positive")
	case !fitsPlaces(t.Quantity, QuantityPlaces):
		return malformed(t.ID, "quantity", fmt.Sprintf("must have at most %d decimal places", QuantityPlaces))
	case !t.UnitPrice.IsPositive():
		return malformed(t.ID, "unit_price", "must be positive")
	case !fitsPlaces(t.UnitPrice, PricePlaces):
		return malformed(t.ID, "unit_price", fmt.Sprintf("must have at most %d decimal places", PricePlaces))
	case t.Commission.IsNegative():
		return malformed(t.ID, "commission", "cannot be negative")
	case !fitsPlaces(t.Commission, CommissionPlaces):
		return malformed(t.ID, "commission", fmt.Sprintf("must have at most %d decimal places", CommissionPlaces))
	case t.Date.IsZero():
		return malformed(t.ID, "date", "is required")
	}
	return nil
}

// Gross is quantity × unit price.
func (t Transaction) Gross() decimal.Decimal {
	return t.Quantity.Mul(t.UnitPrice)
}

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Compare orders transactions chronologically: by date, then buys before
// sells on the same day, then by ID.
func Compare(a, b Transaction) int {
	if c := Day(a.Date).Compare(Day(b.Date)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortChronologically returns a copy of txs ordered by Compare.
func SortChronologically(txs []Transaction) []Transaction {
	sorted := slices.Clone(txs)
	slices.SortFunc(sorted, Compare)
	return sorted
}

func fitsPlaces(d decimal.Decimal, places int32) bool {
	return d.Truncate(places).Equal(d)
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// percentage returns part/base × 100, or zero when base is not positive.
func percentage(part, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(base, divisionScale)
}
