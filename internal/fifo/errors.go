package fifo

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrOversell matches any *OversellViolation.
	ErrOversell = errors.New("oversell")

	// ErrMalformedTransaction matches any *MalformedTransaction.
	ErrMalformedTransaction = errors.New("malformed transaction")

	// ErrUnknownTransaction is returned when an edit or delete names a
	// transaction that is not part of the ledger.
	ErrUnknownTransaction = errors.New("unknown transaction")
)

// OversellViolation reports the first point in chronological order where a
// sell needed more units than were held.
type OversellViolation struct {
	Date          time.Time
	TransactionID int64
	Held          decimal.Decimal
	Requested     decimal.Decimal
}

func (e *OversellViolation) Error() string {
	return fmt.Sprintf("oversell on %s: transaction %d sells %s units but only %s are held",
		e.Date.Format(time.DateOnly), e.TransactionID, e.Requested, e.Held)
}

func (e *OversellViolation) Is(target error) bool { return target == ErrOversell }

// MalformedTransaction reports a transaction rejected at construction.
type MalformedTransaction struct {
	TransactionID int64
	Field         string
	Reason        string
}

func (e *MalformedTransaction) Error() string {
	return fmt.Sprintf("malformed transaction %d: %s %s", e.TransactionID, e.Field, e.Reason)
}

func (e *MalformedTransaction) Is(target error) bool { return target == ErrMalformedTransaction }

func malformed(id int64, field, reason string) error {
	return &MalformedTransaction{TransactionID: id, Field: field, Reason: reason}
}
