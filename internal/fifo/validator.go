package fifo

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Operation is a pending ledger mutation checked by CheckIntegrity.
type Operation interface {
	apply(txs []Transaction) ([]Transaction, error)
}

type insertOp struct{ tx Transaction }

// Insert checks a new transaction. A zero ID is treated as the next ID the
// store would assign, which places it after existing same-day entries.
func Insert(tx Transaction) Operation { return insertOp{tx: tx} }

func (o insertOp) apply(txs []Transaction) ([]Transaction, error) {
	tx := o.tx
	if tx.ID == 0 {
		for _, t := range txs {
			tx.ID = max(tx.ID, t.ID)
		}
		tx.ID++
	}
	return append(slices.Clone(txs), tx), nil
}

type editOp struct {
	id int64
	tx Transaction
}

// Edit checks replacing the fields of transaction id with those of tx. The
// ID itself is kept.
func Edit(id int64, tx Transaction) Operation { return editOp{id: id, tx: tx} }

func (o editOp) apply(txs []Transaction) ([]Transaction, error) {
	out := slices.Clone(txs)
	for i := range out {
		if out[i].ID == o.id {
			edited := o.tx
			edited.ID = o.id
			out[i] = edited
			return out, nil
		}
	}
	return nil, fmt.Errorf("edit %d: %w", o.id, ErrUnknownTransaction)
}

type deleteOp struct{ id int64 }

// Delete checks removing transaction id.
func Delete(id int64) Operation { return deleteOp{id: id} }

func (o deleteOp) apply(txs []Transaction) ([]Transaction, error) {
	i := slices.IndexFunc(txs, func(t Transaction) bool { return t.ID == o.id })
	if i < 0 {
		return nil, fmt.Errorf("delete %d: %w", o.id, ErrUnknownTransaction)
	}
	return slices.Delete(slices.Clone(txs), i, i+1), nil
}

// CheckIntegrity replays the ledger, with op applied when it is not nil,
// as a single running balance in chronological order. Only kinds,
// quantities, dates and IDs are read. It returns an *OversellViolation for
// the first sell that would take the balance below zero.
func CheckIntegrity(txs []Transaction, op Operation) error {
	if op != nil {
		var err error
		if txs, err = op.apply(txs); err != nil {
			return err
		}
	}

	balance := decimal.Zero
	for _, tx := range SortChronologically(txs) {
		if !tx.Quantity.IsPositive() {
			return malformed(tx.ID, "quantity", "must be positive")
		}
		switch tx.Kind {
		case Buy:
			balance = balance.Add(tx.Quantity)
		case Sell:
			if tx.Quantity.GreaterThan(balance) {
				return &OversellViolation{
					Date:          Day(tx.Date),
					TransactionID: tx.ID,
					Held:          balance,
					Requested:     tx.Quantity,
				}
			}
			balance = balance.Sub(tx.Quantity)
		default:
			return malformed(tx.ID, "kind", "must be buy or sell")
		}
	}
	return nil
}
