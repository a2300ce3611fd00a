package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/fifo"
)

// errIntegrity makes the process exit non-zero after a violation report.
var errIntegrity = errors.New("ledger failed integrity check")

// CheckCmd replays a ledger and reports the first sell that exceeds the
// units held at its date.
type CheckCmd struct {
	File []byte `help:"Ledger CSV (id,date,type,quantity,price,commission)." arg:"" type:"filecontent"`
}

type checkReport struct {
	OK           bool             `json:"ok"`
	Transactions int              `json:"transactions"`
	Violation    *violationReport `json:"violation,omitempty"`
}

type violationReport struct {
	Date          string          `json:"date"`
	TransactionID int64           `json:"transaction_id"`
	Held          decimal.Decimal `json:"held"`
	Requested     decimal.Decimal `json:"requested"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context) error {
	txs, err := readLedger(bytes.NewReader(cmd.File))
	if err != nil {
		return err
	}

	report := checkReport{OK: true, Transactions: len(txs)}
	var violation *fifo.OversellViolation

	switch err := fifo.CheckIntegrity(txs, nil); {
	case err == nil:
	case errors.As(err, &violation):
		report.OK = false
		report.Violation = &violationReport{
			Date:          violation.Date.Format(time.DateOnly),
			TransactionID: violation.TransactionID,
			Held:          violation.Held,
			Requested:     violation.Requested,
		}
	default:
		return err
	}

	if err := writeJSON(ctx.Stdout, report); err != nil {
		return err
	}
	if !report.OK {
		return errIntegrity
	}
	return nil
}

// TotalsCmd prints the realized, unrealized and combined gains of a ledger.
// A ledger that fails the integrity check is refused.
type TotalsCmd struct {
	File  []byte          `help:"Ledger CSV (id,date,type,quantity,price,commission)." arg:"" type:"filecontent"`
	Price decimal.Decimal `help:"Current unit price used for the unrealized part." default:"0"`
}

func (cmd *TotalsCmd) Run(ctx *kong.Context) error {
	txs, err := readCheckedLedger(cmd.File)
	if err != nil {
		return err
	}

	totals, err := fifo.CalculateInstrumentTotals(txs, cmd.Price)
	if err != nil {
		return err
	}
	return writeJSON(ctx.Stdout, totals)
}

// LotsCmd prints the lots still open after FIFO matching.
// A ledger that fails the integrity check is refused.
type LotsCmd struct {
	File []byte `help:"Ledger CSV (id,date,type,quantity,price,commission)." arg:"" type:"filecontent"`
}

func (cmd *LotsCmd) Run(ctx *kong.Context) error {
	txs, err := readCheckedLedger(cmd.File)
	if err != nil {
		return err
	}

	matching, err := fifo.Match(txs)
	if err != nil {
		return err
	}
	lots := matching.Open
	if lots == nil {
		lots = []fifo.Lot{}
	}
	return writeJSON(ctx.Stdout, lots)
}

// readCheckedLedger reads a ledger that must pass the integrity check.
// Matching alone queues every buy before any sell, so a sell dated before
// the buy that covers it would otherwise be matched against a later lot.
func readCheckedLedger(file []byte) ([]fifo.Transaction, error) {
	txs, err := readLedger(bytes.NewReader(file))
	if err != nil {
		return nil, err
	}
	if err := fifo.CheckIntegrity(txs, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", errIntegrity, err)
	}
	return txs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
