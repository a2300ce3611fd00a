package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/fifo"
)

var requiredColumns = []string{"id", "date", "type", "quantity", "price"}

// readLedger parses a CSV ledger with a header row naming the columns
// id, date, type, quantity, price and optionally commission. Column order is
// free; blank lines are skipped.
func readLedger(r io.Reader) ([]fifo.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("ledger is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var txs []fifo.Transaction
	seen := map[int64]int{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		tx, err := parseRow(field)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if prev, dup := seen[tx.ID]; dup {
			return nil, fmt.Errorf("line %d: id %d already used on line %d", line, tx.ID, prev)
		}
		seen[tx.ID] = line
		txs = append(txs, tx)
	}

	return txs, nil
}

func parseRow(field func(string) string) (fifo.Transaction, error) {
	id, err := strconv.ParseInt(field("id"), 10, 64)
	if err != nil {
		return fifo.Transaction{}, fmt.Errorf("invalid id %q", field("id"))
	}
	date, err := time.Parse(time.DateOnly, field("date"))
	if err != nil {
		return fifo.Transaction{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", field("date"))
	}
	kind, err := fifo.ParseKind(field("type"))
	if err != nil {
		return fifo.Transaction{}, err
	}
	quantity, err := decimal.NewFromString(field("quantity"))
	if err != nil {
		return fifo.Transaction{}, fmt.Errorf("invalid quantity %q", field("quantity"))
	}
	price, err := decimal.NewFromString(field("price"))
	if err != nil {
		return fifo.Transaction{}, fmt.Errorf("invalid price %q", field("price"))
	}
	commission := decimal.Zero
	if raw := field("commission"); raw != "" {
		if commission, err = decimal.NewFromString(raw); err != nil {
			return fifo.Transaction{}, fmt.Errorf("invalid commission %q", raw)
		}
	}

	return fifo.NewTransaction(id, kind, quantity, price, commission, date)
}
