package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Quantity, price and commission are stored as decimal TEXT.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `id, instrument_id, type, quantity, price, commission, date, created_at`

// GetTransactions retrieves the full ledger of an instrument in chronological
// order: date, then buys before sells, then ID.
func (r *TransactionRepository) GetTransactions(ctx context.Context, instrumentID string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE instrument_id = ?
		ORDER BY date ASC, CASE type WHEN 'buy' THEN 0 ELSE 1 END ASC, id ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, instrumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns ErrTransactionNotFound if no record with the given ID exists.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id int64) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ?`

	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return t, err
}

// InsertTransaction stores t and sets its ID to the generated row ID.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
        INSERT INTO "transaction" (instrument_id, type, quantity, price, commission, date)
        VALUES (?, ?, ?, ?, ?, ?)
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.InstrumentID,
		t.Type,
		t.Quantity.String(),
		t.Price.String(),
		t.Commission.String(),
		t.Date.UTC().Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted transaction id: %w", err)
	}
	t.ID = id

	return nil
}

// UpdateTransaction overwrites the mutable fields of the transaction with t.ID.
// Returns ErrTransactionNotFound if no record with the given ID exists.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
        UPDATE "transaction"
        SET type = ?, quantity = ?, price = ?, commission = ?, date = ?
        WHERE id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.Type,
		t.Quantity.String(),
		t.Price.String(),
		t.Commission.String(),
		t.Date.UTC().Format(dateLayout),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return requireAffected(result, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction removes a transaction by its ID.
// Returns ErrTransactionNotFound if no record with the given ID exists.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return requireAffected(result, apperrors.ErrTransactionNotFound)
}

func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var quantityStr, priceStr, commissionStr, dateStr, createdAtStr string

	err := row.Scan(
		&t.ID,
		&t.InstrumentID,
		&t.Type,
		&quantityStr,
		&priceStr,
		&commissionStr,
		&dateStr,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	for _, col := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"quantity", quantityStr, &t.Quantity},
		{"price", priceStr, &t.Price},
		{"commission", commissionStr, &t.Commission},
	} {
		*col.dst, err = decimal.NewFromString(col.raw)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("%w: transaction %d has invalid %s %q", apperrors.ErrDataInconsistency, t.ID, col.name, col.raw)
		}
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return t, nil
}
