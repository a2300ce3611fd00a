package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
)

// WalletRepository provides data access methods for the wallet table.
// The table holds a single row created by the schema migration.
type WalletRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewWalletRepository creates a new WalletRepository with the provided database connection.
func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// WithTx returns a new WalletRepository scoped to the provided transaction.
func (r *WalletRepository) WithTx(tx *sql.Tx) *WalletRepository {
	return &WalletRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *WalletRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetWallet retrieves the wallet.
// Returns ErrWalletNotFound if the row is missing.
func (r *WalletRepository) GetWallet(ctx context.Context) (model.Wallet, error) {
	query := `SELECT id, name, balance, commissions, updated_at FROM wallet ORDER BY id LIMIT 1`

	var w model.Wallet
	var balanceStr, commissionsStr, updatedAtStr string
	err := r.getQuerier().QueryRowContext(ctx, query).Scan(
		&w.ID,
		&w.Name,
		&balanceStr,
		&commissionsStr,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Wallet{}, apperrors.ErrWalletNotFound
	}
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to scan wallet table results: %w", err)
	}

	if w.Balance, err = decimal.NewFromString(balanceStr); err != nil {
		return model.Wallet{}, fmt.Errorf("%w: wallet has invalid balance %q", apperrors.ErrDataInconsistency, balanceStr)
	}
	if w.Commissions, err = decimal.NewFromString(commissionsStr); err != nil {
		return model.Wallet{}, fmt.Errorf("%w: wallet has invalid commissions %q", apperrors.ErrDataInconsistency, commissionsStr)
	}

	w.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return w, nil
}

// UpdateWallet stores the balance and commissions of the wallet with w.ID.
// Returns ErrWalletNotFound if no record with the given ID exists.
func (r *WalletRepository) UpdateWallet(ctx context.Context, w *model.Wallet) error {
	query := `
        UPDATE wallet
        SET balance = ?, commissions = ?, updated_at = ?
        WHERE id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		w.Balance.StringFixed(2),
		w.Commissions.StringFixed(2),
		w.UpdatedAt.UTC().Format(time.DateTime),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	return requireAffected(result, apperrors.ErrWalletNotFound)
}
