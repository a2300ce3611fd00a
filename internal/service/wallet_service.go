package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/validation"
)

// WalletService handles the cash wallet. Updates add to the stored amounts
// and are refused when either amount would become negative.
type WalletService struct {
	db         *sql.DB
	walletRepo *repository.WalletRepository
}

// NewWalletService creates a new WalletService with the provided repository dependency.
func NewWalletService(db *sql.DB, walletRepo *repository.WalletRepository) *WalletService {
	return &WalletService{
		db:         db,
		walletRepo: walletRepo,
	}
}

// GetWallet retrieves the wallet.
func (s *WalletService) GetWallet(ctx context.Context) (model.Wallet, error) {
	return s.walletRepo.GetWallet(ctx)
}

// UpdateWallet applies the amounts in req to the wallet in one database
// transaction and returns the stored result.
func (s *WalletService) UpdateWallet(ctx context.Context, req request.UpdateWalletRequest) (*model.Wallet, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repo := s.walletRepo.WithTx(tx)
	wallet, err := repo.GetWallet(ctx)
	if err != nil {
		return nil, err
	}

	if req.Balance != nil {
		wallet.Balance = wallet.Balance.Add(*req.Balance)
	}
	if req.Commissions != nil {
		wallet.Commissions = wallet.Commissions.Add(*req.Commissions)
	}

	fields := make(map[string]string)
	if wallet.Balance.IsNegative() {
		fields["balance"] = fmt.Sprintf("resulting balance would be negative: %s", wallet.Balance.StringFixed(2))
	}
	if wallet.Commissions.IsNegative() {
		fields["commissions"] = fmt.Sprintf("resulting commissions would be negative: %s", wallet.Commissions.StringFixed(2))
	}
	if len(fields) > 0 {
		return nil, &validation.Error{Fields: fields}
	}

	wallet.UpdatedAt = time.Now().UTC()
	if err := repo.UpdateWallet(ctx, &wallet); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &wallet, nil
}
