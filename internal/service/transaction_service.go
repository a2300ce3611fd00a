package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/fifo"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/validation"
)

// TransactionService handles ledger mutations. Every create, update and
// delete re-checks the instrument's whole ledger with the pending change
// applied and is refused if any sell would exceed the units held at its date.
// The check and the write run in one database transaction.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	instrumentRepo  *repository.InstrumentRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	instrumentRepo *repository.InstrumentRepository,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		instrumentRepo:  instrumentRepo,
	}
}

// GetTransactions retrieves the chronological ledger of an instrument.
func (s *TransactionService) GetTransactions(ctx context.Context, instrumentID string) ([]model.Transaction, error) {
	if _, err := s.instrumentRepo.GetInstrument(ctx, instrumentID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactions(ctx, instrumentID)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, id)
}

// CreateTransaction appends a transaction to an instrument's ledger.
func (s *TransactionService) CreateTransaction(ctx context.Context, instrumentID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		InstrumentID: instrumentID,
		Type:         strings.ToLower(strings.TrimSpace(req.Type)),
		Quantity:     req.Quantity,
		Price:        req.Price,
		Commission:   req.Commission,
		Date:         date,
	}

	err = s.withLedger(ctx, func(tx *sql.Tx) error {
		if _, err := s.instrumentRepo.WithTx(tx).GetInstrument(ctx, instrumentID); err != nil {
			return err
		}

		candidate, err := transaction.Ledger()
		if err != nil {
			return malformed(err)
		}
		if err := s.checkLedger(ctx, tx, instrumentID, fifo.Insert(candidate)); err != nil {
			return err
		}

		repo := s.transactionRepo.WithTx(tx)
		if err := repo.InsertTransaction(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		stored, err := repo.GetTransaction(ctx, transaction.ID)
		if err != nil {
			return err
		}
		*transaction = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// UpdateTransaction changes the fields present in req. The transaction keeps
// its ID and therefore its same-day ordering.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id int64, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	var updated model.Transaction

	err := s.withLedger(ctx, func(tx *sql.Tx) error {
		repo := s.transactionRepo.WithTx(tx)
		existing, err := repo.GetTransaction(ctx, id)
		if err != nil {
			return err
		}

		updated = existing
		if req.Type != nil {
			updated.Type = strings.ToLower(strings.TrimSpace(*req.Type))
		}
		if req.Quantity != nil {
			updated.Quantity = *req.Quantity
		}
		if req.Price != nil {
			updated.Price = *req.Price
		}
		if req.Commission != nil {
			updated.Commission = *req.Commission
		}
		if req.Date != nil {
			date, err := validation.ParseDate(*req.Date)
			if err != nil {
				return err
			}
			updated.Date = date
		}

		candidate, err := updated.Ledger()
		if err != nil {
			return malformed(err)
		}
		if err := s.checkLedger(ctx, tx, existing.InstrumentID, fifo.Edit(id, candidate)); err != nil {
			return err
		}

		if err := repo.UpdateTransaction(ctx, &updated); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteTransaction removes a transaction. Deleting a buy that later sells
// depend on is refused.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	return s.withLedger(ctx, func(tx *sql.Tx) error {
		repo := s.transactionRepo.WithTx(tx)
		existing, err := repo.GetTransaction(ctx, id)
		if err != nil {
			return err
		}

		if err := s.checkLedger(ctx, tx, existing.InstrumentID, fifo.Delete(id)); err != nil {
			return err
		}

		if err := repo.DeleteTransaction(ctx, id); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return nil
	})
}

// checkLedger loads the stored ledger inside tx and validates it with op applied.
func (s *TransactionService) checkLedger(ctx context.Context, tx *sql.Tx, instrumentID string, op fifo.Operation) error {
	stored, err := s.transactionRepo.WithTx(tx).GetTransactions(ctx, instrumentID)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}
	ledger, err := model.Ledger(stored)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrDataInconsistency, err)
	}
	return ledgerError(fifo.CheckIntegrity(ledger, op))
}

func (s *TransactionService) withLedger(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ledgerError maps engine errors onto the application sentinels while
// keeping the engine's detail reachable through errors.As.
func ledgerError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fifo.ErrOversell):
		return fmt.Errorf("%w: %w", apperrors.ErrOversell, err)
	case errors.Is(err, fifo.ErrUnknownTransaction):
		return fmt.Errorf("%w: %w", apperrors.ErrTransactionNotFound, err)
	case errors.Is(err, fifo.ErrMalformedTransaction):
		return malformed(err)
	default:
		return err
	}
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrMalformedTransaction, err)
}
