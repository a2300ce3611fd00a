package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/testutil"
)

// TestTransactionRepository tests ledger storage.
//
// WHY: Decimals are stored as TEXT so they never pass through float64, and
// the ledger must come back in the same order the FIFO matcher uses.
func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips exact decimals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		inst := testutil.CreateInstrument(t, db, "BTC", "crypto")

		in := &model.Transaction{
			InstrumentID: inst.ID,
			Type:         "buy",
			Quantity:     decimal.RequireFromString("0.123456789012"),
			Price:        decimal.RequireFromString("64123.12345678"),
			Commission:   decimal.RequireFromString("0.01"),
			Date:         testutil.Day(3),
		}
		if err := repo.InsertTransaction(ctx, in); err != nil {
			t.Fatalf("InsertTransaction() returned unexpected error: %v", err)
		}
		if in.ID == 0 {
			t.Fatal("Expected generated ID")
		}

		out, err := repo.GetTransaction(ctx, in.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if out.Quantity.String() != "0.123456789012" || out.Price.String() != "64123.12345678" {
			t.Errorf("Decimals changed in storage: %s @ %s", out.Quantity, out.Price)
		}
		if !out.Date.Equal(testutil.Day(3)) {
			t.Errorf("Expected date %v, got %v", testutil.Day(3), out.Date)
		}
		if out.CreatedAt.IsZero() {
			t.Error("Expected created_at to be set")
		}
	})

	t.Run("orders by date, buys first, then id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		inst := testutil.CreateInstrument(t, db, "AAPL", "stock")

		late := testutil.NewTransaction(inst.ID).Buy("1", "1").OnDate(testutil.Day(5)).Build(t, db)
		sell := testutil.NewTransaction(inst.ID).Sell("1", "1").OnDate(testutil.Day(2)).Build(t, db)
		buy := testutil.NewTransaction(inst.ID).Buy("1", "1").OnDate(testutil.Day(2)).Build(t, db)
		first := testutil.NewTransaction(inst.ID).Buy("1", "1").OnDate(testutil.Day(1)).Build(t, db)

		ledger, err := repo.GetTransactions(ctx, inst.ID)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}

		want := []int64{first.ID, buy.ID, sell.ID, late.ID}
		if len(ledger) != len(want) {
			t.Fatalf("Expected %d transactions, got %d", len(want), len(ledger))
		}
		for i, id := range want {
			if ledger[i].ID != id {
				t.Errorf("position %d: expected id %d, got %d", i, id, ledger[i].ID)
			}
		}
	})

	t.Run("update and delete unknown ids", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		err := repo.UpdateTransaction(ctx, &model.Transaction{ID: 7, Date: time.Now()})
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound on update, got %v", err)
		}
		if err := repo.DeleteTransaction(ctx, 7); !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound on delete, got %v", err)
		}
	})

	t.Run("corrupt decimal is a data inconsistency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		inst := testutil.CreateInstrument(t, db, "AAPL", "stock")
		tx := testutil.NewTransaction(inst.ID).Build(t, db)

		if _, err := db.Exec(`UPDATE "transaction" SET price = 'abc' WHERE id = ?`, tx.ID); err != nil {
			t.Fatalf("Failed to corrupt row: %v", err)
		}

		_, err := repo.GetTransaction(ctx, tx.ID)
		if !errors.Is(err, apperrors.ErrDataInconsistency) {
			t.Errorf("Expected ErrDataInconsistency, got %v", err)
		}
	})
}

func TestInstrumentRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("get by symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInstrumentRepository(db)
		inst := testutil.CreateInstrument(t, db, "VWCE.DE", "etf")

		got, err := repo.GetInstrumentBySymbol(ctx, "VWCE.DE")
		if err != nil {
			t.Fatalf("GetInstrumentBySymbol() returned unexpected error: %v", err)
		}
		if got.ID != inst.ID || got.InstrumentType != "etf" {
			t.Errorf("Unexpected instrument: %+v", got)
		}

		if _, err := repo.GetInstrumentBySymbol(ctx, "NOPE"); !errors.Is(err, apperrors.ErrInstrumentNotFound) {
			t.Errorf("Expected ErrInstrumentNotFound, got %v", err)
		}
	})

	t.Run("symbols are unique", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInstrumentRepository(db)
		testutil.CreateInstrument(t, db, "AAPL", "stock")

		err := repo.InsertInstrument(ctx, &model.Instrument{
			ID:             testutil.MakeID(),
			Symbol:         "AAPL",
			Name:           "Apple again",
			InstrumentType: "stock",
			Currency:       "USD",
			CreatedAt:      time.Now().UTC(),
		})
		if err == nil {
			t.Error("Expected unique constraint violation")
		}
	})

	t.Run("delete removes the ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewInstrumentRepository(db)
		inst := testutil.CreateInstrument(t, db, "AAPL", "stock")
		testutil.NewTransaction(inst.ID).Build(t, db)

		if err := repo.DeleteInstrument(ctx, inst.ID); err != nil {
			t.Fatalf("DeleteInstrument() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "instrument", 0)
		testutil.AssertRowCount(t, db, "transaction", 0)
	})
}

// TestWalletRepository tests the single-row wallet table.
//
// WHY: The migration seeds the only wallet row; reads and writes must find
// it without the caller knowing its ID.
func TestWalletRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("migration seeds an empty wallet", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewWalletRepository(db)

		wallet, err := repo.GetWallet(ctx)
		if err != nil {
			t.Fatalf("GetWallet() returned unexpected error: %v", err)
		}
		if wallet.ID != 1 || !wallet.Balance.IsZero() || !wallet.Commissions.IsZero() {
			t.Errorf("Expected empty wallet 1, got %+v", wallet)
		}
	})

	t.Run("update round-trips two decimal places", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewWalletRepository(db)

		wallet, err := repo.GetWallet(ctx)
		if err != nil {
			t.Fatalf("GetWallet() returned unexpected error: %v", err)
		}
		wallet.Balance = decimal.RequireFromString("1234.56")
		wallet.Commissions = decimal.RequireFromString("7.1")
		wallet.UpdatedAt = time.Now()
		if err := repo.UpdateWallet(ctx, &wallet); err != nil {
			t.Fatalf("UpdateWallet() returned unexpected error: %v", err)
		}

		got, err := repo.GetWallet(ctx)
		if err != nil {
			t.Fatalf("GetWallet() returned unexpected error: %v", err)
		}
		if !got.Balance.Equal(decimal.RequireFromString("1234.56")) || !got.Commissions.Equal(decimal.RequireFromString("7.10")) {
			t.Errorf("Unexpected wallet after update: %+v", got)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewWalletRepository(db)
		if _, err := db.Exec(`DELETE FROM wallet`); err != nil {
			t.Fatalf("Failed to clear wallet: %v", err)
		}

		if _, err := repo.GetWallet(ctx); !errors.Is(err, apperrors.ErrWalletNotFound) {
			t.Errorf("Expected ErrWalletNotFound, got %v", err)
		}
		err := repo.UpdateWallet(ctx, &model.Wallet{ID: 1})
		if !errors.Is(err, apperrors.ErrWalletNotFound) {
			t.Errorf("Expected ErrWalletNotFound on update, got %v", err)
		}
	})

	t.Run("corrupt balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewWalletRepository(db)
		if _, err := db.Exec(`UPDATE wallet SET balance = 'lots'`); err != nil {
			t.Fatalf("Failed to corrupt wallet: %v", err)
		}

		if _, err := repo.GetWallet(ctx); !errors.Is(err, apperrors.ErrDataInconsistency) {
			t.Errorf("Expected ErrDataInconsistency, got %v", err)
		}
	})
}
