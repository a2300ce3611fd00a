package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/marketdata"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/service"
)

// Services bundles every service wired against one test database.
type Services struct {
	System      *service.SystemService
	Instrument  *service.InstrumentService
	Transaction *service.TransactionService
	Metrics     *service.MetricsService
	Wallet      *service.WalletService
}

// NewTestServices wires all services on db with prices as the price source.
// prices may be nil, in which case symbols are not verified on creation and
// every price is unavailable.
func NewTestServices(t *testing.T, db *sql.DB, prices marketdata.PriceSource) Services {
	t.Helper()

	instrumentRepo := repository.NewInstrumentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return Services{
		System:      service.NewSystemService(db),
		Instrument:  service.NewInstrumentService(instrumentRepo, prices),
		Transaction: service.NewTransactionService(db, transactionRepo, instrumentRepo),
		Metrics:     service.NewMetricsService(instrumentRepo, transactionRepo, prices, 4, nil),
		Wallet:      service.NewWalletService(db, repository.NewWalletRepository(db)),
	}
}

func NewTestInstrumentService(t *testing.T, db *sql.DB, prices marketdata.PriceSource) *service.InstrumentService {
	t.Helper()
	return NewTestServices(t, db, prices).Instrument
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()
	return NewTestServices(t, db, nil).Transaction
}

func NewTestMetricsService(t *testing.T, db *sql.DB, prices marketdata.PriceSource) *service.MetricsService {
	t.Helper()
	return NewTestServices(t, db, prices).Metrics
}

func NewTestWalletService(t *testing.T, db *sql.DB) *service.WalletService {
	t.Helper()
	return NewTestServices(t, db, nil).Wallet
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// MakeID generates a random UUID string for testing.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeInstrumentName generates a unique instrument name for testing.
func MakeInstrumentName(base string) string {
	if base == "" {
		base = "Instrument"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
