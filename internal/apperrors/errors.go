package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrInstrumentNotFound indicates that an instrument with the given ID does not exist.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrWalletNotFound indicates that the wallet row is missing.
	ErrWalletNotFound = errors.New("wallet not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrOversell indicates that a mutation would make the instrument's ledger
	// sell more units than it holds at some point in time.
	ErrOversell = errors.New("ledger would sell more units than held")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidID indicates that a numeric ID parameter is not a positive integer.
	ErrInvalidID = errors.New("invalid ID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateSymbol indicates that an instrument with the same symbol already exists.
	ErrDuplicateSymbol = errors.New("instrument symbol already exists")

	// ErrMalformedTransaction indicates a transaction that can never be part of a valid ledger.
	ErrMalformedTransaction = errors.New("malformed transaction")

	ErrInvalidSymbol = errors.New("symbol is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveInstruments  = errors.New("failed to retrieve instruments")
	ErrFailedToRetrieveInstrument   = errors.New("failed to retrieve instrument")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToCalculateMetrics     = errors.New("failed to calculate metrics")
	ErrFailedToGetPortfolioSummary  = errors.New("failed to get portfolio summary")
	ErrFailedToRetrievePrice        = errors.New("failed to retrieve price")
	ErrFailedToRetrieveWallet       = errors.New("failed to retrieve wallet")
	ErrFailedToUpdateWallet         = errors.New("failed to update wallet")

	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that stored data cannot be interpreted
	// (e.g., a decimal column that does not parse).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
