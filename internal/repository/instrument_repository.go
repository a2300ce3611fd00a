package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
)

// InstrumentRepository provides data access methods for the instrument table.
type InstrumentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInstrumentRepository creates a new InstrumentRepository with the provided database connection.
func NewInstrumentRepository(db *sql.DB) *InstrumentRepository {
	return &InstrumentRepository{db: db}
}

// WithTx returns a new InstrumentRepository scoped to the provided transaction.
func (r *InstrumentRepository) WithTx(tx *sql.Tx) *InstrumentRepository {
	return &InstrumentRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *InstrumentRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const instrumentColumns = `id, symbol, name, instrument_type, currency, created_at`

// GetInstruments retrieves every instrument ordered by symbol.
func (r *InstrumentRepository) GetInstruments(ctx context.Context) ([]model.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instrument ORDER BY symbol ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query instrument table: %w", err)
	}
	defer rows.Close()

	instruments := []model.Instrument{}
	for rows.Next() {
		instrument, err := scanInstrument(rows)
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, instrument)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instrument table: %w", err)
	}

	return instruments, nil
}

// GetInstrument retrieves a single instrument by its ID.
// Returns ErrInstrumentNotFound if no record with the given ID exists.
func (r *InstrumentRepository) GetInstrument(ctx context.Context, id string) (model.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instrument WHERE id = ?`

	instrument, err := scanInstrument(r.getQuerier().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Instrument{}, apperrors.ErrInstrumentNotFound
	}
	return instrument, err
}

// GetInstrumentBySymbol retrieves a single instrument by its symbol.
// Returns ErrInstrumentNotFound if no record with the given symbol exists.
func (r *InstrumentRepository) GetInstrumentBySymbol(ctx context.Context, symbol string) (model.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instrument WHERE symbol = ?`

	instrument, err := scanInstrument(r.getQuerier().QueryRowContext(ctx, query, symbol))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Instrument{}, apperrors.ErrInstrumentNotFound
	}
	return instrument, err
}

// InsertInstrument stores a new instrument. The caller supplies the ID.
func (r *InstrumentRepository) InsertInstrument(ctx context.Context, i *model.Instrument) error {
	query := `
        INSERT INTO instrument (id, symbol, name, instrument_type, currency, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		i.ID,
		i.Symbol,
		i.Name,
		i.InstrumentType,
		i.Currency,
		i.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("failed to insert instrument: %w", err)
	}

	return nil
}

// DeleteInstrument removes an instrument and, through the foreign key
// cascade, all of its transactions.
// Returns ErrInstrumentNotFound if no record with the given ID exists.
func (r *InstrumentRepository) DeleteInstrument(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM instrument WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete instrument: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrInstrumentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInstrument(row rowScanner) (model.Instrument, error) {
	var i model.Instrument
	var createdAtStr string

	err := row.Scan(
		&i.ID,
		&i.Symbol,
		&i.Name,
		&i.InstrumentType,
		&i.Currency,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Instrument{}, err
	}
	if err != nil {
		return model.Instrument{}, fmt.Errorf("failed to scan instrument table results: %w", err)
	}

	i.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Instrument{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return i, nil
}
