package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/marketdata"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/repository"
)

// InstrumentService handles instrument-related business logic operations.
type InstrumentService struct {
	instrumentRepo *repository.InstrumentRepository
	prices         marketdata.PriceSource
}

// NewInstrumentService creates a new InstrumentService. When prices is not
// nil, new symbols must have a quote before they are accepted.
func NewInstrumentService(
	instrumentRepo *repository.InstrumentRepository,
	prices marketdata.PriceSource,
) *InstrumentService {
	return &InstrumentService{
		instrumentRepo: instrumentRepo,
		prices:         prices,
	}
}

// GetInstruments retrieves all instruments ordered by symbol.
func (s *InstrumentService) GetInstruments(ctx context.Context) ([]model.Instrument, error) {
	return s.instrumentRepo.GetInstruments(ctx)
}

// GetInstrument retrieves a single instrument by ID.
func (s *InstrumentService) GetInstrument(ctx context.Context, id string) (model.Instrument, error) {
	return s.instrumentRepo.GetInstrument(ctx, id)
}

// CreateInstrument registers a new instrument. The symbol is stored upper
// case; currency defaults to USD and name to the symbol.
//
// Returns ErrDuplicateSymbol if the symbol is already registered and
// ErrSymbolNotFound if the price source has no quote for it.
func (s *InstrumentService) CreateInstrument(ctx context.Context, req request.CreateInstrumentRequest) (*model.Instrument, error) {
	instrument := &model.Instrument{
		ID:             uuid.New().String(),
		Symbol:         strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:           strings.TrimSpace(req.Name),
		InstrumentType: strings.ToLower(strings.TrimSpace(req.InstrumentType)),
		Currency:       strings.ToUpper(strings.TrimSpace(req.Currency)),
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
	if instrument.Name == "" {
		instrument.Name = instrument.Symbol
	}
	if instrument.Currency == "" {
		instrument.Currency = "USD"
	}

	_, err := s.instrumentRepo.GetInstrumentBySymbol(ctx, instrument.Symbol)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateSymbol, instrument.Symbol)
	case !errors.Is(err, apperrors.ErrInstrumentNotFound):
		return nil, fmt.Errorf("failed to check symbol: %w", err)
	}

	if s.prices != nil {
		quote := marketdata.FormatSymbol(instrument.Symbol, instrument.InstrumentType)
		_, ok, err := s.prices.CurrentPrice(ctx, quote)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePrice, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, quote)
		}
	}

	if err := s.instrumentRepo.InsertInstrument(ctx, instrument); err != nil {
		return nil, fmt.Errorf("failed to create instrument: %w", err)
	}

	return instrument, nil
}

// DeleteInstrument removes an instrument together with its ledger.
func (s *InstrumentService) DeleteInstrument(ctx context.Context, id string) error {
	return s.instrumentRepo.DeleteInstrument(ctx, id)
}

// QuoteSymbols lists the price-source symbol of every instrument.
func (s *InstrumentService) QuoteSymbols(ctx context.Context) ([]string, error) {
	instruments, err := s.instrumentRepo.GetInstruments(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, len(instruments))
	for i, inst := range instruments {
		symbols[i] = marketdata.FormatSymbol(inst.Symbol, inst.InstrumentType)
	}
	return symbols, nil
}
