package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/fifo"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/marketdata"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/repository"
)

// topInstruments is the length of the per-instrument distribution.
const topInstruments = 10

// MetricsService computes FIFO gain reports from stored ledgers and current
// prices.
type MetricsService struct {
	instrumentRepo  *repository.InstrumentRepository
	transactionRepo *repository.TransactionRepository
	prices          marketdata.PriceSource
	concurrency     int
	logger          *slog.Logger
}

// NewMetricsService creates a MetricsService. At most concurrency instruments
// are evaluated at once when building portfolio reports.
func NewMetricsService(
	instrumentRepo *repository.InstrumentRepository,
	transactionRepo *repository.TransactionRepository,
	prices marketdata.PriceSource,
	concurrency int,
	logger *slog.Logger,
) *MetricsService {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsService{
		instrumentRepo:  instrumentRepo,
		transactionRepo: transactionRepo,
		prices:          prices,
		concurrency:     concurrency,
		logger:          logger,
	}
}

// position is one instrument's matched ledger valued at the current price.
type position struct {
	metrics  model.InstrumentMetrics
	quantity decimal.Decimal
	empty    bool
}

// GetInstrumentMetrics returns realized, unrealized and total gains for one
// instrument. An unavailable price values the open position at zero.
func (s *MetricsService) GetInstrumentMetrics(ctx context.Context, instrumentID string) (model.InstrumentMetrics, error) {
	instrument, err := s.instrumentRepo.GetInstrument(ctx, instrumentID)
	if err != nil {
		return model.InstrumentMetrics{}, err
	}
	p, err := s.evaluate(ctx, instrument)
	if err != nil {
		return model.InstrumentMetrics{}, err
	}
	return p.metrics, nil
}

// GetOpenLots returns the lots still held, oldest first.
func (s *MetricsService) GetOpenLots(ctx context.Context, instrumentID string) (model.OpenLots, error) {
	if _, err := s.instrumentRepo.GetInstrument(ctx, instrumentID); err != nil {
		return model.OpenLots{}, err
	}
	matching, err := s.match(ctx, instrumentID)
	if err != nil {
		return model.OpenLots{}, err
	}

	lots := model.OpenLots{InstrumentID: instrumentID, Quantity: decimal.Zero, Lots: matching.Open}
	if lots.Lots == nil {
		lots.Lots = []fifo.Lot{}
	}
	for _, l := range matching.Open {
		lots.Quantity = lots.Quantity.Add(l.RemainingQuantity)
	}
	return lots, nil
}

// GetPortfolioSummary aggregates every instrument with at least one
// transaction. Instruments are evaluated in parallel.
func (s *MetricsService) GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error) {
	positions, err := s.evaluateAll(ctx)
	if err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetPortfolioSummary, err)
	}

	summary := model.PortfolioSummary{
		Instruments:     make([]model.InstrumentMetrics, 0, len(positions)),
		UnpricedSymbols: []string{},
	}
	records := make([]fifo.InstrumentTotals, 0, len(positions))
	for _, p := range positions {
		summary.Instruments = append(summary.Instruments, p.metrics)
		records = append(records, p.metrics.Metrics)
		if !p.metrics.PriceAvailable && p.quantity.IsPositive() {
			summary.UnpricedSymbols = append(summary.UnpricedSymbols, p.metrics.Instrument.Symbol)
		}
	}
	summary.Totals = fifo.AggregatePortfolio(records)

	return summary, nil
}

// GetPortfolioDistribution splits the current value of priced holdings by
// instrument type, by risk and by instrument (largest first, top ten).
func (s *MetricsService) GetPortfolioDistribution(ctx context.Context) (model.PortfolioDistribution, error) {
	positions, err := s.evaluateAll(ctx)
	if err != nil {
		return model.PortfolioDistribution{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetPortfolioSummary, err)
	}

	total := decimal.Zero
	byType := map[string]decimal.Decimal{}
	byRisk := map[string]decimal.Decimal{}
	var byInstrument []model.DistributionEntry

	for _, p := range positions {
		value := p.metrics.Metrics.Unrealized.CurrentValue
		if !p.metrics.PriceAvailable || !value.IsPositive() {
			continue
		}
		inst := p.metrics.Instrument
		total = total.Add(value)
		byType[inst.InstrumentType] = byType[inst.InstrumentType].Add(value)
		byRisk[model.RiskLevel(inst.InstrumentType)] = byRisk[model.RiskLevel(inst.InstrumentType)].Add(value)
		byInstrument = append(byInstrument, model.DistributionEntry{Label: inst.Symbol, Value: value})
	}

	dist := model.PortfolioDistribution{
		TotalValue:   total,
		ByType:       []model.DistributionEntry{},
		ByRisk:       []model.DistributionEntry{},
		ByInstrument: []model.DistributionEntry{},
	}

	for _, t := range []string{model.InstrumentTypeStock, model.InstrumentTypeETF, model.InstrumentTypeCrypto} {
		if v, ok := byType[t]; ok {
			dist.ByType = append(dist.ByType, share(typeLabel(t), v, total))
		}
	}
	for _, r := range []string{"medium", "high"} {
		if v, ok := byRisk[r]; ok {
			dist.ByRisk = append(dist.ByRisk, share(riskLabel(r), v, total))
		}
	}

	slices.SortFunc(byInstrument, func(a, b model.DistributionEntry) int {
		if c := b.Value.Cmp(a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	for _, e := range byInstrument[:min(len(byInstrument), topInstruments)] {
		dist.ByInstrument = append(dist.ByInstrument, share(e.Label, e.Value, total))
	}

	return dist, nil
}

func (s *MetricsService) evaluateAll(ctx context.Context) ([]position, error) {
	instruments, err := s.instrumentRepo.GetInstruments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveInstruments, err)
	}

	results := make([]position, len(instruments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, inst := range instruments {
		g.Go(func() error {
			p, err := s.evaluate(gctx, inst)
			if err != nil {
				return fmt.Errorf("instrument %s: %w", inst.Symbol, err)
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	positions := results[:0]
	for _, p := range results {
		if !p.empty {
			positions = append(positions, p)
		}
	}
	return positions, nil
}

func (s *MetricsService) evaluate(ctx context.Context, instrument model.Instrument) (position, error) {
	matching, err := s.match(ctx, instrument.ID)
	if err != nil {
		return position{}, err
	}

	empty := len(matching.Sells) == 0 && len(matching.Open) == 0
	price, ok := decimal.Zero, false
	if !empty {
		price, ok = s.currentPrice(ctx, instrument)
	}
	p := position{
		metrics: model.InstrumentMetrics{
			Instrument:     instrument,
			CurrentPrice:   price,
			PriceAvailable: ok,
			Metrics:        matching.Totals(price),
		},
		quantity: decimal.Zero,
		empty:    empty,
	}
	for _, l := range matching.Open {
		p.quantity = p.quantity.Add(l.RemainingQuantity)
	}
	return p, nil
}

func (s *MetricsService) match(ctx context.Context, instrumentID string) (fifo.Matching, error) {
	stored, err := s.transactionRepo.GetTransactions(ctx, instrumentID)
	if err != nil {
		return fifo.Matching{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}
	ledger, err := model.Ledger(stored)
	if err != nil {
		return fifo.Matching{}, fmt.Errorf("%w: %w", apperrors.ErrDataInconsistency, err)
	}
	matching, err := fifo.Match(ledger)
	if err != nil {
		return fifo.Matching{}, ledgerError(err)
	}
	return matching, nil
}

// currentPrice asks the price source for the instrument's quote. Failures
// are logged and treated as an unavailable price.
func (s *MetricsService) currentPrice(ctx context.Context, instrument model.Instrument) (decimal.Decimal, bool) {
	if s.prices == nil {
		return decimal.Zero, false
	}
	symbol := marketdata.FormatSymbol(instrument.Symbol, instrument.InstrumentType)
	price, ok, err := s.prices.CurrentPrice(ctx, symbol)
	if err != nil {
		s.logger.Warn("price unavailable", "symbol", symbol, "error", err)
		return decimal.Zero, false
	}
	if !ok || !price.IsPositive() {
		return decimal.Zero, false
	}
	return price, true
}

func share(label string, value, total decimal.Decimal) model.DistributionEntry {
	pct := decimal.Zero
	if total.IsPositive() {
		pct = value.Mul(decimal.NewFromInt(100)).DivRound(total, 28).Round(2)
	}
	return model.DistributionEntry{Label: label, Value: value, Percentage: pct}
}

func typeLabel(t string) string {
	switch t {
	case model.InstrumentTypeETF:
		return "ETF"
	case model.InstrumentTypeCrypto:
		return "Crypto"
	default:
		return "Stock"
	}
}

func riskLabel(r string) string {
	if r == "medium" {
		return "Medium risk (ETF)"
	}
	return "High risk (Stock/Crypto)"
}
