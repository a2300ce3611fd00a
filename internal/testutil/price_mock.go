package testutil

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// MockPriceSource is an in-memory marketdata.PriceSource for tests.
// Symbols without a configured price are reported as unavailable.
type MockPriceSource struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
	errs   map[string]error
	// Calls records every requested symbol in order.
	Calls []string
}

// NewMockPriceSource creates a mock with no prices.
func NewMockPriceSource() *MockPriceSource {
	return &MockPriceSource{
		prices: make(map[string]decimal.Decimal),
		errs:   make(map[string]error),
	}
}

// WithPrice configures the price returned for symbol.
func (m *MockPriceSource) WithPrice(symbol, price string) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[symbol] = decimal.RequireFromString(price)
	return m
}

// WithError makes lookups of symbol fail with err.
func (m *MockPriceSource) WithError(symbol string, err error) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[symbol] = err
	return m
}

// CurrentPrice implements marketdata.PriceSource.
func (m *MockPriceSource) CurrentPrice(_ context.Context, symbol string) (decimal.Decimal, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, symbol)
	if err, ok := m.errs[symbol]; ok {
		return decimal.Zero, false, err
	}
	price, ok := m.prices[symbol]
	if !ok {
		return decimal.Zero, false, nil
	}
	return price, true, nil
}
