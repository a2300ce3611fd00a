// Package marketdata supplies current prices to the gain calculations.
//
// Nothing here is global: the caller builds a Cache around a PriceSource,
// owns it, and decides when to invalidate it.
package marketdata

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PriceSource returns the current price of a symbol. ok is false when the
// source has no price for it; that is not an error.
type PriceSource interface {
	CurrentPrice(ctx context.Context, symbol string) (price decimal.Decimal, ok bool, err error)
}

// PriceSourceFunc adapts a function to PriceSource.
type PriceSourceFunc func(ctx context.Context, symbol string) (decimal.Decimal, bool, error)

func (f PriceSourceFunc) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	return f(ctx, symbol)
}

// Clock tells the cache what time it is.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FormatSymbol normalizes a stored symbol into the quote symbol Yahoo
// expects. Crypto assets are quoted against USD.
func FormatSymbol(symbol, instrumentType string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if instrumentType == "crypto" && !strings.HasSuffix(s, "-USD") {
		s += "-USD"
	}
	return s
}
