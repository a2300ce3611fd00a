// Package yahoo is a minimal client for the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// ErrNoData reports that Yahoo knows no price for the requested symbol.
var ErrNoData = errors.New("no price data returned")

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// Every outgoing request waits on a shared rate limiter.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *FinanceClient) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *FinanceClient) { c.httpClient = hc }
}

// WithRateLimit limits outgoing requests to rps per second. A non-positive
// rps disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *FinanceClient) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewFinanceClient creates a new Yahoo Finance client. Without options it
// talks to DefaultBaseURL, times requests out after ten seconds and allows
// two requests per second.
func NewFinanceClient(opts ...Option) *FinanceClient {
	c := &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(2, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseChart converts a raw Yahoo Finance API response into a structured price chart.
//
// The method performs validation to ensure:
//   - a result is present
//   - close price data is present when timestamps are
//   - data arrays have matching lengths
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, ErrNoData
	}
	result := yahooResult.Chart.Result[0]

	chart := PriceChart{
		Symbol:             result.Meta.Symbol,
		Currency:           result.Meta.Currency,
		ExchangeName:       result.Meta.ExchangeName,
		LongName:           result.Meta.LongName,
		Shortname:          result.Meta.Shortname,
		RegularMarketPrice: result.Meta.RegularMarketPrice,
	}

	if len(result.Timestamp) == 0 {
		return chart, nil
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}
	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	chart.Indicators = make([]Indicators, len(result.Timestamp))
	for i, v := range result.Timestamp {
		chart.Indicators[i].Date = time.Unix(v, 0).UTC()
		chart.Indicators[i].PriceClose = quote.Close[i]
		if i < len(quote.Open) {
			chart.Indicators[i].PriceOpen = quote.Open[i]
		}
	}

	return chart, nil
}

// QueryYahooFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
func (c *FinanceClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, url.PathEscape(symbol))
	return c.queryYahoo(ctx, endpoint)
}

// CurrentPrice returns the latest price Yahoo has for symbol. A symbol Yahoo
// does not know, or one without any price, reports ok=false and no error;
// transport and decoding failures are errors.
func (c *FinanceClient) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	resp, err := c.QueryYahooFiveDaySymbol(ctx, symbol)
	if errors.Is(err, ErrNoData) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	chart, err := c.ParseChart(resp)
	if errors.Is(err, ErrNoData) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse chart for %s: %w", symbol, err)
	}

	price, ok := chart.CurrentPrice()
	return price, ok, nil
}

// queryYahoo executes a GET against the chart API and decodes the envelope.
// A "Not Found" chart error is reported as ErrNoData.
func (c *FinanceClient) queryYahoo(ctx context.Context, endpoint string) (Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return Response{}, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
		}
		return Response{}, fmt.Errorf("failed to decode yahoo response: %w", err)
	}

	if e := response.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return Response{}, ErrNoData
		}
		return Response{}, e
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return Response{}, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}
	if len(response.Chart.Result) == 0 {
		return Response{}, ErrNoData
	}

	return response, nil
}
