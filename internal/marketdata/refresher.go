package marketdata

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// SymbolsFunc lists the quote symbols the refresher should pre-warm.
type SymbolsFunc func(ctx context.Context) ([]string, error)

// RefreshResult summarizes one refresh run.
type RefreshResult struct {
	Symbols     int      `json:"symbols"`
	Priced      int      `json:"priced"`
	Unavailable []string `json:"unavailable"`
	Failed      []string `json:"failed"`
}

// Refresher flushes a Cache and fetches the current price of every listed
// symbol, either on demand or on a cron schedule.
type Refresher struct {
	cache       *Cache
	symbols     SymbolsFunc
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewRefresher creates a refresher that warms at most concurrency symbols at
// a time.
func NewRefresher(c *Cache, symbols SymbolsFunc, concurrency int, logger *slog.Logger) *Refresher {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		cache:       c,
		symbols:     symbols,
		concurrency: concurrency,
		timeout:     2 * time.Minute,
		logger:      logger,
	}
}

// Refresh empties the cache and re-fetches every listed symbol. Individual
// fetch failures are reported in the result, not as an error.
func (r *Refresher) Refresh(ctx context.Context) (RefreshResult, error) {
	symbols, err := r.symbols(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("failed to list symbols: %w", err)
	}

	r.cache.Flush()

	result := RefreshResult{Symbols: len(symbols), Unavailable: []string{}, Failed: []string{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, symbol := range symbols {
		g.Go(func() error {
			_, ok, err := r.cache.CurrentPrice(gctx, symbol)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed = append(result.Failed, symbol)
			case !ok:
				result.Unavailable = append(result.Unavailable, symbol)
			default:
				result.Priced++
			}
			return nil
		})
	}
	_ = g.Wait()

	r.logger.Info("price cache refreshed",
		"symbols", result.Symbols,
		"priced", result.Priced,
		"unavailable", len(result.Unavailable),
		"failed", len(result.Failed),
	)
	return result, nil
}

// Start schedules Refresh on a cron spec such as "@every 5m" or
// "*/10 * * * *". An empty spec leaves the refresher manual-only.
func (r *Refresher) Start(schedule string) error {
	if schedule == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return fmt.Errorf("refresher already started")
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, r.scheduledRefresh); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	r.cron = c

	r.logger.Info("price refresher started", "schedule", schedule)
	return nil
}

func (r *Refresher) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if _, err := r.Refresh(ctx); err != nil {
		r.logger.Error("scheduled price refresh failed", "error", err)
	}
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
