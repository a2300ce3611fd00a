package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/marketdata"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/version"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/yahoo"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Init(cfg.Log.Level)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		return err
	}
	logger.Info("connected to database", "path", cfg.Database.Path, "version", version.Version)

	// Create repositories
	instrumentRepo := repository.NewInstrumentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	walletRepo := repository.NewWalletRepository(db)

	// Market data: rate-limited Yahoo client behind a TTL cache
	quotes := yahoo.NewFinanceClient(
		yahoo.WithBaseURL(cfg.Market.YahooBaseURL),
		yahoo.WithRateLimit(cfg.Market.RequestsPerSecond),
	)
	prices := marketdata.NewCache(quotes, cfg.Market.CacheTTL, marketdata.WithLogger(logger))

	// Create services
	systemService := service.NewSystemService(db)
	instrumentService := service.NewInstrumentService(instrumentRepo, prices)
	transactionService := service.NewTransactionService(db, transactionRepo, instrumentRepo)
	metricsService := service.NewMetricsService(
		instrumentRepo,
		transactionRepo,
		prices,
		cfg.Market.FetchConcurrency,
		logger,
	)
	walletService := service.NewWalletService(db, walletRepo)

	refresher := marketdata.NewRefresher(prices, instrumentService.QuoteSymbols, cfg.Market.FetchConcurrency, logger)
	if err := refresher.Start(cfg.Market.RefreshSchedule); err != nil {
		return err
	}
	defer refresher.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Instrument:  instrumentService,
		Transaction: transactionService,
		Metrics:     metricsService,
		Wallet:      walletService,
		Refresher:   refresher,
	}, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
