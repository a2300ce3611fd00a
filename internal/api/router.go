package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Gains-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/marketdata"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/service"
)

// Services groups the dependencies of the HTTP layer.
type Services struct {
	System      *service.SystemService
	Instrument  *service.InstrumentService
	Transaction *service.TransactionService
	Metrics     *service.MetricsService
	Wallet      *service.WalletService
	Refresher   *marketdata.Refresher
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(svc.System)
	instrumentHandler := handlers.NewInstrumentHandler(svc.Instrument)
	transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
	metricsHandler := handlers.NewMetricsHandler(svc.Metrics)
	walletHandler := handlers.NewWalletHandler(svc.Wallet)
	priceHandler := handlers.NewPriceHandler(svc.Refresher)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/instrument", func(r chi.Router) {
			r.Get("/", instrumentHandler.Instruments)
			r.Post("/", instrumentHandler.CreateInstrument)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", instrumentHandler.GetInstrument)
				r.Delete("/", instrumentHandler.DeleteInstrument)
				r.Get("/metrics", metricsHandler.InstrumentMetrics)
				r.Get("/lots", metricsHandler.OpenLots)
				r.Get("/transaction", transactionHandler.Transactions)
				r.Post("/transaction", transactionHandler.CreateTransaction)
			})
		})

		r.Route("/transaction/{id}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateIDMiddleware)
			r.Put("/", transactionHandler.UpdateTransaction)
			r.Delete("/", transactionHandler.DeleteTransaction)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/summary", metricsHandler.PortfolioSummary)
			r.Get("/distribution", metricsHandler.PortfolioDistribution)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.Wallet)
			r.Post("/", walletHandler.UpdateWallet)
		})

		r.Post("/prices/refresh", priceHandler.Refresh)
	})

	return r
}
