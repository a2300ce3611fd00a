package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/service"
)

// MetricsHandler serves FIFO gain reports.
type MetricsHandler struct {
	metricsService *service.MetricsService
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		metricsService: metricsService,
	}
}

// InstrumentMetrics handles GET requests for the gain report of one instrument.
//
// Endpoint: GET /api/instrument/{uuid}/metrics
// Response: 200 OK with model.InstrumentMetrics
// Error: 404 Not Found if the instrument does not exist
// Error: 409 Conflict if the stored ledger oversells
func (h *MetricsHandler) InstrumentMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.metricsService.GetInstrumentMetrics(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCalculateMetrics.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}

// OpenLots handles GET requests for the unconsumed lots of one instrument.
//
// Endpoint: GET /api/instrument/{uuid}/lots
// Response: 200 OK with model.OpenLots
// Error: 404 Not Found if the instrument does not exist
func (h *MetricsHandler) OpenLots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.metricsService.GetOpenLots(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCalculateMetrics.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, lots)
}

// PortfolioSummary handles GET requests for the aggregated portfolio report.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with model.PortfolioSummary
// Error: 500 Internal Server Error if any instrument cannot be evaluated
func (h *MetricsHandler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.metricsService.GetPortfolioSummary(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioSummary.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// PortfolioDistribution handles GET requests for the current value breakdown.
//
// Endpoint: GET /api/portfolio/distribution
// Response: 200 OK with model.PortfolioDistribution
func (h *MetricsHandler) PortfolioDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.metricsService.GetPortfolioDistribution(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioSummary.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dist)
}
