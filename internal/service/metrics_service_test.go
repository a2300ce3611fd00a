package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/testutil"
)

// seedScenario stores the reference ledger: two buys with commission, then a
// sell that consumes the first lot and part of the second.
func seedScenario(t *testing.T, db *sql.DB, symbol string) model.Instrument {
	t.Helper()
	inst := testutil.CreateInstrument(t, db, symbol, "stock")
	testutil.NewTransaction(inst.ID).Buy("10", "100").WithCommission("5").OnDate(testutil.Day(1)).Build(t, db)
	testutil.NewTransaction(inst.ID).Buy("5", "120").WithCommission("3").OnDate(testutil.Day(2)).Build(t, db)
	testutil.NewTransaction(inst.ID).Sell("12", "130").WithCommission("6").OnDate(testutil.Day(3)).Build(t, db)
	return inst
}

// TestMetricsService_GetInstrumentMetrics tests the stored-ledger gain report.
//
// WHY: The report is what users act on. It must match the FIFO engine exactly
// when fed from the database and the price source, and degrade to a zero
// price rather than fail when no quote exists.
func TestMetricsService_GetInstrumentMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("reports realized, unrealized and totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewMockPriceSource().WithPrice("AAPL", "130")
		svc := testutil.NewTestMetricsService(t, db, prices)
		inst := seedScenario(t, db, "AAPL")

		m, err := svc.GetInstrumentMetrics(ctx, inst.ID)
		if err != nil {
			t.Fatalf("GetInstrumentMetrics() returned unexpected error: %v", err)
		}

		if !m.PriceAvailable {
			t.Error("Expected price to be available")
		}
		assertDecimal(t, "current price", "130", m.CurrentPrice)
		assertDecimal(t, "realized gain", "307.80", m.Metrics.Realized.Gain)
		assertDecimal(t, "realized %", "24.70", m.Metrics.Realized.GainPercentage)
		assertDecimal(t, "cost basis sold", "1246.20", m.Metrics.Realized.CostBasisSold)
		assertDecimal(t, "unrealized gain", "30", m.Metrics.Unrealized.Gain)
		assertDecimal(t, "current quantity", "3", m.Metrics.Unrealized.CurrentQuantity)
		assertDecimal(t, "total gain", "337.80", m.Metrics.Totals.TotalGain)
		assertDecimal(t, "total investment", "1606.20", m.Metrics.Totals.TotalInvestment)
		assertDecimal(t, "total %", "21.03", m.Metrics.Totals.TotalGainPercentage)
		assertDecimal(t, "total commissions", "14", m.Metrics.Totals.TotalCommissions)
	})

	t.Run("unavailable price values holdings at zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db, testutil.NewMockPriceSource())
		inst := seedScenario(t, db, "AAPL")

		m, err := svc.GetInstrumentMetrics(ctx, inst.ID)
		if err != nil {
			t.Fatalf("GetInstrumentMetrics() returned unexpected error: %v", err)
		}

		if m.PriceAvailable {
			t.Error("Expected price to be unavailable")
		}
		assertDecimal(t, "current value", "0", m.Metrics.Unrealized.CurrentValue)
		assertDecimal(t, "realized gain", "307.80", m.Metrics.Realized.Gain)
	})

	t.Run("price source errors degrade like a missing price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewMockPriceSource().WithError("AAPL", errors.New("upstream down"))
		svc := testutil.NewTestMetricsService(t, db, prices)
		inst := seedScenario(t, db, "AAPL")

		m, err := svc.GetInstrumentMetrics(ctx, inst.ID)
		if err != nil {
			t.Fatalf("GetInstrumentMetrics() returned unexpected error: %v", err)
		}
		if m.PriceAvailable {
			t.Error("Expected price to be unavailable")
		}
	})

	t.Run("unknown instrument", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db, nil)

		_, err := svc.GetInstrumentMetrics(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrInstrumentNotFound) {
			t.Errorf("Expected ErrInstrumentNotFound, got %v", err)
		}
	})

	t.Run("stored oversell is reported", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db, nil)
		inst := testutil.CreateInstrument(t, db, "AAPL", "stock")
		testutil.NewTransaction(inst.ID).Sell("1", "100").Build(t, db)

		_, err := svc.GetInstrumentMetrics(ctx, inst.ID)
		if !errors.Is(err, apperrors.ErrOversell) {
			t.Errorf("Expected ErrOversell, got %v", err)
		}
	})
}

func TestMetricsService_GetOpenLots(t *testing.T) {
	ctx := context.Background()

	t.Run("lists the partially consumed lot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db, nil)
		inst := seedScenario(t, db, "AAPL")

		lots, err := svc.GetOpenLots(ctx, inst.ID)
		if err != nil {
			t.Fatalf("GetOpenLots() returned unexpected error: %v", err)
		}

		if len(lots.Lots) != 1 {
			t.Fatalf("Expected 1 open lot, got %d", len(lots.Lots))
		}
		lot := lots.Lots[0]
		assertDecimal(t, "quantity", "3", lots.Quantity)
		assertDecimal(t, "lot remaining", "3", lot.RemainingQuantity)
		assertDecimal(t, "lot price", "120", lot.UnitPrice)
		assertDecimal(t, "lot commission", "1.8", lot.RemainingCommission)
	})

	t.Run("empty ledger has no lots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db, nil)
		inst := testutil.CreateInstrument(t, db, "AAPL", "stock")

		lots, err := svc.GetOpenLots(ctx, inst.ID)
		if err != nil {
			t.Fatalf("GetOpenLots() returned unexpected error: %v", err)
		}
		if lots.Lots == nil || len(lots.Lots) != 0 {
			t.Errorf("Expected empty non-nil lots, got %#v", lots.Lots)
		}
		assertDecimal(t, "quantity", "0", lots.Quantity)
	})
}

// TestMetricsService_GetPortfolioSummary tests portfolio aggregation.
//
// WHY: Portfolio percentages use portfolio-wide denominators, and instruments
// without transactions must not dilute them or trigger price lookups.
func TestMetricsService_GetPortfolioSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates instruments and lists unpriced holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewMockPriceSource().WithPrice("AAPL", "130")
		svc := testutil.NewTestMetricsService(t, db, prices)
		seedScenario(t, db, "AAPL")

		msft := testutil.CreateInstrument(t, db, "MSFT", "stock")
		testutil.NewTransaction(msft.ID).Buy("2", "50").Build(t, db)
		testutil.CreateInstrument(t, db, "EMPTY", "stock")

		summary, err := svc.GetPortfolioSummary(ctx)
		if err != nil {
			t.Fatalf("GetPortfolioSummary() returned unexpected error: %v", err)
		}

		if len(summary.Instruments) != 2 {
			t.Fatalf("Expected 2 instruments, got %d", len(summary.Instruments))
		}
		if summary.Totals.Instruments != 2 {
			t.Errorf("Expected totals over 2 instruments, got %d", summary.Totals.Instruments)
		}
		if len(summary.UnpricedSymbols) != 1 || summary.UnpricedSymbols[0] != "MSFT" {
			t.Errorf("Expected [MSFT] unpriced, got %v", summary.UnpricedSymbols)
		}
		for _, call := range prices.Calls {
			if call == "EMPTY" {
				t.Error("Expected no price lookup for an instrument without transactions")
			}
		}

		// AAPL: cost basis 360, value 390. MSFT: cost basis 100, value 0.
		assertDecimal(t, "cost basis", "460", summary.Totals.CostBasis)
		assertDecimal(t, "current value", "390", summary.Totals.CurrentValue)
		assertDecimal(t, "realized gain", "307.80", summary.Totals.RealizedGain)
		assertDecimal(t, "unrealized gain", "-70", summary.Totals.UnrealizedGain)
	})

	t.Run("empty portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMetricsService(t, db, nil)

		summary, err := svc.GetPortfolioSummary(ctx)
		if err != nil {
			t.Fatalf("GetPortfolioSummary() returned unexpected error: %v", err)
		}
		if len(summary.Instruments) != 0 || summary.UnpricedSymbols == nil {
			t.Errorf("Expected empty summary with non-nil slices, got %+v", summary)
		}
		assertDecimal(t, "total gain", "0", summary.Totals.TotalGain)
	})
}

func TestMetricsService_GetPortfolioDistribution(t *testing.T) {
	ctx := context.Background()

	t.Run("splits by type, risk and instrument", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewMockPriceSource().
			WithPrice("AAPL", "300").
			WithPrice("VWCE.DE", "100").
			WithPrice("BTC-USD", "1000")
		svc := testutil.NewTestMetricsService(t, db, prices)

		aapl := testutil.CreateInstrument(t, db, "AAPL", "stock")
		testutil.NewTransaction(aapl.ID).Buy("1", "250").Build(t, db)
		vwce := testutil.CreateInstrument(t, db, "VWCE.DE", "etf")
		testutil.NewTransaction(vwce.ID).Buy("2", "90").Build(t, db)
		btc := testutil.CreateInstrument(t, db, "BTC", "crypto")
		testutil.NewTransaction(btc.ID).Buy("0.5", "800").Build(t, db)
		unpriced := testutil.CreateInstrument(t, db, "XYZ", "stock")
		testutil.NewTransaction(unpriced.ID).Buy("5", "10").Build(t, db)

		dist, err := svc.GetPortfolioDistribution(ctx)
		if err != nil {
			t.Fatalf("GetPortfolioDistribution() returned unexpected error: %v", err)
		}

		assertDecimal(t, "total value", "1000", dist.TotalValue)

		wantType := []struct{ label, value, pct string }{
			{"Stock", "300", "30"},
			{"ETF", "200", "20"},
			{"Crypto", "500", "50"},
		}
		if len(dist.ByType) != len(wantType) {
			t.Fatalf("Expected %d type entries, got %+v", len(wantType), dist.ByType)
		}
		for i, w := range wantType {
			e := dist.ByType[i]
			if e.Label != w.label {
				t.Errorf("by_type[%d]: expected %s, got %s", i, w.label, e.Label)
			}
			assertDecimal(t, "by_type value "+w.label, w.value, e.Value)
			assertDecimal(t, "by_type pct "+w.label, w.pct, e.Percentage)
		}

		if len(dist.ByRisk) != 2 || dist.ByRisk[0].Label != "Medium risk (ETF)" {
			t.Fatalf("Unexpected risk split: %+v", dist.ByRisk)
		}
		assertDecimal(t, "high risk pct", "80", dist.ByRisk[1].Percentage)

		labels := make([]string, len(dist.ByInstrument))
		for i, e := range dist.ByInstrument {
			labels[i] = e.Label
		}
		if fmt.Sprint(labels) != "[BTC AAPL VWCE.DE]" {
			t.Errorf("Expected instruments by value, got %v", labels)
		}
	})

	t.Run("keeps the ten largest instruments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewMockPriceSource()
		svc := testutil.NewTestMetricsService(t, db, prices)

		for i := 1; i <= 12; i++ {
			symbol := fmt.Sprintf("S%02d", i)
			prices.WithPrice(symbol, strconv.Itoa(i))
			inst := testutil.CreateInstrument(t, db, symbol, "stock")
			testutil.NewTransaction(inst.ID).Buy("1", "1").Build(t, db)
		}

		dist, err := svc.GetPortfolioDistribution(ctx)
		if err != nil {
			t.Fatalf("GetPortfolioDistribution() returned unexpected error: %v", err)
		}

		if len(dist.ByInstrument) != 10 {
			t.Fatalf("Expected 10 instruments, got %d", len(dist.ByInstrument))
		}
		if dist.ByInstrument[0].Label != "S12" || dist.ByInstrument[9].Label != "S03" {
			t.Errorf("Unexpected ordering: first %s last %s", dist.ByInstrument[0].Label, dist.ByInstrument[9].Label)
		}
		assertDecimal(t, "total value", "78", dist.TotalValue)
	})
}
