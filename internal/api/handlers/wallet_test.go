package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Gains-Backend/internal/testutil"
)

func setupWalletHandler(t *testing.T) (*WalletHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewWalletHandler(testutil.NewTestWalletService(t, db)), db
}

func TestWalletHandler_Wallet(t *testing.T) {
	t.Run("returns the seeded wallet", func(t *testing.T) {
		handler, _ := setupWalletHandler(t)

		w := httptest.NewRecorder()
		handler.Wallet(w, httptest.NewRequest(http.MethodGet, "/api/wallet", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Wallet
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != 1 || !response.Balance.IsZero() {
			t.Errorf("Unexpected wallet: %+v", response)
		}
	})

	t.Run("returns 404 when the row is missing", func(t *testing.T) {
		handler, db := setupWalletHandler(t)
		if _, err := db.Exec(`DELETE FROM wallet`); err != nil {
			t.Fatalf("Failed to clear wallet: %v", err)
		}

		w := httptest.NewRecorder()
		handler.Wallet(w, httptest.NewRequest(http.MethodGet, "/api/wallet", nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

// TestWalletHandler_UpdateWallet tests deposits and withdrawals over HTTP.
//
// WHY: A withdrawal larger than the balance is a client error and must say
// which amount would go negative.
func TestWalletHandler_UpdateWallet(t *testing.T) {
	t.Run("deposits", func(t *testing.T) {
		handler, _ := setupWalletHandler(t)

		w := httptest.NewRecorder()
		handler.UpdateWallet(w, testutil.NewJSONRequestWithURLParams(http.MethodPost, "/api/wallet",
			`{"balance":"250.40","commissions":1.5}`, nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Wallet
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Balance.Equal(decimal.RequireFromString("250.4")) || !response.Commissions.Equal(decimal.RequireFromString("1.5")) {
			t.Errorf("Unexpected wallet: %+v", response)
		}
	})

	t.Run("refuses a negative result", func(t *testing.T) {
		handler, _ := setupWalletHandler(t)

		w := httptest.NewRecorder()
		handler.UpdateWallet(w, testutil.NewJSONRequestWithURLParams(http.MethodPost, "/api/wallet",
			`{"balance":"-0.01"}`, nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var response struct {
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if _, ok := response.Details["balance"]; !ok {
			t.Errorf("Expected balance detail, got %v", response.Details)
		}
	})

	t.Run("rejects an empty update", func(t *testing.T) {
		handler, _ := setupWalletHandler(t)

		w := httptest.NewRecorder()
		handler.UpdateWallet(w, testutil.NewJSONRequestWithURLParams(http.MethodPost, "/api/wallet", `{}`, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		handler, _ := setupWalletHandler(t)

		w := httptest.NewRecorder()
		handler.UpdateWallet(w, testutil.NewJSONRequestWithURLParams(http.MethodPost, "/api/wallet", `{"quantity":"1"}`, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
