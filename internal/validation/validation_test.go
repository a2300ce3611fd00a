package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/api/request"
)

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *validation.Error, got %v", err)
	}
	return verr.Fields
}

// TestValidateCreateTransaction tests request validation before the ledger is touched.
//
// WHY: Anything that passes here is converted into an engine transaction, so
// the digit limits must match what the engine accepts.
func TestValidateCreateTransaction(t *testing.T) {
	fixNow(t, time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC))

	valid := request.CreateTransactionRequest{
		Type:       "buy",
		Quantity:   decimal.RequireFromString("0.000000000001"),
		Price:      decimal.RequireFromString("0.00000001"),
		Commission: decimal.RequireFromString("1.99"),
		Date:       "2024-06-01",
	}

	t.Run("accepts the smallest allowed increments", func(t *testing.T) {
		if err := ValidateCreateTransaction(valid); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts a padded type", func(t *testing.T) {
		req := valid
		req.Type = " Buy "
		if err := ValidateCreateTransaction(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts a missing commission", func(t *testing.T) {
		req := valid
		req.Commission = decimal.Decimal{}
		if err := ValidateCreateTransaction(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*request.CreateTransactionRequest)
		field  string
	}{
		{"unknown type", func(r *request.CreateTransactionRequest) { r.Type = "dividend" }, "type"},
		{"missing type", func(r *request.CreateTransactionRequest) { r.Type = " " }, "type"},
		{"zero quantity", func(r *request.CreateTransactionRequest) { r.Quantity = decimal.Zero }, "quantity"},
		{"13 quantity places", func(r *request.CreateTransactionRequest) {
			r.Quantity = decimal.RequireFromString("1.0000000000001")
		}, "quantity"},
		{"negative price", func(r *request.CreateTransactionRequest) { r.Price = decimal.RequireFromString("-1") }, "price"},
		{"9 price places", func(r *request.CreateTransactionRequest) { r.Price = decimal.RequireFromString("1.000000001") }, "price"},
		{"negative commission", func(r *request.CreateTransactionRequest) {
			r.Commission = decimal.RequireFromString("-0.01")
		}, "commission"},
		{"3 commission places", func(r *request.CreateTransactionRequest) {
			r.Commission = decimal.RequireFromString("0.001")
		}, "commission"},
		{"bad date", func(r *request.CreateTransactionRequest) { r.Date = "01/06/2024" }, "date"},
		{"future date", func(r *request.CreateTransactionRequest) { r.Date = "2024-06-02" }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			fields := fieldErrors(t, ValidateCreateTransaction(req))
			if _, ok := fields[tt.field]; !ok || len(fields) != 1 {
				t.Errorf("Expected a single error on %s, got %v", tt.field, fields)
			}
		})
	}
}

func TestValidateUpdateTransaction(t *testing.T) {
	fixNow(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	t.Run("empty update is valid", func(t *testing.T) {
		if err := ValidateUpdateTransaction(request.UpdateTransactionRequest{}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("validates provided fields", func(t *testing.T) {
		sell := "SELL"
		zero := decimal.Zero
		date := "2025-01-01"
		fields := fieldErrors(t, ValidateUpdateTransaction(request.UpdateTransactionRequest{
			Type:     &sell,
			Quantity: &zero,
			Date:     &date,
		}))
		if _, ok := fields["type"]; ok {
			t.Errorf("Expected type to be accepted case-insensitively, got %v", fields)
		}
		if len(fields) != 2 {
			t.Errorf("Expected quantity and date errors, got %v", fields)
		}
	})
}

// TestValidateUpdateWallet tests wallet request validation.
//
// WHY: Wallet amounts are stored with two decimal places, so anything finer
// would be silently rounded on write.
func TestValidateUpdateWallet(t *testing.T) {
	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name  string
		req   request.UpdateWalletRequest
		field string
	}{
		{"deposit", request.UpdateWalletRequest{Balance: amount("100.50")}, ""},
		{"withdrawal", request.UpdateWalletRequest{Balance: amount("-20")}, ""},
		{"commissions only", request.UpdateWalletRequest{Commissions: amount("1.25")}, ""},
		{"empty update", request.UpdateWalletRequest{}, "request"},
		{"too many balance places", request.UpdateWalletRequest{Balance: amount("1.005")}, "balance"},
		{"too many commission places", request.UpdateWalletRequest{Commissions: amount("-0.001")}, "commissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdateWallet(tt.req)
			if tt.field == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if _, ok := fieldErrors(t, err)[tt.field]; !ok {
				t.Errorf("Expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateCreateInstrument(t *testing.T) {
	tests := []struct {
		name  string
		req   request.CreateInstrumentRequest
		field string
	}{
		{"valid stock", request.CreateInstrumentRequest{Symbol: "AAPL", InstrumentType: "stock"}, ""},
		{"valid etf with exchange suffix", request.CreateInstrumentRequest{Symbol: "VWCE.DE", InstrumentType: "ETF", Currency: "EUR"}, ""},
		{"valid crypto pair", request.CreateInstrumentRequest{Symbol: "BTC-USD", InstrumentType: "crypto"}, ""},
		{"missing symbol", request.CreateInstrumentRequest{InstrumentType: "stock"}, "symbol"},
		{"long symbol", request.CreateInstrumentRequest{Symbol: "ABCDEFGHIJKLMNOPQRSTU", InstrumentType: "stock"}, "symbol"},
		{"bad symbol characters", request.CreateInstrumentRequest{Symbol: "AA PL", InstrumentType: "stock"}, "symbol"},
		{"unknown type", request.CreateInstrumentRequest{Symbol: "AAPL", InstrumentType: "bond"}, "instrument_type"},
		{"bad currency", request.CreateInstrumentRequest{Symbol: "AAPL", InstrumentType: "stock", Currency: "US1"}, "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateInstrument(tt.req)
			if tt.field == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if _, ok := fieldErrors(t, err)[tt.field]; !ok {
				t.Errorf("Expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Errorf("ParseID(42) = %d, %v", id, err)
	}
	for _, raw := range []string{"0", "-1", "abc", ""} {
		if _, err := ParseID(raw); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseID(%q): expected ErrInvalidID, got %v", raw, err)
		}
	}
}
