package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Error carries per-field validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// now is replaced in tests.
var now = time.Now

// ParseDate parses a YYYY-MM-DD date and rejects dates after today (UTC).
func ParseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (use YYYY-MM-DD)")
	}
	today := now().UTC().Truncate(24 * time.Hour)
	if date.After(today) {
		return time.Time{}, fmt.Errorf("date cannot be in the future")
	}
	return date, nil
}

func checkPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

func validatePositive(fields map[string]string, name string, d decimal.Decimal, places int32) {
	switch {
	case !d.IsPositive():
		fields[name] = name + " must be positive"
	case !checkPlaces(d, places):
		fields[name] = fmt.Sprintf("%s cannot have more than %d decimal places", name, places)
	}
}

func validateNonNegative(fields map[string]string, name string, d decimal.Decimal, places int32) {
	switch {
	case d.IsNegative():
		fields[name] = name + " cannot be negative"
	case !checkPlaces(d, places):
		fields[name] = fmt.Sprintf("%s cannot have more than %d decimal places", name, places)
	}
}
