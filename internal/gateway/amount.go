package gateway

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currencies the processor treats as having no fractional unit.
var zeroDecimalCurrencies = map[string]struct{}{
	"HUF": {},
	"JPY": {},
	"TWD": {},
}

func isZeroDecimal(currency string) bool {
	_, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]
	return ok
}

// FormatMinorUnits renders a minor-unit amount as the processor's
// decimal string form, e.g. 5000 USD -> "50.00", 5000 JPY -> "5000".
func FormatMinorUnits(amount int64, currency string) string {
	if isZeroDecimal(currency) {
		return strconv.FormatInt(amount, 10)
	}
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

// ParseMinorUnits parses a processor decimal amount string back into
// minor units.
func ParseMinorUnits(value, currency string) (int64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", value, err)
	}
	if isZeroDecimal(currency) {
		return int64(math.Round(f)), nil
	}
	return int64(math.Round(f * 100)), nil
}
