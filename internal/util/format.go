package util

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	moneyPlaces = 2
	groupSize   = 3
)

// FormatMoney renders value rounded to cents, e.g. 12.345,67 with "." and ","
// as separators. Amounts of any size are formatted exactly.
func FormatMoney(value decimal.Decimal, thousandSep, decimalSep string) string {
	digits := value.StringFixed(moneyPlaces)

	isNegative := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	integer, fraction, _ := strings.Cut(digits, ".")
	result := decimalSep + fraction

	// for each 3 digits put the thousand separator
	for len(integer) > groupSize {
		result = thousandSep + integer[len(integer)-groupSize:] + result
		integer = integer[:len(integer)-groupSize]
	}
	result = integer + result

	if isNegative && strings.Trim(digits, "0.") != "" {
		return "-" + result
	}

	return result
}

// FormatPercentage renders a percentage with one decimal place.
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}
