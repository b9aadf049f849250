package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/report"
	"github.com/GustavoCaso/financeledger/internal/util"
)

var ErrNonPositiveAmount = errors.New("amount must be positive")

// ParseAmount parses a money amount given on the command line. Only amounts
// above zero are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return amount, nil
}

// Money renders amounts as $1,234.56.
func Money(value decimal.Decimal) string {
	if value.Round(2).IsNegative() {
		return "-$" + util.FormatMoney(value.Neg(), ",", ".")
	}
	return "$" + util.FormatMoney(value, ",", ".")
}

// Truncate shortens s to at most width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// StatusLabel renders a budget status as a fixed width colored tag.
func StatusLabel(status report.BudgetStatus) string {
	switch status {
	case report.BudgetStatusOver:
		return util.ColorOutput("[OVER]", "red", "bold")
	case report.BudgetStatusNear:
		return util.ColorOutput("[NEAR]", "yellow")
	case report.BudgetStatusUnder:
		return util.ColorOutput("[ OK ]", "green")
	default:
		return "[ -- ]"
	}
}
