package ledger

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Budget maps expense categories to monthly limits. All entries share a single
// month; changing the month keeps the existing entries.
type Budget struct {
	month  YearMonth
	limits map[string]decimal.Decimal
}

func NewBudget(month YearMonth) *Budget {
	return &Budget{
		month:  month,
		limits: make(map[string]decimal.Decimal),
	}
}

func (b *Budget) Month() YearMonth {
	return b.month
}

func (b *Budget) SetMonth(month YearMonth) {
	b.month = month
}

// SetLimit stores amount for category. Negative amounts are ignored and
// reported as not accepted.
func (b *Budget) SetLimit(category string, amount decimal.Decimal) bool {
	if amount.IsNegative() {
		return false
	}
	b.limits[category] = amount
	return true
}

// Limit returns the stored limit or zero when the category has no entry.
func (b *Budget) Limit(category string) decimal.Decimal {
	return b.limits[category]
}

// HasBudget is true only for entries with a limit above zero.
func (b *Budget) HasBudget(category string) bool {
	limit, ok := b.limits[category]
	return ok && limit.IsPositive()
}

func (b *Budget) Remaining(category string, spent decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, b.Limit(category).Sub(spent))
}

func (b *Budget) UsagePercentage(category string, spent decimal.Decimal) float64 {
	limit := b.Limit(category)
	if limit.IsZero() {
		return 0
	}
	return decimal.Min(hundred, spent.Div(limit).Mul(hundred)).InexactFloat64()
}

// IsOverBudget compares spent with the limit directly, so a category without a
// limit is over budget as soon as anything is spent on it.
func (b *Budget) IsOverBudget(category string, spent decimal.Decimal) bool {
	return spent.GreaterThan(b.Limit(category))
}

func (b *Budget) IsNearLimit(category string, spent decimal.Decimal, threshold float64) bool {
	limit := b.Limit(category)
	if limit.IsZero() {
		return false
	}
	return spent.Div(limit).GreaterThanOrEqual(decimal.NewFromFloat(threshold))
}

// Total sums every stored limit, whatever month it was set for.
func (b *Budget) Total() decimal.Decimal {
	total := decimal.Zero
	for _, limit := range b.limits {
		total = total.Add(limit)
	}
	return total
}

func (b *Budget) Limits() map[string]decimal.Decimal {
	return maps.Clone(b.limits)
}

// Categories returns the budgeted category names in sorted order.
func (b *Budget) Categories() []string {
	return slices.Sorted(maps.Keys(b.limits))
}

func (b *Budget) Len() int {
	return len(b.limits)
}
