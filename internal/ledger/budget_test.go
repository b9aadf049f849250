package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudgetSetLimit(t *testing.T) {
	b := NewBudget(NewYearMonth(2024, time.January))

	assert.True(t, b.SetLimit("Food & Dining", d(t, "400")))
	assert.True(t, b.SetLimit("Travel", decimal.Zero))
	assert.False(t, b.SetLimit("Shopping", d(t, "-1")))

	assert.Equal(t, "400.00", b.Limit("Food & Dining").StringFixed(2))
	assert.True(t, b.Limit("Shopping").IsZero())
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"Food & Dining", "Travel"}, b.Categories())
}

func TestBudgetHasBudget(t *testing.T) {
	b := NewBudget(NewYearMonth(2024, time.January))
	b.SetLimit("Food & Dining", d(t, "400"))
	b.SetLimit("Travel", decimal.Zero)

	assert.True(t, b.HasBudget("Food & Dining"))
	assert.False(t, b.HasBudget("Travel"))
	assert.False(t, b.HasBudget("Shopping"))
}

func TestBudgetUnsetCategoryIsOverBudgetWithoutBudget(t *testing.T) {
	b := NewBudget(NewYearMonth(2024, time.January))

	assert.True(t, b.IsOverBudget("Food", d(t, "50")))
	assert.False(t, b.HasBudget("Food"))
	assert.False(t, b.IsOverBudget("Food", decimal.Zero))
}

func TestBudgetRemainingNeverNegative(t *testing.T) {
	b := NewBudget(NewYearMonth(2024, time.January))
	b.SetLimit("Food & Dining", d(t, "100"))

	tests := []struct {
		spent string
		want  string
	}{
		{spent: "0", want: "100.00"},
		{spent: "40.50", want: "59.50"},
		{spent: "100", want: "0.00"},
		{spent: "250", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			got := b.Remaining("Food & Dining", d(t, tt.spent))
			assert.False(t, got.IsNegative())
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}

	assert.True(t, b.Remaining("Unknown", d(t, "10")).IsZero())
}

func TestBudgetUsagePercentage(t *testing.T) {
	b := NewBudget(NewYearMonth(2024, time.January))
	b.SetLimit("Food & Dining", d(t, "200"))

	assert.InDelta(t, 25.0, b.UsagePercentage("Food & Dining", d(t, "50")), 0.001)
	assert.InDelta(t, 100.0, b.UsagePercentage("Food & Dining", d(t, "500")), 0.001)
	assert.Zero(t, b.UsagePercentage("Travel", d(t, "500")))
}

func TestBudgetIsNearLimit(t *testing.T) {
	b := NewBudget(NewYearMonth(2024, time.January))
	b.SetLimit("Food & Dining", d(t, "100"))

	assert.False(t, b.IsNearLimit("Food & Dining", d(t, "79.99"), 0.8))
	assert.True(t, b.IsNearLimit("Food & Dining", d(t, "80"), 0.8))
	assert.True(t, b.IsNearLimit("Food & Dining", d(t, "120"), 0.8))
	assert.False(t, b.IsNearLimit("Travel", d(t, "120"), 0.8))
}

func TestBudgetTotalIgnoresMonth(t *testing.T) {
	b := NewBudget(NewYearMonth(2024, time.January))
	b.SetLimit("Food & Dining", d(t, "100"))

	b.SetMonth(NewYearMonth(2024, time.February))
	b.SetLimit("Travel", d(t, "50.25"))

	assert.Equal(t, NewYearMonth(2024, time.February), b.Month())
	assert.Equal(t, "150.25", b.Total().StringFixed(2))
	assert.Equal(t, 2, b.Len())
}

func TestBudgetLimitsIsACopy(t *testing.T) {
	b := NewBudget(NewYearMonth(2024, time.January))
	b.SetLimit("Food & Dining", d(t, "100"))

	limits := b.Limits()
	limits["Travel"] = d(t, "1")

	assert.Equal(t, 1, b.Len())
}
