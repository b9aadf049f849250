package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/testutil"
)

func TestTransactionRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		format      Format
		description string
	}{
		{name: "quoted plain", format: FormatQuoted, description: "weekly groceries"},
		{name: "quoted empty description", format: FormatQuoted, description: ""},
		{name: "quoted comma and quotes", format: FormatQuoted, description: `dinner, "fancy" place`},
		{name: "quoted semicolon", format: FormatQuoted, description: "a;b"},
		{name: "legacy plain", format: FormatLegacy, description: "weekly groceries"},
		{name: "legacy empty description", format: FormatLegacy, description: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ledger.NewTransaction(7, ledger.Expense, testutil.Amount(t, "100.5"), "Food & Dining", tt.description, ledger.Date(2024, time.January, 5))

			decoded, err := DecodeTransaction(EncodeTransaction(tx, tt.format), tt.format)
			require.NoError(t, err)

			assert.Equal(t, tx.ID(), decoded.ID())
			assert.Equal(t, tx.Kind, decoded.Kind)
			assert.True(t, tx.Amount.Equal(decoded.Amount))
			assert.Equal(t, tx.Category, decoded.Category)
			assert.Equal(t, tx.Description, decoded.Description)
			assert.Equal(t, tx.Date, decoded.Date)
		})
	}
}

func TestEncodeTransaction(t *testing.T) {
	tx := ledger.NewTransaction(3, ledger.Income, testutil.Amount(t, "500"), "Salary", "January", ledger.Date(2024, time.January, 1))

	assert.Equal(t, "3,INCOME,500.00,Salary,January,2024-01-01", EncodeTransaction(tx, FormatLegacy))
	assert.Equal(t, "3,INCOME,500.00,Salary,January,2024-01-01", EncodeTransaction(tx, FormatQuoted))

	tx.Description = "rent, deposit"
	assert.Equal(t, "3,INCOME,500.00,Salary,rent, deposit,2024-01-01", EncodeTransaction(tx, FormatLegacy))
	assert.Equal(t, `3,INCOME,500.00,Salary,"rent, deposit",2024-01-01`, EncodeTransaction(tx, FormatQuoted))

	tx.Description = "line\nbreak"
	assert.Equal(t, "3,INCOME,500.00,Salary,line break,2024-01-01", EncodeTransaction(tx, FormatQuoted))
}

func TestDecodeTransactionErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "too few fields", line: "1,EXPENSE,10.00,Food,desc"},
		{name: "bad id", line: "x,EXPENSE,10.00,Food,desc,2024-01-01"},
		{name: "zero id", line: "0,EXPENSE,10.00,Food,desc,2024-01-01"},
		{name: "bad kind", line: "1,TRANSFER,10.00,Food,desc,2024-01-01"},
		{name: "bad amount", line: "1,EXPENSE,ten,Food,desc,2024-01-01"},
		{name: "bad date", line: "1,EXPENSE,10.00,Food,desc,01/01/2024"},
		{name: "legacy comma in description shifts date", line: "1,EXPENSE,10.00,Food,a,b,2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, format := range []Format{FormatQuoted, FormatLegacy} {
				_, err := DecodeTransaction(tt.line, format)
				assert.Error(t, err, "format %s", format)
			}
		})
	}

	_, err := DecodeTransaction("1,EXPENSE", FormatQuoted)
	assert.ErrorIs(t, err, ErrTooFewFields)
}

func TestDecodeTransactionLowercaseKind(t *testing.T) {
	tx, err := DecodeTransaction("2,income,1.5,Salary,,2024-03-01", FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, ledger.Income, tx.Kind)
	assert.Equal(t, "1.50", tx.Amount.StringFixed(2))
}

func TestBudgetEncoding(t *testing.T) {
	budget := ledger.NewBudget(ledger.NewYearMonth(2024, time.January))
	budget.SetLimit("Travel", testutil.Amount(t, "50"))
	budget.SetLimit("Food & Dining", testutil.Amount(t, "400.5"))

	lines := EncodeBudget(budget, FormatQuoted)
	assert.Equal(t, []string{
		"2024-01,Food & Dining,400.50",
		"2024-01,Travel,50.00",
	}, lines)

	entry, err := DecodeBudgetEntry(lines[0], FormatQuoted)
	require.NoError(t, err)
	assert.Equal(t, ledger.NewYearMonth(2024, time.January), entry.Month)
	assert.Equal(t, "Food & Dining", entry.Category)
	assert.Equal(t, "400.50", entry.Amount.StringFixed(2))
}

func TestDecodeBudgetEntryErrors(t *testing.T) {
	_, err := DecodeBudgetEntry("2024-01,Food", FormatLegacy)
	assert.ErrorIs(t, err, ErrTooFewFields)

	_, err = DecodeBudgetEntry("2024-1x,Food,10", FormatLegacy)
	assert.Error(t, err)

	_, err = DecodeBudgetEntry("2024-01,Food,abc", FormatLegacy)
	assert.Error(t, err)

	// Older files stored amounts like 500.0.
	entry, err := DecodeBudgetEntry("2024-01,Food,500.0", FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, "500.00", entry.Amount.StringFixed(2))
}

func TestGoalRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		format      Format
		description string
		want        string
	}{
		{name: "quoted keeps commas", format: FormatQuoted, description: "new car, used", want: "new car, used"},
		{name: "quoted keeps semicolons", format: FormatQuoted, description: "a;b", want: "a;b"},
		{name: "legacy swaps commas", format: FormatLegacy, description: "new car, used", want: "new car, used"},
		{name: "legacy loses semicolons", format: FormatLegacy, description: "a;b", want: "a,b"},
		{name: "empty description", format: FormatLegacy, description: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := ledger.NewSavingsGoal(4, "Car", testutil.Amount(t, "1200"), ledger.Date(2024, time.January, 1), ledger.Date(2025, time.June, 30), tt.description)
			goal.AddContribution(testutil.Amount(t, "700"))

			decoded, err := DecodeGoal(EncodeGoal(goal, tt.format), tt.format)
			require.NoError(t, err)

			assert.Equal(t, 4, decoded.ID())
			assert.Equal(t, "Car", decoded.Name)
			assert.Equal(t, "1200.00", decoded.TargetAmount.StringFixed(2))
			assert.Equal(t, "700.00", decoded.CurrentAmount().StringFixed(2))
			assert.Equal(t, goal.StartDate, decoded.StartDate)
			assert.Equal(t, goal.TargetDate, decoded.TargetDate)
			assert.Equal(t, tt.want, decoded.Description)
		})
	}
}

func TestEncodeGoalLegacy(t *testing.T) {
	goal := ledger.NewSavingsGoal(1, "Trip", testutil.Amount(t, "300"), ledger.Date(2024, time.January, 1), ledger.Date(2024, time.July, 1), "flights, hotel")

	assert.Equal(t, "1,Trip,300.00,0.00,2024-01-01,2024-07-01,flights; hotel", EncodeGoal(goal, FormatLegacy))
}

func TestDecodeGoalSixFields(t *testing.T) {
	goal, err := DecodeGoal("2,Trip,300.00,-5.00,2024-01-01,2024-07-01", FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, "", goal.Description)
	assert.True(t, goal.CurrentAmount().IsZero())

	_, err = DecodeGoal("2,Trip,300.00,0.00,2024-01-01", FormatLegacy)
	assert.ErrorIs(t, err, ErrTooFewFields)
}

func TestCategoryEncoding(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		value  string
		line   string
	}{
		{name: "quoted plain", format: FormatQuoted, value: "Pets", line: "Pets"},
		{name: "quoted comma", format: FormatQuoted, value: "Garden, tools", line: `"Garden, tools"`},
		{name: "legacy comma", format: FormatLegacy, value: "Garden, tools", line: "Garden, tools"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := EncodeCategory(tt.value, tt.format)
			assert.Equal(t, tt.line, line)

			decoded, err := DecodeCategory(line, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.value, decoded)
		})
	}

	_, err := DecodeCategory("   ", FormatLegacy)
	assert.Error(t, err)
}
