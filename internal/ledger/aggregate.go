package ledger

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAmount is the summed amount of one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthTotal holds the income and expense sums of one calendar month.
type MonthTotal struct {
	Month    YearMonth
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

func (m MonthTotal) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

func (m MonthTotal) IsEmpty() bool {
	return m.Income.IsZero() && m.Expenses.IsZero()
}

func filter(txs []*Transaction, keep func(*Transaction) bool) []*Transaction {
	result := []*Transaction{}
	for _, tx := range txs {
		if keep(tx) {
			result = append(result, tx)
		}
	}
	return result
}

func FilterByMonth(txs []*Transaction, month YearMonth) []*Transaction {
	return filter(txs, func(tx *Transaction) bool {
		return month.Contains(tx.Date)
	})
}

func FilterByYear(txs []*Transaction, year int) []*Transaction {
	return filter(txs, func(tx *Transaction) bool {
		return tx.Date.Year() == year
	})
}

func FilterByKind(txs []*Transaction, kind Kind) []*Transaction {
	return filter(txs, func(tx *Transaction) bool {
		return tx.Kind == kind
	})
}

func FilterByCategory(txs []*Transaction, name string, caseInsensitive bool) []*Transaction {
	return filter(txs, func(tx *Transaction) bool {
		if caseInsensitive {
			return strings.EqualFold(tx.Category, name)
		}
		return tx.Category == name
	})
}

func sum(txs []*Transaction, kind Kind) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == kind {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func TotalIncome(txs []*Transaction) decimal.Decimal {
	return sum(txs, Income)
}

func TotalExpenses(txs []*Transaction) decimal.Decimal {
	return sum(txs, Expense)
}

func NetSavings(txs []*Transaction) decimal.Decimal {
	return TotalIncome(txs).Sub(TotalExpenses(txs))
}

// SpentInCategory sums the expenses of one category (exact match) in month.
func SpentInCategory(txs []*Transaction, categoryName string, month YearMonth) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == Expense && tx.Category == categoryName && month.Contains(tx.Date) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// GroupExpensesByCategory sums expenses per category. Categories appear in the
// order they are first seen.
func GroupExpensesByCategory(txs []*Transaction) []CategoryAmount {
	index := map[string]int{}
	groups := []CategoryAmount{}

	for _, tx := range txs {
		if tx.Kind != Expense {
			continue
		}

		i, ok := index[tx.Category]
		if !ok {
			index[tx.Category] = len(groups)
			groups = append(groups, CategoryAmount{Category: tx.Category, Amount: tx.Amount})
			continue
		}
		groups[i].Amount = groups[i].Amount.Add(tx.Amount)
	}

	return groups
}

// RankByAmount sorts amounts in descending order. Equal amounts keep their
// relative order.
func RankByAmount(amounts []CategoryAmount) []CategoryAmount {
	ranked := slices.Clone(amounts)
	slices.SortStableFunc(ranked, func(a, b CategoryAmount) int {
		return b.Amount.Cmp(a.Amount)
	})
	return ranked
}

// MonthlyTotals returns one row per month of year, January first.
func MonthlyTotals(txs []*Transaction, year int) [12]MonthTotal {
	var totals [12]MonthTotal
	for i := range totals {
		totals[i] = MonthTotal{
			Month:    NewYearMonth(year, time.Month(i+1)),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
	}

	for _, tx := range txs {
		if tx.Date.Year() != year {
			continue
		}
		row := &totals[tx.Date.Month()-1]
		if tx.Kind == Income {
			row.Income = row.Income.Add(tx.Amount)
		} else {
			row.Expenses = row.Expenses.Add(tx.Amount)
		}
	}

	return totals
}

// SortByDateDesc returns a copy of txs with the newest transactions first.
func SortByDateDesc(txs []*Transaction) []*Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b *Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return sorted
}

// SignedTotal adds income and subtracts expenses.
func SignedTotal(txs []*Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Signed())
	}
	return total
}

// DateRange returns the earliest and latest transaction dates. ok is false for
// an empty slice.
func DateRange(txs []*Transaction) (first, last time.Time, ok bool) {
	if len(txs) == 0 {
		return time.Time{}, time.Time{}, false
	}

	first, last = txs[0].Date, txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date.Before(first) {
			first = tx.Date
		}
		if tx.Date.After(last) {
			last = tx.Date
		}
	}
	return first, last, true
}
